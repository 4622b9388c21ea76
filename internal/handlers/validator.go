package handlers

import (
	"github.com/anonto42/nano-tube/backend/internal/apperr"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator plugs go-playground/validator into echo
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	if err := cv.validator.Struct(i); err != nil {
		return apperr.ValidationFailed("%s", err.Error())
	}
	return nil
}

// bind decodes the request body into req and validates it
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperr.ValidationFailed("invalid request payload")
	}
	return c.Validate(req)
}
