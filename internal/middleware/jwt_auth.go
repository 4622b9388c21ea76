package middleware

import (
	"net/http"

	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// JWTAuthMiddleware checks for a valid HS256 token and resolves the actor from its user_id claim
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims := &models.JwtCustomClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}
			if !ids.Valid(claims.UserID) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token does not carry a valid user id")
			}

			setActor(c, claims.UserID)
			return next(c)
		}
	}
}

// SignToken issues an HS256 token for userID. Auth flows live outside this service;
// it exists for tooling and tests.
func SignToken(secret, userID string, claims jwt.RegisteredClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JwtCustomClaims{
		UserID:           userID,
		RegisteredClaims: claims,
	})
	return token.SignedString([]byte(secret))
}
