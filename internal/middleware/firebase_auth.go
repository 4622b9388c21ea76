package middleware

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/anonto42/nano-tube/backend/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// TokenVerifier is satisfied by *auth.Client
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseUserLookup maps a Firebase UID to the local user
type FirebaseUserLookup interface {
	GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
}

// FirebaseAuthMiddleware verifies Firebase ID tokens and resolves the actor through the user's firebase uid
func FirebaseAuthMiddleware(verifier TokenVerifier, users FirebaseUserLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				logger.From(ctx).WithError(err).Debug("firebase token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := users.GetUserByFirebaseUID(ctx, token.UID)
			if err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "No user is linked to this Firebase account")
				}
				return errors.Wrap(err, "resolve firebase user")
			}

			setActor(c, user.ID)
			return next(c)
		}
	}
}
