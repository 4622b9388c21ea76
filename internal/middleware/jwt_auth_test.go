package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/nano-tube/backend/internal/ids"
	"github.com/anonto42/nano-tube/backend/internal/models"
	"github.com/anonto42/nano-tube/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func serve(t *testing.T, mw echo.MiddlewareFunc, authorization string) (string, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var actor string
	err := mw(func(c echo.Context) error {
		actor = ActorID(c)
		return nil
	})(c)
	return actor, err
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "got %v", err)
	assert.Equal(t, status, he.Code)
}

func TestJWTAuthMiddleware(t *testing.T) {
	userID := ids.New()
	valid, err := SignToken(secret, userID, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)
	expired, err := SignToken(secret, userID, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	require.NoError(t, err)
	forged, err := SignToken("other-secret", userID, jwt.RegisteredClaims{})
	require.NoError(t, err)
	badUser, err := SignToken(secret, "42", jwt.RegisteredClaims{})
	require.NoError(t, err)

	mw := JWTAuthMiddleware(secret)

	actor, err := serve(t, mw, "Bearer "+valid)
	require.NoError(t, err)
	assert.Equal(t, userID, actor)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic " + valid},
		{"expired", "Bearer " + expired},
		{"wrong secret", "Bearer " + forged},
		{"invalid user id", "Bearer " + badUser},
		{"garbage", "Bearer not.a.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := serve(t, mw, tt.header)
			requireStatus(t, err, http.StatusUnauthorized)
		})
	}
}

type stubVerifier map[string]string

func (v stubVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := v[idToken]
	if !ok {
		return nil, errors.New("token rejected")
	}
	return &auth.Token{UID: uid}, nil
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	mem := repositories.NewMemoryStore()
	uid := "firebase-uid-1"
	user := &models.User{Username: "alice", FirebaseUID: &uid}
	require.NoError(t, mem.CreateUser(context.Background(), user))

	mw := FirebaseAuthMiddleware(stubVerifier{"good": uid, "orphan": "nobody"}, mem)

	actor, err := serve(t, mw, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, user.ID, actor)

	_, err = serve(t, mw, "Bearer orphan")
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = serve(t, mw, "Bearer forged")
	requireStatus(t, err, http.StatusUnauthorized)
}
