package stubapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"pointcard/internal/logger"
)

type Auth struct {
	signingSecretKey []byte
	tokenLifetime    time.Duration
}

type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

type ContextKey string

const UserIDKey ContextKey = "userID"

func NewAuth(signingSecretKey []byte, tokenLifetime time.Duration) *Auth {
	return &Auth{
		signingSecretKey: signingSecretKey,
		tokenLifetime:    tokenLifetime,
	}
}

func (a *Auth) BuildTokenString(userID int) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenLifetime)),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(a.signingSecretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (a *Auth) getUserIDFromAuthorizationHeader(request *http.Request) int {
	tokenString := strings.TrimPrefix(request.Header.Get("Authorization"), "Bearer ")
	if tokenString == "" {
		return 0
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return a.signingSecretKey, nil
		},
	)
	if err != nil || !token.Valid {
		logger.Log.Debugln("rejecting bearer token", zap.Error(err))
		return 0
	}

	return claims.UserID
}

// AuthenticateUser resolves the bearer token into a user id stored on the
// request context. An invalid or absent token resolves to 0; handlers
// answer 401 for it.
func (a *Auth) AuthenticateUser(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		userID := a.getUserIDFromAuthorizationHeader(request)

		ctx := context.WithValue(request.Context(), UserIDKey, userID)
		requestWithCtx := request.WithContext(ctx)

		h.ServeHTTP(response, requestWithCtx)
	}

	return http.HandlerFunc(middleware)
}
