package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Claims is the token body issued to every caller.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// NewToken signs an HS256 token for the caller. Used by tests and local tooling.
func NewToken(secret []byte, actor order.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: actor.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// AuthJWT verifies the bearer token and stores the caller in the echo context.
func AuthJWT(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request())
			if !ok {
				return writeMessage(c, http.StatusUnauthorized, "missing bearer token")
			}

			actor, err := parseActor(secret, raw)
			if err != nil {
				return writeMessage(c, http.StatusUnauthorized, "invalid token")
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

// ActorFrom returns the caller stored by AuthJWT.
func ActorFrom(c echo.Context) (order.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(order.Actor)
	return actor, ok
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get(echo.HeaderAuthorization)
	if authz == "" {
		// EventSource cannot set headers.
		if token := r.URL.Query().Get("access_token"); token != "" {
			return token, true
		}
		return "", false
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

func parseActor(secret []byte, raw string) (order.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return order.Actor{}, err
	}
	if !token.Valid {
		return order.Actor{}, errors.New("token is not valid")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return order.Actor{}, fmt.Errorf("subject: %w", err)
	}
	role, err := order.ParseRole(claims.Role)
	if err != nil {
		return order.Actor{}, fmt.Errorf("role: %w", err)
	}
	return order.NewActor(id, role)
}
