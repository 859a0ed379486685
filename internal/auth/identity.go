package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const contextKey = "caller"

// CallerIdentity is the authenticated principal an operation runs on behalf
// of. Handlers pass it into services explicitly instead of services digging
// it out of the request context.
type CallerIdentity struct {
	ID       uint
	Role     string
	Name     string
	LastName string
}

func (c CallerIdentity) Authenticated() bool { return c.ID != 0 }

func ParseToken(tokenString string, secret []byte) (CallerIdentity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return CallerIdentity{}, err
	}
	if !token.Valid {
		return CallerIdentity{}, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return CallerIdentity{}, fmt.Errorf("invalid token claims")
	}
	subRaw, ok := claims["sub"].(float64)
	if !ok {
		return CallerIdentity{}, fmt.Errorf("invalid subject claim")
	}

	caller := CallerIdentity{ID: uint(subRaw)}
	if role, ok := claims["role"].(string); ok {
		caller.Role = role
	}
	if name, ok := claims["name"].(string); ok {
		caller.Name = name
	}
	if lastName, ok := claims["lastName"].(string); ok {
		caller.LastName = lastName
	}
	return caller, nil
}

// Middleware parses the Authorization bearer token into a CallerIdentity and
// rejects requests without one.
func Middleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == "" || tokenString == header {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			caller, err := ParseToken(tokenString, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token: "+err.Error())
			}

			c.Set(contextKey, caller)
			return next(c)
		}
	}
}

func Caller(c echo.Context) CallerIdentity {
	if v, ok := c.Get(contextKey).(CallerIdentity); ok {
		return v
	}
	return CallerIdentity{}
}

// SignToken issues an HS256 token for the given user claims. Kept for the
// seeder and tests; the service itself never issues tokens.
func SignToken(id uint, role, name, lastName string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      float64(id),
		"role":     role,
		"name":     name,
		"lastName": lastName,
	})
	return token.SignedString(secret)
}
