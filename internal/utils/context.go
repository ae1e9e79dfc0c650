package utils

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type ContextKey string

const (
	ClaimsKey  ContextKey = "claims"
	SchemaKey  ContextKey = "tenant_schema"
	UserIDKey  ContextKey = "user_id"
	RequestKey ContextKey = "request_id"
)

var (
	ErrNoClaimsInContext = errors.New("no claims found in context")
	ErrInvalidClaimsType = errors.New("invalid claims type")
	ErrNoUserIDInClaims  = errors.New("no user_id found in claims")
)

func GetClaimsFromContext(c context.Context) (jwt.MapClaims, error) {
	value := c.Value(ClaimsKey)
	if value == nil {
		return nil, ErrNoClaimsInContext
	}

	claims, ok := value.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaimsType
	}
	return claims, nil
}

// GetUserIDFromContext returns the authenticated user's id as carried by the access token.
func GetUserIDFromContext(c context.Context) (int64, error) {
	claims, err := GetClaimsFromContext(c)
	if err != nil {
		return 0, err
	}

	// JSON numbers decode as float64 in MapClaims
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrNoUserIDInClaims
	}
	return int64(userID), nil
}
