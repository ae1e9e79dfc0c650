package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/kingrain94/tenant-items-api/internal/auth"
	"github.com/kingrain94/tenant-items-api/internal/tenant"
	"github.com/kingrain94/tenant-items-api/internal/utils"
)

// TokenValidator checks a bearer token for the request's tenant.
type TokenValidator interface {
	Validate(tokenString, schema, tokenType string) (jwt.MapClaims, error)
}

type AuthMiddleware struct {
	tokens TokenValidator
}

func NewAuthMiddleware(tokens TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// JWTAuth requires an access token minted for the tenant the request resolved to.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortUnauthorized(c, "Authentication credentials were not provided.")
			return
		}

		schema, _ := tenant.SchemaFromContext(c.Request.Context())
		claims, err := m.tokens.Validate(token, schema, auth.TokenTypeAccess)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTenantMismatch):
				abortUnauthorized(c, "Token is not valid for this tenant.")
			case errors.Is(err, auth.ErrWrongTokenType):
				abortUnauthorized(c, "Token has wrong type.")
			default:
				abortUnauthorized(c, "Given token not valid for any token type.")
			}
			return
		}

		c.Set(string(utils.ClaimsKey), claims)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), utils.ClaimsKey, claims))
		c.Next()
	}
}

// bearerToken reads the token from the Authorization header. Browsers cannot
// set headers on a websocket handshake, so an access_token query parameter is
// accepted on upgrade requests only.
func bearerToken(c *gin.Context) (string, bool) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", false
		}
		return parts[1], true
	}

	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		if token := c.Query("access_token"); token != "" {
			return token, true
		}
	}
	return "", false
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"code": http.StatusUnauthorized, "detail": detail})
}
