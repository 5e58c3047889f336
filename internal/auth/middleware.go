package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/payment-config-service/internal/dto"
)

const principalKey = "auth.principal"

type Authenticator struct {
	tokens *TokenManager
	keys   *KeyStore
}

func NewAuthenticator(tokens *TokenManager, keys *KeyStore) *Authenticator {
	return &Authenticator{tokens: tokens, keys: keys}
}

// Authenticate tries the bearer token first, then the X-API-Key header.
func (a *Authenticator) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := a.fromBearer(c); ok {
			c.Set(principalKey, p)
			c.Next()
			return
		}
		if a.keys != nil {
			if p, ok := a.keys.Verify(c.GetHeader("X-API-Key")); ok {
				c.Set(principalKey, p)
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "authentication required",
			Code:  "UNAUTHORIZED",
		})
	}
}

func (a *Authenticator) fromBearer(c *gin.Context) (Principal, bool) {
	header := c.GetHeader("Authorization")
	if a.tokens == nil || !strings.HasPrefix(header, "Bearer ") {
		return Principal{}, false
	}

	claims, err := a.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		log.Debug().Err(err).Msg("bearer token rejected")
		return Principal{}, false
	}
	role := Highest(claims.Roles)
	if role == "" {
		return Principal{}, false
	}
	return Principal{Subject: claims.Subject, Role: role, Method: "jwt"}, true
}

func RequireRole(required Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHORIZED",
			})
			return
		}
		if !p.Role.Satisfies(required) {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Error: "insufficient role",
				Code:  "FORBIDDEN",
				Meta:  map[string]any{"required": string(required), "role": string(p.Role)},
			})
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
