package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"orghub.app/api-server/internal/auth"
)

const identityKey = "identity"

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	AdminID int64
	OrgID   int64
}

// GetIdentity retrieves the authenticated identity set by RequireAuth.
func GetIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := v.(Identity)
	return identity, ok
}

// RequireAuth authenticates requests with a bearer token. It only extracts
// identity; ownership checks belong to the services.
func RequireAuth(issuer *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := issuer.Decode(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(identityKey, Identity{
			AdminID: claims.AdminID,
			OrgID:   claims.OrgID,
		})
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}
