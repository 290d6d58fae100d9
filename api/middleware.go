package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/tablebook/internal/auth"
	"github.com/Domenick1991/tablebook/internal/domain"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

func CORS(origins []string) gin.HandlerFunc {
	allowed := "*"
	if len(origins) > 0 {
		allowed = strings.Join(origins, ", ")
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Authenticate resolves the bearer credential into an identity. Credential
// verification ends here; everything past this point trusts the identity.
func Authenticate(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token", "code": "unauthorized"})
			return
		}
		identity, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token", "code": "unauthorized"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin gates the owner-facing routes. The engine still re-checks
// ownership per resource; this only keeps guests out of admin handlers.
func RequireAdmin(tokens *auth.Manager) gin.HandlerFunc {
	authenticate := Authenticate(tokens)
	return func(c *gin.Context) {
		authenticate(c)
		if c.IsAborted() {
			return
		}
		if identityFrom(c).Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required", "code": "forbidden"})
		}
	}
}

func identityFrom(c *gin.Context) *auth.Identity {
	v, _ := c.Get(identityKey)
	identity, _ := v.(*auth.Identity)
	return identity
}
