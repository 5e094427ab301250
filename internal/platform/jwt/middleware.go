package jwtmw

import (
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"jobboard/internal/feature/identity/domain/entity"
)

const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// AuthRequired validates the bearer token signed with secret.
// A missing or malformed header gives 401, a token that fails verification gives 403.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "No token provided, authorization denied."})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		if len(key) == 0 {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "server misconfigured"})
			return
		}

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			// only HMAC
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token is not valid."})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token is not valid."})
			return
		}
		sub, ok := claims["sub"].(float64) // JSON numbers decode as float64
		if !ok || sub <= 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token is not valid."})
			return
		}
		roleClaim, _ := claims["role"].(string)
		role, err := entity.ParseRole(roleClaim)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Token is not valid."})
			return
		}

		c.Set(ContextUserID, uint(sub))
		c.Set(ContextRole, role)
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles. Runs after AuthRequired.
func RequireRole(allowed ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFrom(c)
		if !ok || !slices.Contains(allowed, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied for this account type."})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller id.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// RoleFrom returns the authenticated caller role.
func RoleFrom(c *gin.Context) (entity.Role, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(entity.Role)
	return role, ok
}
