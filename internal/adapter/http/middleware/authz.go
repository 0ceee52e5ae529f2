package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/caiobtc/velocompra-backend/configs"
	domain "github.com/caiobtc/velocompra-backend/internal/entity"
)

const (
	// CtxEmail and CtxRole are set by Require for downstream handlers.
	CtxEmail = "auth.email"
	CtxRole  = "auth.role"
)

type Authz struct {
	cfg configs.Config
}

func NewAuthz(cfg configs.Config) *Authz {
	return &Authz{cfg: cfg}
}

// Require validates the bearer token and checks that the caller holds one of
// the given roles. The verified email lands in the gin context; handlers
// never parse credentials themselves.
func (a *Authz) Require(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauth(c, "invalid_request", "missing bearer token")
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(a.cfg.Security.JWTSecret), nil
		}, jwt.WithLeeway(30*time.Second)) // small clock skew

		if err != nil || !token.Valid {
			unauth(c, "invalid_token", "invalid jwt")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauth(c, "invalid_token", "claims parsing error")
			return
		}

		if claims["iss"] != a.cfg.Security.Issuer || claims["aud"] != a.cfg.Security.Audience {
			unauth(c, "invalid_token", "iss/aud mismatch")
			return
		}

		email, _ := claims["sub"].(string)
		roleClaim, _ := claims["role"].(string)
		if email == "" || roleClaim == "" {
			unauth(c, "invalid_token", "missing identity claims")
			return
		}

		if !roleAllowed(domain.Role(roleClaim), roles) {
			forbidden(c, "insufficient_role", "caller role not allowed")
			return
		}

		c.Set(CtxEmail, email)
		c.Set(CtxRole, roleClaim)
		c.Next()
	}
}

func roleAllowed(have domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if r == have {
			return true
		}
	}
	return false
}

// Email returns the verified caller identity set by Require.
func Email(c *gin.Context) string {
	return c.GetString(CtxEmail)
}

func unauth(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code, "error_description": desc})
}

func forbidden(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": code, "error_description": desc})
}
