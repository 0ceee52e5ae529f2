package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caiobtc/velocompra-backend/configs"
	"github.com/caiobtc/velocompra-backend/internal/adapter/http/middleware"
	domain "github.com/caiobtc/velocompra-backend/internal/entity"
)

func testConfig() configs.Config {
	var cfg configs.Config
	cfg.Security.JWTSecret = "test-secret"
	cfg.Security.Issuer = "velocompra"
	cfg.Security.Audience = "velocompra-web"
	cfg.Security.TTL = time.Hour
	return cfg
}

func mintToken(t *testing.T, cfg configs.Config, sub string, role domain.Role, mutate func(jwt.MapClaims)) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  cfg.Security.Issuer,
		"aud":  cfg.Security.Audience,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(cfg.Security.TTL).Unix(),
		"sub":  sub,
		"role": string(role),
	}
	if mutate != nil {
		mutate(claims)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Security.JWTSecret))
	require.NoError(t, err)
	return signed
}

func protectedRouter(cfg configs.Config, roles ...domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authz := middleware.NewAuthz(cfg)
	r.GET("/guarded", authz.Require(roles...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": middleware.Email(c)})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireValidToken(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg, domain.RoleCustomer)

	token := mintToken(t, cfg, "alice@example.com", domain.RoleCustomer, nil)
	w := doGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestRequireMissingToken(t *testing.T) {
	r := protectedRouter(testConfig(), domain.RoleCustomer)

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "invalid_request")
}

func TestRequireWrongSignature(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg, domain.RoleCustomer)

	other := testConfig()
	other.Security.JWTSecret = "some-other-secret"
	token := mintToken(t, other, "alice@example.com", domain.RoleCustomer, nil)
	w := doGet(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireExpiredToken(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg, domain.RoleCustomer)

	token := mintToken(t, cfg, "alice@example.com", domain.RoleCustomer, func(c jwt.MapClaims) {
		c["exp"] = time.Now().Add(-time.Hour).Unix()
	})
	w := doGet(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAudienceMismatch(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg, domain.RoleCustomer)

	token := mintToken(t, cfg, "alice@example.com", domain.RoleCustomer, func(c jwt.MapClaims) {
		c["aud"] = "another-app"
	})
	w := doGet(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRoleGate(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg, domain.RoleAdmin)

	customer := mintToken(t, cfg, "alice@example.com", domain.RoleCustomer, nil)
	w := doGet(r, customer)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := mintToken(t, cfg, "admin@velocompra.com", domain.RoleAdmin, nil)
	w = doGet(r, admin)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireMultipleRoles(t *testing.T) {
	cfg := testConfig()
	r := protectedRouter(cfg, domain.RoleAdmin, domain.RoleStockist)

	stockist := mintToken(t, cfg, "stock@velocompra.com", domain.RoleStockist, nil)
	w := doGet(r, stockist)
	assert.Equal(t, http.StatusOK, w.Code)

	customer := mintToken(t, cfg, "alice@example.com", domain.RoleCustomer, nil)
	w = doGet(r, customer)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
