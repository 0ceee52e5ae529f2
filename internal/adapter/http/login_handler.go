package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/caiobtc/velocompra-backend/configs"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

type LoginHandler struct {
	cfg  configs.Config
	auth *usecase.AuthService
}

func NewLoginHandler(cfg configs.Config, auth *usecase.AuthService) *LoginHandler {
	return &LoginHandler{cfg: cfg, auth: auth}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

// StaffLogin issues a token for back-office users (admin/stockist).
func (h *LoginHandler) StaffLogin(c *gin.Context) {
	h.login(c, h.auth.StaffLogin)
}

// CustomerLogin issues a token for storefront customers.
func (h *LoginHandler) CustomerLogin(c *gin.Context) {
	h.login(c, h.auth.CustomerLogin)
}

func (h *LoginHandler) login(c *gin.Context, validate func(ctx context.Context, email, password string) (*usecase.Identity, error)) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	id, err := validate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":  h.cfg.Security.Issuer,
		"aud":  h.cfg.Security.Audience,
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"exp":  now.Add(h.cfg.Security.TTL).Unix(),
		"sub":  id.Email,
		"role": string(id.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, loginResp{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(h.cfg.Security.TTL.Seconds()),
		Name:        id.Name,
		Role:        string(id.Role),
	})
}
