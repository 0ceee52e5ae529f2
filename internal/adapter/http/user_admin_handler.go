package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/caiobtc/velocompra-backend/internal/entity"
	"github.com/caiobtc/velocompra-backend/internal/usecase"
)

// UserAdminHandler manages back-office accounts. Password hashes never leave
// this layer; responses carry account data only.
type UserAdminHandler struct {
	users *usecase.UserService
}

func NewUserAdminHandler(users *usecase.UserService) *UserAdminHandler {
	return &UserAdminHandler{users: users}
}

type userResp struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	CPF    string `json:"cpf"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

func toUserResp(u domain.User) userResp {
	return userResp{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		CPF:    u.CPF,
		Role:   string(u.Role),
		Active: u.Active,
	}
}

// List returns all staff accounts; ?name= narrows by name fragment.
func (h *UserAdminHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userResp, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResp(u))
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserAdminHandler) Get(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResp(*u))
}

type createUserReq struct {
	Name     string `json:"name" binding:"required"`
	CPF      string `json:"cpf" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

func (h *UserAdminHandler) Create(c *gin.Context) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	u, err := h.users.Create(c.Request.Context(), usecase.CreateUserInput{
		Name:     req.Name,
		CPF:      req.CPF,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResp(*u))
}

type updateUserReq struct {
	Name     string `json:"name" binding:"required"`
	CPF      string `json:"cpf" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password"` // optional; empty keeps the current one
}

func (h *UserAdminHandler) Update(c *gin.Context) {
	var req updateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	u, err := h.users.Update(c.Request.Context(), c.Param("id"), usecase.UpdateUserInput{
		Name:     req.Name,
		CPF:      req.CPF,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResp(*u))
}

func (h *UserAdminHandler) ToggleActive(c *gin.Context) {
	active, err := h.users.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active})
}

type changePasswordReq struct {
	Password string `json:"password" binding:"required"`
}

func (h *UserAdminHandler) ChangePassword(c *gin.Context) {
	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), c.Param("id"), req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
