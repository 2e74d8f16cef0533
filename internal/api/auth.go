package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/auth"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

const tokenTTL = 24 * time.Hour

// AuthHandler handles signup and login, the public endpoints that hand out
// tokens.
type AuthHandler struct {
	svc       *data.Service
	jwtSecret string
	logger    *zap.Logger
}

func NewAuthHandler(svc *data.Service, jwtSecret string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, jwtSecret: jwtSecret, logger: logger}
}

type signupRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8,max=72"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=user agent developer landlord"`
	Phone    string      `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Signup handles POST /v1/auth/signup
//
// Flow:
//  1. Validate input
//  2. Check if email already exists
//  3. Hash the password
//  4. Create the user
//  5. Generate a JWT and return it
//
// Two concurrent signups with the same email can both pass step 2.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	existing, err := h.svc.FindUserByEmail(ctx, req.Email)
	if err != nil {
		respondError(c, h.logger, "signup failed", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is too long"})
		return
	}
	if err != nil {
		h.logger.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user, err := h.svc.CreateUser(ctx, models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Name:         req.Name,
		Phone:        req.Phone,
	})
	if err != nil {
		respondError(c, h.logger, "signup failed", err)
		return
	}

	token, err := auth.GenerateToken(user, h.jwtSecret, tokenTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signup failed"})
		return
	}

	h.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	c.JSON(http.StatusCreated, authResponse{Token: token, User: user.Public()})
}

// Login handles POST /v1/auth/login
//
// Unknown email and wrong password get the same answer. Suspended accounts
// are refused after the password check.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.FindUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, h.logger, "login failed", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, auth.ErrMismatch) {
			h.logger.Error("failed to check password", zap.Error(err))
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	if user.Status == models.UserSuspended {
		c.JSON(http.StatusForbidden, gin.H{"error": "account suspended"})
		return
	}

	token, err := auth.GenerateToken(*user, h.jwtSecret, tokenTTL)
	if err != nil {
		h.logger.Error("failed to generate token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: token, User: user.Public()})
}
