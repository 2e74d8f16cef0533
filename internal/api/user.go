package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nugabest/estatedb/internal/data"
	"github.com/nugabest/estatedb/internal/middleware"
	"github.com/nugabest/estatedb/internal/models"
	"go.uber.org/zap"
)

type UserHandler struct {
	svc    *data.Service
	logger *zap.Logger
}

func NewUserHandler(svc *data.Service, logger *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// GetMe handles GET /v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.svc.GetUser(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, "failed to get user", err)
		return
	}
	// Token for an account that no longer exists.
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Bio   *string `json:"bio"`
	Phone *string `json:"phone"`
}

// UpdateMe handles PATCH /v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	user, err := h.svc.GetUser(ctx, middleware.GetUserID(c))
	if err != nil {
		respondError(c, h.logger, "failed to update profile", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if err := h.svc.UpdateUser(ctx, *user); err != nil {
		respondError(c, h.logger, "failed to update profile", err)
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// List handles GET /v1/admin/users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.QueryUsers(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "failed to list users", err)
		return
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	c.JSON(http.StatusOK, out)
}

type adminUpdateUserRequest struct {
	Role             *models.Role             `json:"role"`
	Status           *models.UserStatus       `json:"status"`
	Verified         *bool                    `json:"verified"`
	KYCStatus        *models.KYCStatus        `json:"kycStatus"`
	SubscriptionPlan *models.SubscriptionPlan `json:"subscriptionPlan"`
}

// Update handles PATCH /v1/admin/users/:id
//
// Only account-management fields can be changed here; enum values are
// validated by the repository.
func (h *UserHandler) Update(c *gin.Context) {
	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()

	user, err := h.svc.GetUser(ctx, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "failed to update user", err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Verified != nil {
		user.Verified = *req.Verified
	}
	if req.KYCStatus != nil {
		user.KYCStatus = *req.KYCStatus
	}
	if req.SubscriptionPlan != nil {
		user.SubscriptionPlan = req.SubscriptionPlan
	}

	if err := h.svc.UpdateUser(ctx, *user); err != nil {
		respondError(c, h.logger, "failed to update user", err)
		return
	}
	h.logger.Info("user updated by admin",
		zap.String("user_id", user.ID),
		zap.String("admin_id", middleware.GetUserID(c)),
	)
	c.JSON(http.StatusOK, user.Public())
}
