package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alvillalta/instagram-api/middleware"
	"github.com/alvillalta/instagram-api/models"
	"github.com/alvillalta/instagram-api/utils"
)

// UserController handles profile reads, partial updates and deactivation.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// GetUser returns the serialized user with its current social graph.
func (u *UserController) GetUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var user models.User
	if err := u.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("User %d not found", userID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to get user")
		return
	}

	payload, err := models.SerializeUser(u.db, user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to serialize user")
		return
	}

	utils.Respond(ctx, http.StatusOK, fmt.Sprintf("User %d got successfully", userID), payload)
}

// UpdateUser applies a partial update of {email, first_name, last_name}.
// Absent fields keep their prior value. Only the user itself may update.
func (u *UserController) UpdateUser(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var user models.User
	if err := u.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("User %d not found", userID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to get user")
		return
	}

	if callerID != user.ID {
		utils.Error(ctx, http.StatusForbidden,
			fmt.Sprintf("User %d is not allowed to put %d", callerID, userID))
		return
	}

	var req struct {
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.FirstName != nil {
		user.FirstName = req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}

	if err := u.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(&user).Error
	}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, fmt.Sprintf("User %s already exists", user.Email))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to update user")
		return
	}

	payload, err := models.SerializeUser(u.db, user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to serialize user")
		return
	}

	utils.Respond(ctx, http.StatusOK, fmt.Sprintf("User %d put successfully", user.ID), payload)
}

// DeactivateUser flips is_active to false. The row is never removed and no
// operation turns the flag back on.
func (u *UserController) DeactivateUser(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var user models.User
	if err := u.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("User %d not found", userID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to get user")
		return
	}

	if callerID != user.ID {
		utils.Error(ctx, http.StatusForbidden,
			fmt.Sprintf("User %d is not allowed to delete %d", callerID, userID))
		return
	}

	if err := u.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&user).Update("is_active", false).Error
	}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to deactivate user")
		return
	}

	utils.Respond(ctx, http.StatusOK, fmt.Sprintf("User %d deleted successfully", user.ID), nil)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusBadRequest, fmt.Sprintf("invalid %s parameter", name))
		return 0, false
	}
	return uint(id), true
}

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}
