package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alvillalta/instagram-api/middleware"
	"github.com/alvillalta/instagram-api/models"
	"github.com/alvillalta/instagram-api/utils"
)

// AuthController handles signup, login and logout.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Signup registers a new active, non-admin account and issues a token.
func (a *AuthController) Signup(ctx *gin.Context) {
	var req struct {
		Email     string  `json:"email" binding:"required"`
		Password  string  `json:"password" binding:"required"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict, fmt.Sprintf("User %s already exists", email))
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      false,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}

	if err := a.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	}); err != nil {
		// the unique index decides races between concurrent signups
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, fmt.Sprintf("User %s already exists", email))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create user")
		return
	}

	token, err := utils.GenerateToken(a.db, user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	payload, err := models.SerializeUser(a.db, user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to serialize user")
		return
	}

	utils.RespondWithToken(ctx, http.StatusCreated,
		fmt.Sprintf("User %d posted successfully", user.ID), payload, token)
}

// Login verifies credentials and issues a JWT carrying the claims snapshot.
// The lookup deliberately ignores is_active so a deactivated account gets a
// distinct 403 instead of the generic credentials error.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "Bad email or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, "Bad email or password")
		return
	}

	if !user.IsActive {
		utils.Error(ctx, http.StatusForbidden, fmt.Sprintf("User %s is no longer active", user.Email))
		return
	}

	token, err := utils.GenerateToken(a.db, user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to generate token")
		return
	}

	payload, err := models.SerializeUser(a.db, user)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to serialize user")
		return
	}

	utils.RespondWithToken(ctx, http.StatusOK,
		fmt.Sprintf("User %s logged successfully", user.Email), payload, token)
}

// Logout revokes the presented token until its natural expiry.
func (a *AuthController) Logout(ctx *gin.Context) {
	claims, ok := getClaims(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	if claims.ExpiresAt != nil {
		utils.RevokeToken(claims.ID, claims.ExpiresAt.Time)
	}

	utils.Respond(ctx, http.StatusOK, fmt.Sprintf("User %d logged out successfully", claims.UserID), nil)
}

func getClaims(ctx *gin.Context) (*utils.Claims, bool) {
	value, exists := ctx.Get(middleware.ContextClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok
}
