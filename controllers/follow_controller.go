package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alvillalta/instagram-api/models"
	"github.com/alvillalta/instagram-api/utils"
)

// FollowController manages the directed follow graph.
type FollowController struct {
	db *gorm.DB
}

// NewFollowController creates a FollowController.
func NewFollowController(db *gorm.DB) *FollowController {
	return &FollowController{db: db}
}

// ListFollowGraph returns the caller's followers and who the caller follows.
// Both lists are always present, possibly empty.
func (f *FollowController) ListFollowGraph(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	var followerEdges []models.Follow
	if err := f.db.Where("following_id = ?", callerID).Find(&followerEdges).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list followers")
		return
	}

	var followingEdges []models.Follow
	if err := f.db.Where("follower_id = ?", callerID).Find(&followingEdges).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list following")
		return
	}

	followers := make([]models.FollowPayload, 0, len(followerEdges))
	for _, edge := range followerEdges {
		followers = append(followers, edge.Serialize())
	}
	following := make([]models.FollowPayload, 0, len(followingEdges))
	for _, edge := range followingEdges {
		following = append(following, edge.Serialize())
	}

	utils.Respond(ctx, http.StatusOK,
		fmt.Sprintf("Followers and followed by user %d got successfully", callerID),
		gin.H{"followers": followers, "following": following})
}

// Follow creates the directed edge caller -> following_id.
func (f *FollowController) Follow(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	var req struct {
		FollowingID uint `json:"following_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	if req.FollowingID == callerID {
		utils.Error(ctx, http.StatusBadRequest,
			fmt.Sprintf("User %d cannot follow themselves", callerID))
		return
	}

	var target models.User
	if err := f.db.First(&target, req.FollowingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("User %d not found", req.FollowingID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to get user")
		return
	}

	var existing models.Follow
	if err := f.db.Where("follower_id = ? AND following_id = ?", callerID, req.FollowingID).
		First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict,
			fmt.Sprintf("User %d is already following %d", callerID, req.FollowingID))
		return
	}

	edge := models.Follow{FollowerID: callerID, FollowingID: req.FollowingID}
	if err := f.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&edge).Error
	}); err != nil {
		// the composite unique index decides concurrent follow races
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict,
				fmt.Sprintf("User %d is already following %d", callerID, req.FollowingID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create follow")
		return
	}

	utils.Respond(ctx, http.StatusCreated,
		fmt.Sprintf("User %d now follows user %d", callerID, req.FollowingID), edge.Serialize())
}

// Unfollow deletes the caller's edge to following_id.
func (f *FollowController) Unfollow(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	followingID, ok := parseIDParam(ctx, "following_id")
	if !ok {
		return
	}

	var edge models.Follow
	if err := f.db.Where("follower_id = ? AND following_id = ?", callerID, followingID).
		First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound,
				fmt.Sprintf("Following user %d not found", followingID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to get follow")
		return
	}

	if err := f.db.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&edge).Error
	}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to delete follow")
		return
	}

	utils.Respond(ctx, http.StatusOK,
		fmt.Sprintf("Following user %d deleted successfully", followingID), nil)
}
