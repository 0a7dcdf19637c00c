package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/alvillalta/instagram-api/models"
	"github.com/alvillalta/instagram-api/utils"
)

// PostController manages posts and their comments and media.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// CreatePost creates a post owned by the caller. The date is stamped
// server-side; any date supplied in the payload is ignored.
func (p *PostController) CreatePost(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Body        string `json:"body"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	post := models.Post{
		Title:       utils.Sanitize(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		Body:        utils.Sanitize(req.Body),
		Date:        time.Now(),
		UserID:      callerID,
	}

	if err := p.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&post).Error
	}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to create post")
		return
	}

	payload, err := models.SerializePost(p.db, post)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to serialize post")
		return
	}

	utils.Respond(ctx, http.StatusCreated,
		fmt.Sprintf("User %d posted a new post", callerID), payload)
}

// ListPosts returns the caller's own posts only. This endpoint is a personal
// timeline, not a global feed.
func (p *PostController) ListPosts(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	var posts []models.Post
	if err := p.db.Where("user_id = ?", callerID).Order("id ASC").Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}

	results := make([]models.PostPayload, 0, len(posts))
	for _, post := range posts {
		payload, err := models.SerializePost(p.db, post)
		if err != nil {
			utils.Error(ctx, http.StatusInternalServerError, "failed to serialize post")
			return
		}
		results = append(results, payload)
	}

	message := fmt.Sprintf("Posts from user %d got successfully", callerID)
	if len(results) == 0 {
		message = fmt.Sprintf("User %d has not posted anything yet", callerID)
	}
	utils.Respond(ctx, http.StatusOK, message, results)
}

// ListComments returns all comments on a post in insertion order.
func (p *PostController) ListComments(ctx *gin.Context) {
	postID, ok := p.requirePost(ctx)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := p.db.Where("post_id = ?", postID).Order("id ASC").Find(&comments).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list comments")
		return
	}

	results := make([]models.CommentPayload, 0, len(comments))
	for _, comment := range comments {
		results = append(results, comment.Serialize())
	}

	message := fmt.Sprintf("Comments from post %d got successfully", postID)
	if len(results) == 0 {
		message = fmt.Sprintf("There are no comments in post %d", postID)
	}
	utils.Respond(ctx, http.StatusOK, message, results)
}

// CreateComment adds a comment authored by the caller. Any authenticated
// user may comment on any existing post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	postID, ok := p.requirePost(ctx)
	if !ok {
		return
	}

	var req struct {
		Body string `json:"body" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	comment := models.Comment{
		Body:   utils.Sanitize(req.Body),
		UserID: callerID,
		PostID: postID,
	}

	if err := p.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&comment).Error
	}); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to create comment")
		return
	}

	utils.Respond(ctx, http.StatusCreated,
		fmt.Sprintf("User %d posted a new comment in post %d", callerID, postID),
		comment.Serialize())
}

// GetMedia returns the single medium attached to a post, or 404 when there
// is none. A post never has more than one medium.
func (p *PostController) GetMedia(ctx *gin.Context) {
	postID, ok := p.requirePost(ctx)
	if !ok {
		return
	}

	var medium models.Media
	if err := p.db.Where("post_id = ?", postID).First(&medium).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound,
				fmt.Sprintf("There is no medium in post %d", postID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to get medium")
		return
	}

	utils.Respond(ctx, http.StatusOK,
		fmt.Sprintf("Medium from post %d got successfully", postID), medium.Serialize())
}

// AttachMedia binds a medium to a post. Only the post's owner may attach,
// the type must be a known kind and a post holds at most one medium.
func (p *PostController) AttachMedia(ctx *gin.Context) {
	callerID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "Current user not found")
		return
	}

	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var post models.Post
	if err := p.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("Post %d not found", postID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to get post")
		return
	}

	if post.UserID != callerID {
		utils.Error(ctx, http.StatusForbidden,
			fmt.Sprintf("User %d is not allowed to add a medium to post %d", callerID, postID))
		return
	}

	var req struct {
		MediumType string `json:"medium_type"`
		URL        string `json:"url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	mediumType := models.MediumType(strings.TrimSpace(req.MediumType))
	if !mediumType.Valid() {
		utils.Error(ctx, http.StatusBadRequest,
			fmt.Sprintf("Invalid medium_type: %s", req.MediumType))
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		utils.Error(ctx, http.StatusBadRequest,
			fmt.Sprintf("Error in adding medium to post %d", postID))
		return
	}

	var existing models.Media
	if err := p.db.Where("post_id = ?", postID).First(&existing).Error; err == nil {
		utils.Error(ctx, http.StatusConflict,
			fmt.Sprintf("Post %d already has a medium", postID))
		return
	}

	medium := models.Media{
		MediumType: mediumType,
		URL:        url,
		PostID:     postID,
	}

	if err := p.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&medium).Error
	}); err != nil {
		// the unique index on post_id decides concurrent attach races
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict,
				fmt.Sprintf("Post %d already has a medium", postID))
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to create medium")
		return
	}

	utils.Respond(ctx, http.StatusCreated,
		fmt.Sprintf("User %d added a new medium to post %d", callerID, postID),
		medium.Serialize())
}

// requirePost parses the :id parameter and verifies the post exists,
// writing the error response itself when either step fails.
func (p *PostController) requirePost(ctx *gin.Context) (uint, bool) {
	postID, ok := parseIDParam(ctx, "id")
	if !ok {
		return 0, false
	}

	var post models.Post
	if err := p.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, fmt.Sprintf("Post %d not found", postID))
			return 0, false
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to get post")
		return 0, false
	}

	return postID, true
}
