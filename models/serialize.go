package models

import (
	"errors"

	"gorm.io/gorm"
)

// DateLayout is the wire format for post dates (DD-MM-YYYY).
const DateLayout = "02-01-2006"

// CommentPayload is the wire representation of a comment.
type CommentPayload struct {
	ID     uint   `json:"id"`
	Body   string `json:"body"`
	UserID uint   `json:"user_id"`
	PostID uint   `json:"post_id"`
}

// Serialize returns the wire representation of the comment.
func (c Comment) Serialize() CommentPayload {
	return CommentPayload{ID: c.ID, Body: c.Body, UserID: c.UserID, PostID: c.PostID}
}

// FollowPayload is the wire representation of a follow edge.
type FollowPayload struct {
	ID          uint `json:"id"`
	FollowingID uint `json:"following_id"`
	FollowerID  uint `json:"follower_id"`
}

// Serialize returns the wire representation of the follow edge.
func (f Follow) Serialize() FollowPayload {
	return FollowPayload{ID: f.ID, FollowingID: f.FollowingID, FollowerID: f.FollowerID}
}

// MediaPayload is the wire representation of a medium.
type MediaPayload struct {
	ID         uint       `json:"id"`
	MediumType MediumType `json:"medium_type"`
	URL        string     `json:"url"`
	PostID     uint       `json:"post_id"`
}

// Serialize returns the wire representation of the medium.
func (m Media) Serialize() MediaPayload {
	return MediaPayload{ID: m.ID, MediumType: m.MediumType, URL: m.URL, PostID: m.PostID}
}

// UserPayload embeds the user's current social graph. The arrays are computed
// by live queries at serialization time so responses always reflect store
// state instead of data baked into some earlier snapshot.
type UserPayload struct {
	ID        uint             `json:"id"`
	Email     string           `json:"email"`
	IsActive  bool             `json:"is_active"`
	IsAdmin   bool             `json:"is_admin"`
	FirstName *string          `json:"first_name"`
	LastName  *string          `json:"last_name"`
	Followers []uint           `json:"followers"`
	Following []uint           `json:"following"`
	Posts     []uint           `json:"posts"`
	Comments  []CommentPayload `json:"comments"`
}

// SerializeUser builds the user payload with fresh lookups against the store.
func SerializeUser(db *gorm.DB, u User) (UserPayload, error) {
	payload := UserPayload{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Followers: []uint{},
		Following: []uint{},
		Posts:     []uint{},
		Comments:  []CommentPayload{},
	}

	if err := db.Model(&Follow{}).Where("following_id = ?", u.ID).
		Pluck("follower_id", &payload.Followers).Error; err != nil {
		return payload, err
	}
	if err := db.Model(&Follow{}).Where("follower_id = ?", u.ID).
		Pluck("following_id", &payload.Following).Error; err != nil {
		return payload, err
	}
	if err := db.Model(&Post{}).Where("user_id = ?", u.ID).
		Pluck("id", &payload.Posts).Error; err != nil {
		return payload, err
	}

	var comments []Comment
	if err := db.Where("user_id = ?", u.ID).Order("id ASC").Find(&comments).Error; err != nil {
		return payload, err
	}
	for _, c := range comments {
		payload.Comments = append(payload.Comments, c.Serialize())
	}

	return payload, nil
}

// PostPayload embeds the medium url (or null) and the post's comments.
// Comments is null when the post has none, matching the existing contract.
type PostPayload struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Body         string           `json:"body"`
	Date         string           `json:"date"`
	MediumToPost *string          `json:"medium_to_post"`
	Comments     []CommentPayload `json:"comments"`
	UserID       uint             `json:"user_id"`
}

// SerializePost builds the post payload with fresh medium and comment lookups.
func SerializePost(db *gorm.DB, p Post) (PostPayload, error) {
	payload := PostPayload{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Body:        p.Body,
		Date:        p.Date.Format(DateLayout),
		UserID:      p.UserID,
	}

	var medium Media
	err := db.Where("post_id = ?", p.ID).First(&medium).Error
	switch {
	case err == nil:
		payload.MediumToPost = &medium.URL
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return payload, err
	}

	var comments []Comment
	if err := db.Where("post_id = ?", p.ID).Order("id ASC").Find(&comments).Error; err != nil {
		return payload, err
	}
	for _, c := range comments {
		payload.Comments = append(payload.Comments, c.Serialize())
	}

	return payload, nil
}
