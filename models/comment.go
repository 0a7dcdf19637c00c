package models

// Comment is a reply on a post. Any authenticated user may create one;
// listing follows insertion order.
type Comment struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Body   string `gorm:"size:2200" json:"body"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
	PostID uint   `gorm:"index;not null" json:"post_id"`
}
