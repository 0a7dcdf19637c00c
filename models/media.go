package models

// MediumType enumerates the accepted media kinds.
type MediumType string

const (
	MediumImage MediumType = "image"
	MediumVideo MediumType = "video"
	MediumAudio MediumType = "audio"
)

// Valid reports whether t is one of the accepted media kinds.
func (t MediumType) Valid() bool {
	switch t {
	case MediumImage, MediumVideo, MediumAudio:
		return true
	}
	return false
}

// Media is a single attachment bound to exactly one post. The unique index on
// PostID enforces the one-medium-per-post invariant.
type Media struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	MediumType MediumType `gorm:"size:16;not null" json:"medium_type"`
	URL        string     `gorm:"size:2000;not null" json:"url"`
	PostID     uint       `gorm:"uniqueIndex;not null" json:"post_id"`
}
