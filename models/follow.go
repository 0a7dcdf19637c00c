package models

// Follow is a directed edge: FollowerID follows FollowingID.
// The composite unique index is the real guard against duplicate edges;
// handler pre-checks only exist to produce friendlier messages.
type Follow struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	FollowerID  uint `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uint `gorm:"not null;index;uniqueIndex:idx_follower_following" json:"following_id"`
}
