package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}, &Follow{}, &Post{}, &Media{}, &Comment{}))
	return db
}

func TestSerializeUserFreshState(t *testing.T) {
	db := setupDB(t)

	alice := User{Email: "alice@x.com", PasswordHash: "h", IsActive: true}
	bob := User{Email: "bob@x.com", PasswordHash: "h", IsActive: true}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	payload, err := SerializeUser(db, alice)
	require.NoError(t, err)
	assert.Empty(t, payload.Followers)
	assert.Empty(t, payload.Following)
	assert.Empty(t, payload.Posts)
	assert.Empty(t, payload.Comments)

	// the payload reflects the store as it is now, not any earlier snapshot
	require.NoError(t, db.Create(&Follow{FollowerID: bob.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, db.Create(&Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)
	post := Post{Title: "t", Date: time.Now(), UserID: alice.ID}
	require.NoError(t, db.Create(&post).Error)
	require.NoError(t, db.Create(&Comment{Body: "c", UserID: alice.ID, PostID: post.ID}).Error)

	payload, err = SerializeUser(db, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, payload.Followers)
	assert.Equal(t, []uint{bob.ID}, payload.Following)
	assert.Equal(t, []uint{post.ID}, payload.Posts)
	require.Len(t, payload.Comments, 1)
	assert.Equal(t, "c", payload.Comments[0].Body)
}

func TestSerializePost(t *testing.T) {
	db := setupDB(t)

	owner := User{Email: "o@x.com", PasswordHash: "h", IsActive: true}
	require.NoError(t, db.Create(&owner).Error)

	date := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	post := Post{Title: "t", Description: "d", Body: "b", Date: date, UserID: owner.ID}
	require.NoError(t, db.Create(&post).Error)

	payload, err := SerializePost(db, post)
	require.NoError(t, err)
	assert.Equal(t, "09-03-2024", payload.Date)
	assert.Equal(t, owner.ID, payload.UserID)
	// no medium and no comments: url and comments serialize as null
	assert.Nil(t, payload.MediumToPost)
	assert.Nil(t, payload.Comments)

	require.NoError(t, db.Create(&Media{MediumType: MediumImage, URL: "http://x/p.jpg", PostID: post.ID}).Error)
	require.NoError(t, db.Create(&Comment{Body: "hi", UserID: owner.ID, PostID: post.ID}).Error)

	payload, err = SerializePost(db, post)
	require.NoError(t, err)
	require.NotNil(t, payload.MediumToPost)
	assert.Equal(t, "http://x/p.jpg", *payload.MediumToPost)
	require.Len(t, payload.Comments, 1)
	assert.Equal(t, "hi", payload.Comments[0].Body)
}

func TestFollowEdgeUniqueness(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, db.Create(&Follow{FollowerID: 1, FollowingID: 2}).Error)
	err := db.Create(&Follow{FollowerID: 1, FollowingID: 2}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// the reverse edge is a different ordered pair and is allowed
	assert.NoError(t, db.Create(&Follow{FollowerID: 2, FollowingID: 1}).Error)
}

func TestMediaUniquePerPost(t *testing.T) {
	db := setupDB(t)

	require.NoError(t, db.Create(&Media{MediumType: MediumImage, URL: "u", PostID: 1}).Error)
	err := db.Create(&Media{MediumType: MediumVideo, URL: "v", PostID: 1}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestMediumTypeValid(t *testing.T) {
	assert.True(t, MediumImage.Valid())
	assert.True(t, MediumVideo.Valid())
	assert.True(t, MediumAudio.Valid())
	assert.False(t, MediumType("gif").Valid())
	assert.False(t, MediumType("").Valid())
}
