package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alvillalta/instagram-api/middleware"
	"github.com/alvillalta/instagram-api/models"
	"github.com/alvillalta/instagram-api/utils"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret-key")
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Media{},
		&models.Comment{},
	))
	return db
}

// newTestRouter registers the controller routes on a fresh engine.
func newTestRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()

	auth := NewAuthController(db)
	user := NewUserController(db)
	follow := NewFollowController(db)
	post := NewPostController(db)

	r.POST("/signup", auth.Signup)
	r.POST("/login", auth.Login)

	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/logout", auth.Logout)
	protected.GET("/users/:id", user.GetUser)
	protected.PUT("/users/:id", user.UpdateUser)
	protected.DELETE("/users/:id", user.DeactivateUser)
	protected.GET("/followers", follow.ListFollowGraph)
	protected.POST("/followers", follow.Follow)
	protected.DELETE("/followers/:following_id", follow.Unfollow)
	protected.GET("/posts", post.ListPosts)
	protected.POST("/posts", post.CreatePost)
	protected.GET("/posts/:id/comments", post.ListComments)
	protected.POST("/posts/:id/comments", post.CreateComment)
	protected.GET("/posts/:id/media", post.GetMedia)
	protected.POST("/posts/:id/media", post.AttachMedia)

	return r
}

const testPassword = "password123"

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	user := models.User{Email: email, PasswordHash: hash, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func authToken(t *testing.T, db *gorm.DB, user models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(db, user)
	require.NoError(t, err)
	return token
}

func doRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Message     string          `json:"message"`
	Results     json.RawMessage `json:"results"`
	AccessToken string          `json:"access_token"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func decodeResults(t *testing.T, w *httptest.ResponseRecorder, out interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.NotEqual(t, "null", string(env.Results))
	require.NoError(t, json.Unmarshal(env.Results, out))
	return env
}
