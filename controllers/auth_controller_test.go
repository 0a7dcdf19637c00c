package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvillalta/instagram-api/models"
)

func TestSignup(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := doRequest(r, "POST", "/signup", map[string]string{
		"email":    "a@x.com",
		"password": "p",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var payload models.UserPayload
	env := decodeResults(t, w, &payload)
	assert.NotEmpty(t, env.AccessToken)
	assert.Equal(t, "a@x.com", payload.Email)
	assert.True(t, payload.IsActive)
	assert.False(t, payload.IsAdmin)
	assert.Empty(t, payload.Followers)
	assert.Empty(t, payload.Posts)
	assert.NotNil(t, payload.Followers)
	assert.NotNil(t, payload.Posts)

	// same email again, regardless of case, is a conflict
	w = doRequest(r, "POST", "/signup", map[string]string{
		"email":    "A@X.com",
		"password": "other",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "null", string(decodeEnvelope(t, w).Results))
}

func TestSignupMissingFields(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := doRequest(r, "POST", "/signup", map[string]string{"email": "a@x.com"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, "POST", "/signup", map[string]string{"password": "p"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignupStoresHashedPassword(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)

	w := doRequest(r, "POST", "/signup", map[string]string{
		"email":    "hash@x.com",
		"password": "supersecret",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "hash@x.com").First(&user).Error)
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	createUser(t, db, "a@x.com")

	w := doRequest(r, "POST", "/login", map[string]string{
		"email":    "A@x.com",
		"password": testPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload models.UserPayload
	env := decodeResults(t, w, &payload)
	assert.NotEmpty(t, env.AccessToken)
	assert.Equal(t, "a@x.com", payload.Email)
}

func TestLoginBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	createUser(t, db, "a@x.com")

	w := doRequest(r, "POST", "/login", map[string]string{
		"email":    "a@x.com",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, "POST", "/login", map[string]string{
		"email":    "unknown@x.com",
		"password": testPassword,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginInactiveUser(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createUser(t, db, "gone@x.com")
	require.NoError(t, db.Model(&user).Update("is_active", false).Error)

	// correct credentials are recognized but refused with a distinct status
	w := doRequest(r, "POST", "/login", map[string]string{
		"email":    "gone@x.com",
		"password": testPassword,
	}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	user := createUser(t, db, "a@x.com")
	token := authToken(t, db, user)

	w := doRequest(r, "POST", "/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(r, "GET", "/posts", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
