package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvillalta/instagram-api/models"
)

func TestFollow(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := createUser(t, db, "alice@x.com")
	bob := createUser(t, db, "bob@x.com")
	token := authToken(t, db, alice)

	w := doRequest(r, "POST", "/followers", map[string]uint{"following_id": bob.ID}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var payload models.FollowPayload
	decodeResults(t, w, &payload)
	assert.Equal(t, alice.ID, payload.FollowerID)
	assert.Equal(t, bob.ID, payload.FollowingID)
}

func TestFollowDuplicate(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := createUser(t, db, "alice@x.com")
	bob := createUser(t, db, "bob@x.com")
	token := authToken(t, db, alice)

	w := doRequest(r, "POST", "/followers", map[string]uint{"following_id": bob.ID}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, "POST", "/followers", map[string]uint{"following_id": bob.ID}, token)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFollowSelf(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := createUser(t, db, "alice@x.com")
	token := authToken(t, db, alice)

	w := doRequest(r, "POST", "/followers", map[string]uint{"following_id": alice.ID}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFollowUnknownTarget(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := createUser(t, db, "alice@x.com")
	token := authToken(t, db, alice)

	w := doRequest(r, "POST", "/followers", map[string]uint{"following_id": 999}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollowLifecycle(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := createUser(t, db, "alice@x.com")
	bob := createUser(t, db, "bob@x.com")
	token := authToken(t, db, alice)

	w := doRequest(r, "POST", "/followers", map[string]uint{"following_id": bob.ID}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, "DELETE", fmt.Sprintf("/followers/%d", bob.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	// deleting a gone edge is NotFound
	w = doRequest(r, "DELETE", fmt.Sprintf("/followers/%d", bob.ID), nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// and following again succeeds: the edge lifecycle is reversible
	w = doRequest(r, "POST", "/followers", map[string]uint{"following_id": bob.ID}, token)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestListFollowGraph(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := createUser(t, db, "alice@x.com")
	bob := createUser(t, db, "bob@x.com")
	carol := createUser(t, db, "carol@x.com")

	// alice follows bob; carol follows alice
	require.NoError(t, db.Create(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID}).Error)

	token := authToken(t, db, alice)
	w := doRequest(r, "GET", "/followers", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var results struct {
		Followers []models.FollowPayload `json:"followers"`
		Following []models.FollowPayload `json:"following"`
	}
	decodeResults(t, w, &results)
	require.Len(t, results.Followers, 1)
	require.Len(t, results.Following, 1)
	assert.Equal(t, carol.ID, results.Followers[0].FollowerID)
	assert.Equal(t, bob.ID, results.Following[0].FollowingID)
}

func TestListFollowGraphEmpty(t *testing.T) {
	db := setupTestDB(t)
	r := newTestRouter(db)
	alice := createUser(t, db, "alice@x.com")
	token := authToken(t, db, alice)

	w := doRequest(r, "GET", "/followers", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	// both lists are always present, even when empty
	var raw map[string]json.RawMessage
	decodeResults(t, w, &raw)
	assert.JSONEq(t, "[]", string(raw["followers"]))
	assert.JSONEq(t, "[]", string(raw["following"]))
}
