package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/aurelshop/aurel-api/initializers"
	"github.com/aurelshop/aurel-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLowercasesEmailAndIssuesToken(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()

	recorder := performRequest(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "Ada@Example.COM",
		"password":  "secret123",
	})
	requireStatus(t, recorder, http.StatusCreated)

	env := decodeEnvelope(t, recorder)
	var data struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "ada@example.com", data.User.Email)
	assert.Equal(t, "user", data.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	createTestUser(t, "taken@example.com", "user")

	recorder := performRequest(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "taken@example.com",
		"password":  "secret123",
	})
	requireStatus(t, recorder, http.StatusBadRequest)
}

func TestLoginWithWrongPassword(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	createTestUser(t, "login@example.com", "user")

	recorder := performRequest(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	requireStatus(t, recorder, http.StatusUnauthorized)

	recorder = performRequest(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"email":    "login@example.com",
		"password": "secret123",
	})
	requireStatus(t, recorder, http.StatusOK)
}

func TestResetPasswordWithExpiredToken(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	user, _ := createTestUser(t, "forgetful@example.com", "user")

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, initializers.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"reset_password_token":  "expired-token",
		"reset_password_expire": expired,
	}).Error)

	recorder := performRequest(t, router, http.MethodPut, "/auth/reset-password/expired-token", "", map[string]any{
		"password": "newsecret",
	})
	requireStatus(t, recorder, http.StatusBadRequest)
}

func TestResetPasswordClearsTokenAfterUse(t *testing.T) {
	setupTestDB(t)
	router := newTestRouter()
	user, _ := createTestUser(t, "forgetful@example.com", "user")

	valid := time.Now().Add(10 * time.Minute)
	require.NoError(t, initializers.DB.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"reset_password_token":  "valid-token",
		"reset_password_expire": valid,
	}).Error)

	recorder := performRequest(t, router, http.MethodPut, "/auth/reset-password/valid-token", "", map[string]any{
		"password": "newsecret",
	})
	requireStatus(t, recorder, http.StatusOK)

	var stored models.User
	require.NoError(t, initializers.DB.First(&stored, user.ID).Error)
	assert.Empty(t, stored.ResetPasswordToken)
	assert.NoError(t, comparePasswords(stored.Password, "newsecret"))

	// Token is single-use.
	recorder = performRequest(t, router, http.MethodPut, "/auth/reset-password/valid-token", "", map[string]any{
		"password": "another-secret",
	})
	requireStatus(t, recorder, http.StatusBadRequest)
}
