package user_test

import (
	"fmt"
	"testing"

	"github.com/p3mo/userdir/internal/database"
	"github.com/p3mo/userdir/internal/models"
	"github.com/p3mo/userdir/internal/role"
	"github.com/p3mo/userdir/internal/testutils"
	"github.com/stretchr/testify/assert"
)

// ========== USER TESTS ==========

func TestCreateUserHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)

	t.Run("Success - Create user with details", func(t *testing.T) {
		body := map[string]interface{}{
			"email":         "newuser@test.com",
			"first_name":    "Grace",
			"middle_name":   "Brewster",
			"last_name":     "Hopper",
			"date_of_birth": "1906-12-09T00:00:00Z",
			"role_id":       role.AdminRoleID,
			"country":       "United States",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/users", body)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		assert.True(t, result.Success)

		data := result.Data.(map[string]interface{})
		assert.Equal(t, "newuser@test.com", data["email"])
		assert.Equal(t, "Grace", data["first_name"])
		assert.Equal(t, "Brewster", data["middle_name"])
		assert.Equal(t, "Hopper", data["last_name"])
		assert.Equal(t, "United States", data["country"])
		assert.Equal(t, "Admin", data["role"])
		assert.Equal(t, true, data["is_active"])
	})

	t.Run("Error - Duplicate email", func(t *testing.T) {
		body := map[string]interface{}{
			"email":         "newuser@test.com", // Already exists
			"first_name":    "Grace",
			"last_name":     "Hopper",
			"date_of_birth": "1906-12-09T00:00:00Z",
			"role_id":       role.UserRoleID,
			"country":       "United States",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/users", body)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.Code)

		testutils.AssertError(t, resp, "CONFLICT")
	})

	t.Run("Error - Invalid email and short name", func(t *testing.T) {
		body := map[string]interface{}{
			"email":         "not-an-email",
			"first_name":    "G",
			"last_name":     "Hopper",
			"date_of_birth": "1906-12-09T00:00:00Z",
			"role_id":       role.UserRoleID,
			"country":       "United States",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/users", body)
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - Unknown role id", func(t *testing.T) {
		body := map[string]interface{}{
			"email":         "roleless@test.com",
			"first_name":    "Grace",
			"last_name":     "Hopper",
			"date_of_birth": "1906-12-09T00:00:00Z",
			"role_id":       999,
			"country":       "United States",
		}

		resp, err := testutils.MakeRequest(app, "POST", "/api/users", body)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")

		// Nothing persisted for the failed create.
		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", "roleless@test.com").Count(&count)
		assert.Zero(t, count)
	})
}

func TestGetUserHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	created := testutils.CreateTestUser(t, db, "reader@test.com", role.UserRoleID)

	t.Run("Success - Merged view with resolved role name", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/api/users/%d", created.ID), nil)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "reader@test.com", data["email"])
		assert.Equal(t, "Test", data["first_name"])
		assert.Equal(t, "User", data["last_name"])
		assert.Equal(t, "User", data["role"])
		assert.Equal(t, "United Kingdom", data["country"])
	})

	t.Run("Success - Defaults when details row is absent", func(t *testing.T) {
		bare := testutils.CreateBareUser(t, db, "bare@test.com")

		resp, err := testutils.MakeRequest(app, "GET", fmt.Sprintf("/api/users/%d", bare.ID), nil)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Equal(t, "Unknown", data["first_name"])
		assert.Equal(t, "Unknown", data["last_name"])
		assert.Equal(t, "User", data["role"])
		assert.EqualValues(t, role.UserRoleID, data["role_id"])
		assert.Equal(t, "Unknown", data["country"])
		assert.Equal(t, "0001-01-01T00:00:00Z", data["date_of_birth"])
	})

	t.Run("Error - User not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "GET", "/api/users/999", nil)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}

func TestListUsersHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	testutils.CreateTestUser(t, db, "one@test.com", role.UserRoleID)
	testutils.CreateTestUser(t, db, "two@test.com", role.AdminRoleID)
	testutils.CreateBareUser(t, db, "three@test.com")

	resp, err := testutils.MakeRequest(app, "GET", "/api/users", nil)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Code)

	var result testutils.StandardResponse
	testutils.ParseResponse(t, resp, &result)
	assert.True(t, result.Success)

	// The bare user must appear too, with defaults, not fail the list.
	users := result.Data.([]interface{})
	assert.Len(t, users, 3)
}

func TestUpdateUserHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Success - Partial update changes only the supplied field", func(t *testing.T) {
		created := testutils.CreateTestUser(t, db, "partial@test.com", role.UserRoleID)

		var before models.UserDetails
		db.Where("user_id = ?", created.ID).First(&before)

		body := map[string]interface{}{
			"country": "France",
		}

		resp, err := testutils.MakeRequest(app, "PUT", fmt.Sprintf("/api/users/%d", created.ID), body)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var afterUser models.User
		db.First(&afterUser, created.ID)
		var after models.UserDetails
		db.Where("user_id = ?", created.ID).First(&after)

		assert.Equal(t, "France", after.Country)
		assert.Equal(t, created.Email, afterUser.Email)
		assert.Equal(t, created.IsActive, afterUser.IsActive)
		assert.Equal(t, before.FirstName, after.FirstName)
		assert.Equal(t, before.MiddleName, after.MiddleName)
		assert.Equal(t, before.LastName, after.LastName)
		assert.True(t, before.DateOfBirth.Equal(after.DateOfBirth))
		assert.Equal(t, before.RoleID, after.RoleID)
	})

	t.Run("Success - First update creates the missing details row", func(t *testing.T) {
		bare := testutils.CreateBareUser(t, db, "late@test.com")

		body := map[string]interface{}{
			"first_name": "Late",
			"last_name":  "Bloomer",
		}

		resp, err := testutils.MakeRequest(app, "PUT", fmt.Sprintf("/api/users/%d", bare.ID), body)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var details models.UserDetails
		assert.NoError(t, db.Where("user_id = ?", bare.ID).First(&details).Error)
		assert.Equal(t, "Late", details.FirstName)
		assert.Equal(t, "Bloomer", details.LastName)
	})

	t.Run("Error - User not found", func(t *testing.T) {
		body := map[string]interface{}{"country": "France"}

		resp, err := testutils.MakeRequest(app, "PUT", "/api/users/999", body)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})

	t.Run("Error - Unknown role id", func(t *testing.T) {
		created := testutils.CreateTestUser(t, db, "rolechange@test.com", role.UserRoleID)

		body := map[string]interface{}{"role_id": 999}

		resp, err := testutils.MakeRequest(app, "PUT", fmt.Sprintf("/api/users/%d", created.ID), body)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}

func TestUploadAvatarHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	fakePNG := []byte("\x89PNG\r\n\x1a\nfake image bytes")

	t.Run("Success - Avatar stored and URL set", func(t *testing.T) {
		created := testutils.CreateTestUser(t, db, "avatar@test.com", role.UserRoleID)

		resp, err := testutils.MakeMultipartRequestWithFile(app, "POST",
			fmt.Sprintf("/api/users/%d/avatar", created.ID),
			"avatar", "face.png", "image/png", fakePNG)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.Code)

		var result testutils.StandardResponse
		testutils.ParseResponse(t, resp, &result)
		data := result.Data.(map[string]interface{})
		assert.Contains(t, data["avatar_url"], "/uploads/avatars/")

		var details models.UserDetails
		db.Where("user_id = ?", created.ID).First(&details)
		assert.Contains(t, details.AvatarURL, "/uploads/avatars/")
	})

	t.Run("Error - Non-image rejected", func(t *testing.T) {
		created := testutils.CreateTestUser(t, db, "textfile@test.com", role.UserRoleID)

		resp, err := testutils.MakeMultipartRequestWithFile(app, "POST",
			fmt.Sprintf("/api/users/%d/avatar", created.ID),
			"avatar", "notes.txt", "text/plain", []byte("not an image"))
		assert.NoError(t, err)
		assert.Equal(t, 422, resp.Code)

		testutils.AssertError(t, resp, "VALIDATION_ERROR")
	})

	t.Run("Error - User not found", func(t *testing.T) {
		resp, err := testutils.MakeMultipartRequestWithFile(app, "POST",
			"/api/users/999/avatar",
			"avatar", "face.png", "image/png", fakePNG)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}

func TestDeleteUserHandler(t *testing.T) {
	app := testutils.SetupTestApp(t)
	db := database.DB

	t.Run("Success - Delete removes user and its details", func(t *testing.T) {
		created := testutils.CreateTestUser(t, db, "doomed@test.com", role.UserRoleID)

		resp, err := testutils.MakeRequest(app, "DELETE", fmt.Sprintf("/api/users/%d", created.ID), nil)
		assert.NoError(t, err)
		assert.Equal(t, 204, resp.Code)

		var userCount int64
		db.Model(&models.User{}).Where("id = ?", created.ID).Count(&userCount)
		assert.Zero(t, userCount)

		var detailsCount int64
		db.Model(&models.UserDetails{}).Where("user_id = ?", created.ID).Count(&detailsCount)
		assert.Zero(t, detailsCount)
	})

	t.Run("Error - User not found", func(t *testing.T) {
		resp, err := testutils.MakeRequest(app, "DELETE", "/api/users/999", nil)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.Code)

		testutils.AssertError(t, resp, "NOT_FOUND")
	})
}
