package comfort

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
	_ "roomsense.io/room-comfort-service/pkg/testing"
)

func TestRegisterLoginRefresh(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	username := "user-" + uuid.NewString()

	profile, err := comfortObj.User.Register(ctx, &UserAuthInput{
		Username: username,
		Password: "secret-password",
		Email:    username + "@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, username, profile.Username)
	assert.Equal(t, models.RoleNameUser, profile.RoleName)
	assert.Equal(t, int64(1), profile.Version)
	assert.NotEmpty(t, profile.AccessToken)
	assert.NotEmpty(t, profile.RefreshToken)

	// the access token is verifiable with the same service
	claims, err := comfortObj.Auth.ParseAccessToken(profile.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
	assert.Equal(t, username, claims.Username)

	// duplicate username
	_, err = comfortObj.User.Register(ctx, &UserAuthInput{
		Username: username,
		Password: "another-password",
		Email:    "other@example.com",
	})
	assert.ErrorIs(t, err, ErrConflict)

	// login rotates the refresh token
	_, err = comfortObj.User.Login(ctx, username, "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	loggedIn, err := comfortObj.User.Login(ctx, username, "secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, profile.RefreshToken, loggedIn.RefreshToken)

	// the pre-login refresh token is dead, the fresh one works and rotates
	_, err = comfortObj.User.Refresh(ctx, profile.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)

	refreshed, err := comfortObj.User.Refresh(ctx, loggedIn.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, loggedIn.RefreshToken, refreshed.RefreshToken)

	_, err = comfortObj.User.Refresh(ctx, loggedIn.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterUser_Validation(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	_, err := comfortObj.User.Register(ctx, &UserAuthInput{
		Username: "  ",
		Password: "secret",
		Email:    "a@example.com",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = comfortObj.User.Register(ctx, &UserAuthInput{
		Username: "user-" + uuid.NewString(),
		Password: "",
		Email:    "a@example.com",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestProfileAndUsernameByID(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)

	profile, err := comfortObj.User.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, profile.Username)
	assert.Empty(t, profile.AccessToken)

	username, err := comfortObj.User.UsernameByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, username)

	_, err = comfortObj.User.Profile(ctx, 999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangeUsername(t *testing.T) {
	common.SetTestLoggerNop()

	comfortObj := GetTestComfortWithMemorySqliteDialector(t)
	ctx := context.Background()

	user := createTestUser(t, comfortObj)
	other := createTestUser(t, comfortObj)

	// version mismatch
	_, err := comfortObj.User.ChangeUsername(ctx, user.ID, "renamed-"+uuid.NewString(), 99)
	assert.ErrorIs(t, err, ErrConflict)

	// name collision
	_, err = comfortObj.User.ChangeUsername(ctx, user.ID, other.Username, 1)
	assert.ErrorIs(t, err, ErrConflict)

	newName := "renamed-" + uuid.NewString()
	profile, err := comfortObj.User.ChangeUsername(ctx, user.ID, newName, 1)
	require.NoError(t, err)
	assert.Equal(t, newName, profile.Username)
	assert.Equal(t, int64(2), profile.Version)

	// the old version no longer matches
	_, err = comfortObj.User.ChangeUsername(ctx, user.ID, "again-"+uuid.NewString(), 1)
	assert.ErrorIs(t, err, ErrConflict)
}
