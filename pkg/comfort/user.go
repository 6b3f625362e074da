package comfort

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"roomsense.io/room-comfort-service/pkg/auth"
	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
)

type UserAuthInput struct {
	Username string
	Password string
	Email    string
}

type UserProfile struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleName string `json:"roleName"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func (c *Comfort) registerUser(ctx context.Context, input *UserAuthInput) (*UserProfile, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameComfortCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryUser),
	)

	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || input.Password == "" || email == "" {
		return nil, fmt.Errorf("%w: username, password and email are required", ErrValidation)
	}

	var count int64
	err := c.Db.Conn.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
	}

	var role models.Role
	err = c.Db.Conn.WithContext(ctx).
		Where("role_name = ?", models.RoleNameUser).
		First(&role).Error
	if err != nil {
		return nil, fmt.Errorf("role %q is not seeded: %w", models.RoleNameUser, err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		RoleID:       role.ID,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.Db.Conn.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
		}
		return nil, err
	}
	user.Role = role

	logger.Info("User registered", zap.Uint("user_id", user.ID), zap.String("username", user.Username))

	return c.issueTokens(ctx, &user)
}

func (c *Comfort) loginUser(ctx context.Context, username, password string) (*UserProfile, error) {
	var user models.User
	err := c.Db.Conn.WithContext(ctx).
		Preload("Role").
		Where("username = ?", strings.TrimSpace(username)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid login", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, fmt.Errorf("%w: invalid password", ErrUnauthorized)
	}

	return c.issueTokens(ctx, &user)
}

func (c *Comfort) refreshUser(ctx context.Context, refreshToken string) (*UserProfile, error) {
	if refreshToken == "" {
		return nil, fmt.Errorf("%w: refresh token is required", ErrValidation)
	}

	var user models.User
	err := c.Db.Conn.WithContext(ctx).
		Preload("Role").
		Where("refresh_token = ? AND refresh_token_expiry > ?", refreshToken, time.Now().UTC()).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: invalid or expired refresh token", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	return c.issueTokens(ctx, &user)
}

// issueTokens rotates the refresh token and returns the profile with a fresh
// token pair.
func (c *Comfort) issueTokens(ctx context.Context, user *models.User) (*UserProfile, error) {
	if c.Auth == nil {
		return nil, fmt.Errorf("token service not available")
	}

	accessToken, err := c.Auth.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	refreshToken := auth.GenerateRefreshToken()
	expiry := time.Now().UTC().Add(auth.RefreshTokenTTL)

	err = c.Db.Conn.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"refresh_token":        refreshToken,
			"refresh_token_expiry": expiry,
		}).Error
	if err != nil {
		return nil, err
	}

	profile := mapUserProfile(user)
	profile.AccessToken = accessToken
	profile.RefreshToken = refreshToken
	return profile, nil
}

func (c *Comfort) userByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := c.Db.Conn.WithContext(ctx).
		Preload("Role").
		First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Comfort) userProfile(ctx context.Context, id uint) (*UserProfile, error) {
	user, err := c.userByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapUserProfile(user), nil
}

func (c *Comfort) usernameByID(ctx context.Context, id uint) (string, error) {
	user, err := c.userByID(ctx, id)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

// changeUsername is a versioned rename: the caller supplies the version it
// read, and both a stale version and a name collision surface as Conflict.
func (c *Comfort) changeUsername(ctx context.Context, id uint, newUsername string, expectedVersion int64) (*UserProfile, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameComfortCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryUser),
	)

	username := strings.TrimSpace(newUsername)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}

	user, err := c.userByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.Version != expectedVersion {
		return nil, fmt.Errorf("%w: version mismatch, expected %d", ErrConflict, user.Version)
	}

	var taken int64
	err = c.Db.Conn.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? AND id <> ?", username, id).
		Count(&taken).Error
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
	}

	now := time.Now().UTC()
	result := c.Db.Conn.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]any{
			"username":   username,
			"version":    expectedVersion + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, fmt.Errorf("%w: username %q is taken", ErrConflict, username)
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: version mismatch", ErrConflict)
	}

	logger.Info("Username changed", zap.Uint("user_id", id), zap.String("username", username))

	return c.userProfile(ctx, id)
}

func mapUserProfile(user *models.User) *UserProfile {
	roleName := user.Role.RoleName
	if roleName == "" {
		roleName = models.RoleNameUser
	}
	return &UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		RoleName:  roleName,
		Version:   user.Version,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type IUserImpl struct {
	comfort *Comfort
}

func (iu *IUserImpl) Register(ctx context.Context, input *UserAuthInput) (*UserProfile, error) {
	return iu.comfort.registerUser(ctx, input)
}

func (iu *IUserImpl) Login(ctx context.Context, username, password string) (*UserProfile, error) {
	return iu.comfort.loginUser(ctx, username, password)
}

func (iu *IUserImpl) Refresh(ctx context.Context, refreshToken string) (*UserProfile, error) {
	return iu.comfort.refreshUser(ctx, refreshToken)
}

func (iu *IUserImpl) Profile(ctx context.Context, id uint) (*UserProfile, error) {
	return iu.comfort.userProfile(ctx, id)
}

func (iu *IUserImpl) UsernameByID(ctx context.Context, id uint) (string, error) {
	return iu.comfort.usernameByID(ctx, id)
}

func (iu *IUserImpl) ChangeUsername(ctx context.Context, id uint, newUsername string, expectedVersion int64) (*UserProfile, error) {
	return iu.comfort.changeUsername(ctx, id, newUsername, expectedVersion)
}

func (c *Comfort) GetIUser() IUser {
	return &IUserImpl{comfort: c}
}
