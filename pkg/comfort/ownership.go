package comfort

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
)

type OwnershipInput struct {
	UserID    uint
	ChipID    string
	RoomName  string
	ImageName string
}

// OwnershipUpdate carries the mutable ownership fields. A nil field is "leave
// as is"; a supplied but blank field is a validation error.
type OwnershipUpdate struct {
	ChipID    string
	RoomName  *string
	ImageName *string
}

// RoomWithSensor pairs one ownership with the live values of its chip's most
// recent reading. A chip with no readings yet simply has absent values.
type RoomWithSensor struct {
	ID          uint     `json:"id"`
	ChipID      string   `json:"chipId"`
	RoomName    string   `json:"roomName"`
	ImageName   string   `json:"imageName"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
}

// OwnershipSync is the device-sync payload for the ESP conditional GET.
type OwnershipSync struct {
	Username     string    `json:"username"`
	RoomName     string    `json:"roomName"`
	ImageName    string    `json:"imageName"`
	ETag         string    `json:"-"`
	LastModified time.Time `json:"-"`
}

// ownershipTag is the ETag for one ownership row: the chip id keeps tags from
// different chips from colliding.
func ownershipTag(o *models.Ownership) string {
	return fmt.Sprintf("\"%s-%d\"", o.ChipID, o.Version)
}

func (c *Comfort) registerOwnership(ctx context.Context, input *OwnershipInput) (*RoomWithSensor, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameComfortCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryOwnership),
	)

	norm := NormalizeChipID(input.ChipID)
	room := strings.TrimSpace(input.RoomName)
	image := strings.TrimSpace(input.ImageName)

	if input.UserID == 0 || norm == "" || room == "" || image == "" {
		return nil, fmt.Errorf("%w: userId, chipId, roomName and imageName are required", ErrValidation)
	}

	var count int64
	err := c.Db.Conn.WithContext(ctx).
		Model(&models.Ownership{}).
		Where("chip_id = ?", norm).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: chip %q is already registered", ErrConflict, norm)
	}

	now := time.Now().UTC()
	own := models.Ownership{
		UserID:    input.UserID,
		ChipID:    norm,
		RoomName:  room,
		ImageName: image,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.Db.Conn.WithContext(ctx).Create(&own).Error; err != nil {
		// Registration racing another registration of the same chip.
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: chip %q is already registered", ErrConflict, norm)
		}
		return nil, err
	}

	logger.Info("Ownership registered",
		zap.String("chip_id", own.ChipID),
		zap.Uint("user_id", own.UserID),
		zap.String("room_name", own.RoomName))

	latest, err := c.latestReadingOrNil(ctx, norm)
	if err != nil {
		return nil, err
	}
	result := mapRoomWithSensor(&own, latest)
	return &result, nil
}

func (c *Comfort) updateOwnership(ctx context.Context, input *OwnershipUpdate, ifMatch string) (UpdateOutcome, error) {
	norm := NormalizeChipID(input.ChipID)
	if norm == "" {
		return UpdateOutcome{}, fmt.Errorf("%w: chipId is required", ErrValidation)
	}
	if input.RoomName == nil && input.ImageName == nil {
		return UpdateOutcome{}, fmt.Errorf("%w: no fields to update", ErrValidation)
	}

	return UpdateVersioned(ctx, c.Db.Conn, ifMatch, true, Versioned[models.Ownership]{
		Load: func(tx *gorm.DB) (*models.Ownership, error) {
			var own models.Ownership
			err := tx.Where("chip_id = ?", norm).First(&own).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: chip %q is not registered", ErrNotFound, norm)
			}
			if err != nil {
				return nil, err
			}
			return &own, nil
		},
		Tag:     ownershipTag,
		Version: func(o *models.Ownership) int64 { return o.Version },
		Mutate: func(o *models.Ownership) (bool, error) {
			changed := false
			if input.RoomName != nil {
				v := strings.TrimSpace(*input.RoomName)
				if v == "" {
					return false, fmt.Errorf("%w: roomName cannot be blank", ErrValidation)
				}
				if o.RoomName != v {
					o.RoomName = v
					changed = true
				}
			}
			if input.ImageName != nil {
				v := strings.TrimSpace(*input.ImageName)
				if v == "" {
					return false, fmt.Errorf("%w: imageName cannot be blank", ErrValidation)
				}
				if o.ImageName != v {
					o.ImageName = v
					changed = true
				}
			}
			return changed, nil
		},
		Persist: func(tx *gorm.DB, o *models.Ownership, oldVersion int64, now time.Time) (int64, error) {
			o.Version = oldVersion + 1
			o.UpdatedAt = now
			result := tx.Model(&models.Ownership{}).
				Where("id = ? AND version = ?", o.ID, oldVersion).
				Updates(map[string]any{
					"room_name":  o.RoomName,
					"image_name": o.ImageName,
					"version":    o.Version,
					"updated_at": o.UpdatedAt,
				})
			return result.RowsAffected, result.Error
		},
	})
}

func (c *Comfort) deleteOwnership(ctx context.Context, chipID string, userID uint) error {
	logger := common.GetLoggerWith(
		common.LoggerNameComfortCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryOwnership),
	)

	norm := NormalizeChipID(chipID)
	result := c.Db.Conn.WithContext(ctx).
		Where("chip_id = ? AND user_id = ?", norm, userID).
		Delete(&models.Ownership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: chip %q is not owned by user %d", ErrNotFound, norm, userID)
	}

	logger.Info("Ownership deleted", zap.String("chip_id", norm), zap.Uint("user_id", userID))
	return nil
}

func (c *Comfort) roomsByUser(ctx context.Context, userID uint) ([]RoomWithSensor, error) {
	var owns []models.Ownership
	err := c.Db.Conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("room_name ASC").
		Find(&owns).Error
	if err != nil {
		return nil, err
	}

	rooms := make([]RoomWithSensor, 0, len(owns))
	for i := range owns {
		latest, err := c.latestReadingOrNil(ctx, owns[i].ChipID)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, mapRoomWithSensor(&owns[i], latest))
	}
	return rooms, nil
}

func (c *Comfort) syncForChip(ctx context.Context, chipID string) (*OwnershipSync, error) {
	norm := NormalizeChipID(chipID)

	var own models.Ownership
	err := c.Db.Conn.WithContext(ctx).
		Preload("User").
		Where("chip_id = ?", norm).
		First(&own).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: chip %q is not registered", ErrNotFound, norm)
	}
	if err != nil {
		return nil, err
	}

	return &OwnershipSync{
		Username:     own.User.Username,
		RoomName:     own.RoomName,
		ImageName:    own.ImageName,
		ETag:         ownershipTag(&own),
		LastModified: own.UpdatedAt.UTC(),
	}, nil
}

func mapRoomWithSensor(o *models.Ownership, latest *models.Reading) RoomWithSensor {
	room := RoomWithSensor{
		ID:        o.ID,
		ChipID:    o.ChipID,
		RoomName:  o.RoomName,
		ImageName: o.ImageName,
	}
	if latest != nil {
		room.Temperature = firstValue(latest.TemperatureDht, latest.TemperatureBme)
		room.Humidity = firstValue(latest.HumidityDht, latest.HumidityBme)
	}
	return room
}

type IOwnershipImpl struct {
	comfort *Comfort
}

func (io *IOwnershipImpl) Register(ctx context.Context, input *OwnershipInput) (*RoomWithSensor, error) {
	return io.comfort.registerOwnership(ctx, input)
}

func (io *IOwnershipImpl) Update(ctx context.Context, input *OwnershipUpdate, ifMatch string) (UpdateOutcome, error) {
	return io.comfort.updateOwnership(ctx, input, ifMatch)
}

func (io *IOwnershipImpl) Delete(ctx context.Context, chipID string, userID uint) error {
	return io.comfort.deleteOwnership(ctx, chipID, userID)
}

func (io *IOwnershipImpl) RoomsByUser(ctx context.Context, userID uint) ([]RoomWithSensor, error) {
	return io.comfort.roomsByUser(ctx, userID)
}

func (io *IOwnershipImpl) SyncForChip(ctx context.Context, chipID string) (*OwnershipSync, error) {
	return io.comfort.syncForChip(ctx, chipID)
}

func (c *Comfort) GetIOwnership() IOwnership {
	return &IOwnershipImpl{comfort: c}
}
