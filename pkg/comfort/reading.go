package comfort

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
)

// ReadingWithRoom is one reading paired with the room name resolved through
// the chip's ownership, if any.
type ReadingWithRoom struct {
	Reading  models.Reading
	RoomName string
}

// saveReading persists one immutable telemetry sample and then triggers
// advice generation. Advice is best-effort relative to ingestion: an advice
// failure (including an unregistered chip) is logged and never blocks or
// rolls back the reading write.
func (c *Comfort) saveReading(ctx context.Context, input *models.Reading) (uint, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameComfortCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryReading),
	)

	norm := NormalizeChipID(input.ChipID)
	if norm == "" {
		return 0, fmt.Errorf("%w: chipId is required", ErrValidation)
	}

	reading := *input
	reading.ID = 0
	reading.ChipID = norm
	reading.CreatedAt = time.Now().UTC()

	logger.Info("Received reading for chip", zap.String("chip_id", norm))

	if err := c.Db.Conn.WithContext(ctx).Create(&reading).Error; err != nil {
		return 0, err
	}

	logger.Info("Reading saved", zap.String("chip_id", norm), zap.Uint("reading_id", reading.ID))

	if c.Advice == nil {
		logger.Warn("Advice service not available, skipping advice for reading",
			zap.Uint("reading_id", reading.ID))
		return reading.ID, nil
	}

	if result, err := c.Advice.SaveAdviceForReading(ctx, &reading); err != nil {
		logger.Warn("Advice generation failed for reading",
			zap.Uint("reading_id", reading.ID), zap.Error(err))
	} else {
		logger.Info("Advice processed for reading",
			zap.Uint("reading_id", reading.ID),
			zap.Bool("saved", result.Saved),
			zap.Int("count", result.Count))
	}

	return reading.ID, nil
}

// latestReadingRow fails with ErrNotFound when the chip has no readings.
func (c *Comfort) latestReadingRow(ctx context.Context, chipID string) (*models.Reading, error) {
	norm := NormalizeChipID(chipID)

	var reading models.Reading
	err := c.Db.Conn.WithContext(ctx).
		Where("chip_id = ?", norm).
		Order("created_at DESC").
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no readings for chip %q", ErrNotFound, norm)
	}
	if err != nil {
		return nil, err
	}
	return &reading, nil
}

// latestReadingOrNil is the tolerant variant used for room listings.
func (c *Comfort) latestReadingOrNil(ctx context.Context, chipID string) (*models.Reading, error) {
	reading, err := c.latestReadingRow(ctx, chipID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reading, nil
}

func (c *Comfort) latestReading(ctx context.Context, chipID string) (*ReadingWithRoom, error) {
	reading, err := c.latestReadingRow(ctx, chipID)
	if err != nil {
		return nil, err
	}

	result := ReadingWithRoom{Reading: *reading}
	if own, err := c.ownershipByChip(ctx, chipID); err == nil {
		result.RoomName = own.RoomName
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return &result, nil
}

func (c *Comfort) readingHistory(ctx context.Context, chipID string, from, to *time.Time, take int) ([]models.Reading, error) {
	norm := NormalizeChipID(chipID)

	query := c.Db.Conn.WithContext(ctx).Where("chip_id = ?", norm)
	if from != nil {
		query = query.Where("created_at >= ?", from.UTC())
	}
	if to != nil {
		query = query.Where("created_at <= ?", to.UTC())
	}

	var readings []models.Reading
	err := query.
		Order("created_at DESC").
		Limit(clampTake(take, 500)).
		Find(&readings).Error
	return readings, err
}

type IReadingImpl struct {
	comfort *Comfort
}

func (ir *IReadingImpl) SaveReading(ctx context.Context, input *models.Reading) (uint, error) {
	return ir.comfort.saveReading(ctx, input)
}

func (ir *IReadingImpl) LatestReading(ctx context.Context, chipID string) (*ReadingWithRoom, error) {
	return ir.comfort.latestReading(ctx, chipID)
}

func (ir *IReadingImpl) ReadingHistory(ctx context.Context, chipID string, from, to *time.Time, take int) ([]models.Reading, error) {
	return ir.comfort.readingHistory(ctx, chipID, from, to, take)
}

func (c *Comfort) GetIReading() IReading {
	return &IReadingImpl{comfort: c}
}
