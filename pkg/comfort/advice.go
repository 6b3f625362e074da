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

// AllNominalMessage is stored when a reading breaches nothing. A persisted
// Recommendation is never empty.
const AllNominalMessage = "Everything is within the comfort range"

type Advice struct {
	ChipID   string   `json:"chipId"`
	RoomName string   `json:"roomName"`
	Messages []string `json:"messages"`
}

type SaveResult struct {
	Saved bool `json:"saved"`
	Count int  `json:"count"`
}

type AdviceHistoryEntry struct {
	CreatedAt      time.Time `json:"createdAt"`
	RoomName       string    `json:"roomName"`
	Recommendation string    `json:"recommendation"`
}

func firstValue(primary, secondary *float64) *float64 {
	if primary != nil {
		return primary
	}
	return secondary
}

// BuildAdvice evaluates one reading against effective thresholds and returns
// the triggered messages in a fixed order: temperature, humidity, gas; low
// before high. Temperature and humidity prefer the DHT sensor and fall back
// to the BME one. A message fires only when the value and the bound are both
// present and the message text is non-empty.
//
// Gas is special: a raised GasDetected flag appends the high message
// unconditionally, otherwise the analog percentage is compared against the
// high bound. Gas has no low evaluation.
func BuildAdvice(r *models.Reading, eff map[string]EffectiveThreshold) []string {
	var msgs []string

	temperature := firstValue(r.TemperatureDht, r.TemperatureBme)
	humidity := firstValue(r.HumidityDht, r.HumidityBme)

	if t, ok := eff["temperature"]; ok && temperature != nil {
		if t.Low != nil && *temperature < *t.Low && t.LowMessage != "" {
			msgs = append(msgs, t.LowMessage)
		}
		if t.High != nil && *temperature > *t.High && t.HighMessage != "" {
			msgs = append(msgs, t.HighMessage)
		}
	}

	if h, ok := eff["humidity"]; ok && humidity != nil {
		if h.Low != nil && *humidity < *h.Low && h.LowMessage != "" {
			msgs = append(msgs, h.LowMessage)
		}
		if h.High != nil && *humidity > *h.High && h.HighMessage != "" {
			msgs = append(msgs, h.HighMessage)
		}
	}

	if g, ok := eff["gas"]; ok {
		if r.GasDetected != nil && *r.GasDetected {
			if g.HighMessage != "" {
				msgs = append(msgs, g.HighMessage)
			}
		} else if r.Mq2AnalogPercent != nil && g.High != nil &&
			*r.Mq2AnalogPercent > *g.High && g.HighMessage != "" {
			msgs = append(msgs, g.HighMessage)
		}
	}

	return msgs
}

// joinAdvice flattens messages into one stored line, normalizing trailing
// punctuation. Zero messages become the nominal line.
func joinAdvice(msgs []string) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		m = strings.TrimRight(strings.TrimSpace(m), ".!?")
		if m != "" {
			parts = append(parts, m)
		}
	}
	if len(parts) == 0 {
		return AllNominalMessage + "."
	}
	return strings.Join(parts, ". ") + "."
}

func (c *Comfort) computeLatestAdvice(ctx context.Context, chipID string) (*Advice, error) {
	norm := NormalizeChipID(chipID)

	latest, err := c.latestReadingRow(ctx, norm)
	if err != nil {
		return nil, err
	}
	own, err := c.ownershipByChip(ctx, norm)
	if err != nil {
		return nil, err
	}

	eff, err := c.effectiveThresholds(ctx, &Scope{UserID: own.UserID, OwnershipID: own.ID})
	if err != nil {
		return nil, err
	}

	msgs := BuildAdvice(latest, eff)
	if len(msgs) == 0 {
		msgs = []string{AllNominalMessage}
	}

	return &Advice{ChipID: norm, RoomName: own.RoomName, Messages: msgs}, nil
}

func (c *Comfort) saveLatestAdvice(ctx context.Context, chipID string) (*SaveResult, error) {
	latest, err := c.latestReadingRow(ctx, NormalizeChipID(chipID))
	if err != nil {
		return nil, err
	}
	return c.saveAdviceForReading(ctx, latest)
}

// saveAdviceForReading persists at most one Recommendation for the given
// reading. A reading that already has one yields saved=false without a second
// insert; the unique index on reading_id is the backstop when two saves race
// past the existence check, and that constraint violation is also reported as
// saved=false rather than an error.
func (c *Comfort) saveAdviceForReading(ctx context.Context, reading *models.Reading) (*SaveResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameComfortCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryAdvice),
	)

	if reading == nil {
		return nil, fmt.Errorf("%w: reading is required", ErrValidation)
	}

	own, err := c.ownershipByChip(ctx, reading.ChipID)
	if err != nil {
		return nil, err
	}

	eff, err := c.effectiveThresholds(ctx, &Scope{UserID: own.UserID, OwnershipID: own.ID})
	if err != nil {
		return nil, err
	}

	msgs := BuildAdvice(reading, eff)
	line := joinAdvice(msgs)

	var existing models.Recommendation
	err = c.Db.Conn.WithContext(ctx).
		Where("reading_id = ?", reading.ID).
		First(&existing).Error
	if err == nil {
		return &SaveResult{Saved: false, Count: len(msgs)}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	recommendation := models.Recommendation{
		ReadingID:   reading.ID,
		OwnershipID: own.ID,
		Text:        line,
		// Advice is timestamped with the source reading, not the wall clock
		// of the computation.
		CreatedAt: reading.CreatedAt,
	}

	if err := c.Db.Conn.WithContext(ctx).Create(&recommendation).Error; err != nil {
		if isUniqueViolation(err) {
			return &SaveResult{Saved: false, Count: len(msgs)}, nil
		}
		return nil, err
	}

	logger.Info("Recommendation saved",
		zap.Uint("reading_id", reading.ID),
		zap.String("chip_id", own.ChipID),
		zap.Int("count", len(msgs)))

	return &SaveResult{Saved: true, Count: len(msgs)}, nil
}

func (c *Comfort) adviceHistory(ctx context.Context, chipID string, take int) ([]AdviceHistoryEntry, error) {
	norm := NormalizeChipID(chipID)
	cutoff := time.Now().UTC().AddDate(0, 0, -7)

	type historyRow struct {
		CreatedAt time.Time
		RoomName  string
		Text      string
	}

	var rows []historyRow
	err := c.Db.Conn.WithContext(ctx).
		Table("recommendations").
		Select("recommendations.created_at, ownerships.room_name, recommendations.text").
		Joins("JOIN ownerships ON ownerships.id = recommendations.ownership_id").
		Where("ownerships.chip_id = ? AND recommendations.created_at >= ?", norm, cutoff).
		Order("recommendations.created_at DESC").
		Limit(clampTake(take, 200)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return common.Mapper(rows, func(r historyRow) AdviceHistoryEntry {
		return AdviceHistoryEntry{
			CreatedAt:      r.CreatedAt,
			RoomName:       r.RoomName,
			Recommendation: r.Text,
		}
	}), nil
}

func clampTake(take, limit int) int {
	if take < 1 {
		return 1
	}
	if take > limit {
		return limit
	}
	return take
}

type IAdviceImpl struct {
	comfort *Comfort
}

func (ia *IAdviceImpl) ComputeLatestAdvice(ctx context.Context, chipID string) (*Advice, error) {
	return ia.comfort.computeLatestAdvice(ctx, chipID)
}

func (ia *IAdviceImpl) SaveLatestAdvice(ctx context.Context, chipID string) (*SaveResult, error) {
	return ia.comfort.saveLatestAdvice(ctx, chipID)
}

func (ia *IAdviceImpl) SaveAdviceForReading(ctx context.Context, reading *models.Reading) (*SaveResult, error) {
	return ia.comfort.saveAdviceForReading(ctx, reading)
}

func (ia *IAdviceImpl) AdviceHistory(ctx context.Context, chipID string, take int) ([]AdviceHistoryEntry, error) {
	return ia.comfort.adviceHistory(ctx, chipID, take)
}

func (c *Comfort) GetIAdvice() IAdvice {
	return &IAdviceImpl{comfort: c}
}
