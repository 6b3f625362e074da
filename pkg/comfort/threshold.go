package comfort

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
)

// Scope narrows threshold resolution to one (user, ownership) pair. A nil
// scope means the unauthenticated/global context: base thresholds only.
type Scope struct {
	UserID      uint
	OwnershipID uint
}

// EffectiveThreshold is a base threshold with the latest scoped adjustment
// folded in. Messages always come from the base row and are never adjusted.
type EffectiveThreshold struct {
	Low         *float64
	High        *float64
	LowMessage  string
	HighMessage string
}

type EffectiveSetting struct {
	ParameterName string   `json:"parameterName"`
	Low           *float64 `json:"low"`
	High          *float64 `json:"high"`
	LowMessage    string   `json:"lowMessage"`
	HighMessage   string   `json:"highMessage"`
}

// AbsoluteAdjustment carries the absolute low/high values shown in the UI;
// the service converts them to deltas against the base threshold.
type AbsoluteAdjustment struct {
	ParameterName string
	Low           *float64
	High          *float64
}

type AppliedAdjustment struct {
	ParameterName string   `json:"parameterName"`
	BaseLow       *float64 `json:"baseLow"`
	BaseHigh      *float64 `json:"baseHigh"`
	LowDelta      float64  `json:"lowDelta"`
	HighDelta     float64  `json:"highDelta"`
	Version       int64    `json:"version"`
	EffectiveLow  *float64 `json:"effectiveLow"`
	EffectiveHigh *float64 `json:"effectiveHigh"`
}

type AbsoluteResult struct {
	UserID uint                `json:"userId"`
	Items  []AppliedAdjustment `json:"items"`
}

func normalizeParameterName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// adjustmentTag encodes (user, threshold, ownership, version) as the quoted
// ETag for one adjustment row.
func adjustmentTag(a *models.ThresholdAdjustment) string {
	return fmt.Sprintf("\"%d-%d-%d-%d\"", a.UserID, a.ThresholdID, a.OwnershipID, a.Version)
}

// addDelta shifts a base bound by a delta. A bound that was never defined
// cannot be adjusted into existence.
func addDelta(base *float64, delta float64) *float64 {
	if base == nil {
		return nil
	}
	v := *base + delta
	return &v
}

func (c *Comfort) ownershipByChip(ctx context.Context, chipID string) (*models.Ownership, error) {
	var own models.Ownership
	err := c.Db.Conn.WithContext(ctx).
		Where("chip_id = ?", NormalizeChipID(chipID)).
		First(&own).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: chip %q is not registered", ErrNotFound, NormalizeChipID(chipID))
	}
	if err != nil {
		return nil, err
	}
	return &own, nil
}

func (c *Comfort) thresholdByName(ctx context.Context, name string) (*models.Threshold, error) {
	var thr models.Threshold
	err := c.Db.Conn.WithContext(ctx).
		Where("name = ?", normalizeParameterName(name)).
		First(&thr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: unknown parameter %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return &thr, nil
}

// effectiveThresholds merges base thresholds with the latest adjustment per
// (scope, threshold). The resolver is parameter-name-agnostic: it iterates
// over whatever Threshold rows exist.
func (c *Comfort) effectiveThresholds(ctx context.Context, scope *Scope) (map[string]EffectiveThreshold, error) {
	var bases []models.Threshold
	if err := c.Db.Conn.WithContext(ctx).Find(&bases).Error; err != nil {
		return nil, err
	}

	eff := make(map[string]EffectiveThreshold, len(bases))
	nameByID := make(map[uint]string, len(bases))
	for _, b := range bases {
		eff[b.Name] = EffectiveThreshold{
			Low:         b.Low,
			High:        b.High,
			LowMessage:  b.LowMessage,
			HighMessage: b.HighMessage,
		}
		nameByID[b.ID] = b.Name
	}

	if scope == nil {
		return eff, nil
	}

	var adjustments []models.ThresholdAdjustment
	err := c.Db.Conn.WithContext(ctx).
		Where("user_id = ? AND ownership_id = ?", scope.UserID, scope.OwnershipID).
		Find(&adjustments).Error
	if err != nil {
		return nil, err
	}

	// Highest version wins should duplicate rows exist for the same triple.
	latest := make(map[uint]models.ThresholdAdjustment, len(adjustments))
	for _, a := range adjustments {
		if cur, ok := latest[a.ThresholdID]; !ok || a.Version > cur.Version {
			latest[a.ThresholdID] = a
		}
	}

	for thresholdID, a := range latest {
		name, ok := nameByID[thresholdID]
		if !ok {
			continue
		}
		cur := eff[name]
		cur.Low = addDelta(cur.Low, a.LowDelta)
		cur.High = addDelta(cur.High, a.HighDelta)
		eff[name] = cur
	}

	return eff, nil
}

func (c *Comfort) effectiveByChip(ctx context.Context, chipID string) ([]EffectiveSetting, error) {
	own, err := c.ownershipByChip(ctx, chipID)
	if err != nil {
		return nil, err
	}

	eff, err := c.effectiveThresholds(ctx, &Scope{UserID: own.UserID, OwnershipID: own.ID})
	if err != nil {
		return nil, err
	}

	settings := make([]EffectiveSetting, 0, len(eff))
	for name, e := range eff {
		settings = append(settings, EffectiveSetting{
			ParameterName: name,
			Low:           e.Low,
			High:          e.High,
			LowMessage:    e.LowMessage,
			HighMessage:   e.HighMessage,
		})
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].ParameterName < settings[j].ParameterName })
	return settings, nil
}

// upsertThreshold creates or overwrites one base threshold by name.
func (c *Comfort) upsertThreshold(ctx context.Context, input *models.Threshold) error {
	logger := common.GetLoggerWith(
		common.LoggerNameComfortCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryThreshold),
	)

	name := normalizeParameterName(input.Name)
	if name == "" {
		return fmt.Errorf("%w: parameter name is required", ErrValidation)
	}

	threshold := models.Threshold{
		Name:        name,
		Low:         input.Low,
		High:        input.High,
		LowMessage:  input.LowMessage,
		HighMessage: input.HighMessage,
	}

	err := c.Db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&threshold).Error

	if err == nil {
		logger.Info("Upserted threshold", zap.Reflect("threshold", threshold))
	}

	return err
}

func (c *Comfort) getAdjustment(ctx context.Context, chipID, parameter string) (*models.ThresholdAdjustment, string, error) {
	own, err := c.ownershipByChip(ctx, chipID)
	if err != nil {
		return nil, "", err
	}
	thr, err := c.thresholdByName(ctx, parameter)
	if err != nil {
		return nil, "", err
	}

	var adj models.ThresholdAdjustment
	err = c.Db.Conn.WithContext(ctx).
		Where("user_id = ? AND ownership_id = ? AND threshold_id = ?", own.UserID, own.ID, thr.ID).
		First(&adj).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("%w: no adjustment for %q on chip %q", ErrNotFound, parameter, own.ChipID)
	}
	if err != nil {
		return nil, "", err
	}
	return &adj, adjustmentTag(&adj), nil
}

// updateAdjustment rewrites the active delta for one (chip, parameter) pair
// through the shared version controller. A stale or missing If-Match never
// mutates anything.
func (c *Comfort) updateAdjustment(ctx context.Context, chipID, parameter string, lowDelta, highDelta *float64, ifMatch string) (UpdateOutcome, error) {
	own, err := c.ownershipByChip(ctx, chipID)
	if err != nil {
		return UpdateOutcome{}, err
	}
	thr, err := c.thresholdByName(ctx, parameter)
	if err != nil {
		return UpdateOutcome{}, err
	}

	return UpdateVersioned(ctx, c.Db.Conn, ifMatch, true, Versioned[models.ThresholdAdjustment]{
		Load: func(tx *gorm.DB) (*models.ThresholdAdjustment, error) {
			var adj models.ThresholdAdjustment
			err := tx.
				Where("user_id = ? AND ownership_id = ? AND threshold_id = ?", own.UserID, own.ID, thr.ID).
				First(&adj).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: no adjustment for %q on chip %q", ErrNotFound, parameter, own.ChipID)
			}
			if err != nil {
				return nil, err
			}
			return &adj, nil
		},
		Tag:     adjustmentTag,
		Version: func(a *models.ThresholdAdjustment) int64 { return a.Version },
		Mutate: func(a *models.ThresholdAdjustment) (bool, error) {
			changed := false
			if lowDelta != nil && *lowDelta != a.LowDelta {
				a.LowDelta = *lowDelta
				changed = true
			}
			if highDelta != nil && *highDelta != a.HighDelta {
				a.HighDelta = *highDelta
				changed = true
			}
			return changed, nil
		},
		Persist: func(tx *gorm.DB, a *models.ThresholdAdjustment, oldVersion int64, now time.Time) (int64, error) {
			a.Version = oldVersion + 1
			a.UpdatedAt = now
			result := tx.Model(&models.ThresholdAdjustment{}).
				Where("id = ? AND version = ?", a.ID, oldVersion).
				Updates(map[string]any{
					"low_delta":  a.LowDelta,
					"high_delta": a.HighDelta,
					"version":    a.Version,
					"updated_at": a.UpdatedAt,
				})
			return result.RowsAffected, result.Error
		},
	})
}

// applyAbsolute converts absolute UI values to deltas against the base
// thresholds and upserts the affected adjustments: a first adjustment starts
// at version 1, subsequent ones replace the active delta with an atomic
// version increment. Unknown parameter names are skipped.
func (c *Comfort) applyAbsolute(ctx context.Context, chipID string, items []AbsoluteAdjustment) (*AbsoluteResult, error) {
	logger := common.GetLoggerWith(
		common.LoggerNameComfortCore,
		zap.String(common.LoggerFieldCategory, common.LoggerCategoryThreshold),
	)

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: items are required", ErrValidation)
	}

	own, err := c.ownershipByChip(ctx, chipID)
	if err != nil {
		return nil, err
	}

	var bases []models.Threshold
	if err := c.Db.Conn.WithContext(ctx).Find(&bases).Error; err != nil {
		return nil, err
	}
	baseByName := make(map[string]models.Threshold, len(bases))
	for _, b := range bases {
		baseByName[b.Name] = b
	}

	result := &AbsoluteResult{UserID: own.UserID}

	err = c.Db.Conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			base, ok := baseByName[normalizeParameterName(item.ParameterName)]
			if !ok {
				continue
			}

			var lowDelta, highDelta float64
			if base.Low != nil && item.Low != nil {
				lowDelta = *item.Low - *base.Low
			}
			if base.High != nil && item.High != nil {
				highDelta = *item.High - *base.High
			}

			adj, err := c.upsertAdjustment(tx, own, base.ID, lowDelta, highDelta)
			if err != nil {
				return err
			}

			result.Items = append(result.Items, AppliedAdjustment{
				ParameterName: base.Name,
				BaseLow:       base.Low,
				BaseHigh:      base.High,
				LowDelta:      lowDelta,
				HighDelta:     highDelta,
				Version:       adj.Version,
				EffectiveLow:  addDelta(base.Low, lowDelta),
				EffectiveHigh: addDelta(base.High, highDelta),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Applied absolute adjustments",
		zap.String("chip_id", own.ChipID),
		zap.Int("count", len(result.Items)))

	return result, nil
}

// upsertAdjustment replaces the active delta for one triple. The version
// increment happens in SQL so racing writers cannot both claim the same
// version number.
func (c *Comfort) upsertAdjustment(tx *gorm.DB, own *models.Ownership, thresholdID uint, lowDelta, highDelta float64) (*models.ThresholdAdjustment, error) {
	now := time.Now().UTC()

	var existing models.ThresholdAdjustment
	err := tx.
		Where("user_id = ? AND ownership_id = ? AND threshold_id = ?", own.UserID, own.ID, thresholdID).
		First(&existing).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		adj := models.ThresholdAdjustment{
			UserID:      own.UserID,
			OwnershipID: own.ID,
			ThresholdID: thresholdID,
			LowDelta:    lowDelta,
			HighDelta:   highDelta,
			Version:     1,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if createErr := tx.Create(&adj).Error; createErr != nil {
			if !isUniqueViolation(createErr) {
				return nil, createErr
			}
			// Lost the creation race: fall through to the update path.
			if err := tx.
				Where("user_id = ? AND ownership_id = ? AND threshold_id = ?", own.UserID, own.ID, thresholdID).
				First(&existing).Error; err != nil {
				return nil, err
			}
		} else {
			return &adj, nil
		}
	} else if err != nil {
		return nil, err
	}

	err = tx.Model(&models.ThresholdAdjustment{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"low_delta":  lowDelta,
			"high_delta": highDelta,
			"version":    gorm.Expr("version + 1"),
			"updated_at": now,
		}).Error
	if err != nil {
		return nil, err
	}

	var updated models.ThresholdAdjustment
	if err := tx.First(&updated, existing.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

type IThresholdImpl struct {
	comfort *Comfort
}

func (it *IThresholdImpl) EffectiveThresholds(ctx context.Context, scope *Scope) (map[string]EffectiveThreshold, error) {
	return it.comfort.effectiveThresholds(ctx, scope)
}

func (it *IThresholdImpl) EffectiveByChip(ctx context.Context, chipID string) ([]EffectiveSetting, error) {
	return it.comfort.effectiveByChip(ctx, chipID)
}

func (it *IThresholdImpl) UpsertThreshold(ctx context.Context, input *models.Threshold) error {
	return it.comfort.upsertThreshold(ctx, input)
}

func (it *IThresholdImpl) GetAdjustment(ctx context.Context, chipID, parameter string) (*models.ThresholdAdjustment, string, error) {
	return it.comfort.getAdjustment(ctx, chipID, parameter)
}

func (it *IThresholdImpl) UpdateAdjustment(ctx context.Context, chipID, parameter string, lowDelta, highDelta *float64, ifMatch string) (UpdateOutcome, error) {
	return it.comfort.updateAdjustment(ctx, chipID, parameter, lowDelta, highDelta, ifMatch)
}

func (it *IThresholdImpl) ApplyAbsolute(ctx context.Context, chipID string, items []AbsoluteAdjustment) (*AbsoluteResult, error) {
	return it.comfort.applyAbsolute(ctx, chipID, items)
}

func (c *Comfort) GetIThreshold() IThreshold {
	return &IThresholdImpl{comfort: c}
}
