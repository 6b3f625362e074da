package comfort

import (
	"context"
	"strings"
	"time"

	"roomsense.io/room-comfort-service/pkg/auth"
	"roomsense.io/room-comfort-service/pkg/db"
	"roomsense.io/room-comfort-service/pkg/models"
)

type IReading interface {
	SaveReading(ctx context.Context, input *models.Reading) (uint, error)
	LatestReading(ctx context.Context, chipID string) (*ReadingWithRoom, error)
	ReadingHistory(ctx context.Context, chipID string, from, to *time.Time, take int) ([]models.Reading, error)
}

type IAdvice interface {
	ComputeLatestAdvice(ctx context.Context, chipID string) (*Advice, error)
	SaveLatestAdvice(ctx context.Context, chipID string) (*SaveResult, error)
	SaveAdviceForReading(ctx context.Context, reading *models.Reading) (*SaveResult, error)
	AdviceHistory(ctx context.Context, chipID string, take int) ([]AdviceHistoryEntry, error)
}

type IThreshold interface {
	EffectiveThresholds(ctx context.Context, scope *Scope) (map[string]EffectiveThreshold, error)
	EffectiveByChip(ctx context.Context, chipID string) ([]EffectiveSetting, error)
	UpsertThreshold(ctx context.Context, input *models.Threshold) error
	GetAdjustment(ctx context.Context, chipID, parameter string) (*models.ThresholdAdjustment, string, error)
	UpdateAdjustment(ctx context.Context, chipID, parameter string, lowDelta, highDelta *float64, ifMatch string) (UpdateOutcome, error)
	ApplyAbsolute(ctx context.Context, chipID string, items []AbsoluteAdjustment) (*AbsoluteResult, error)
}

type IOwnership interface {
	Register(ctx context.Context, input *OwnershipInput) (*RoomWithSensor, error)
	Update(ctx context.Context, input *OwnershipUpdate, ifMatch string) (UpdateOutcome, error)
	Delete(ctx context.Context, chipID string, userID uint) error
	RoomsByUser(ctx context.Context, userID uint) ([]RoomWithSensor, error)
	SyncForChip(ctx context.Context, chipID string) (*OwnershipSync, error)
}

type IUser interface {
	Register(ctx context.Context, input *UserAuthInput) (*UserProfile, error)
	Login(ctx context.Context, username, password string) (*UserProfile, error)
	Refresh(ctx context.Context, refreshToken string) (*UserProfile, error)
	Profile(ctx context.Context, id uint) (*UserProfile, error)
	UsernameByID(ctx context.Context, id uint) (string, error)
	ChangeUsername(ctx context.Context, id uint, newUsername string, expectedVersion int64) (*UserProfile, error)
}

type Comfort struct {
	Db   db.DB
	Auth *auth.TokenService

	Reading   IReading
	Advice    IAdvice
	Threshold IThreshold
	Ownership IOwnership
	User      IUser
}

type ServiceOpts struct {
	Reading   IReading
	Advice    IAdvice
	Threshold IThreshold
	Ownership IOwnership
	User      IUser
}

func (c *Comfort) WithServices(opts ServiceOpts) *Comfort {
	if opts.Reading != nil {
		c.Reading = opts.Reading
	}
	if opts.Advice != nil {
		c.Advice = opts.Advice
	}
	if opts.Threshold != nil {
		c.Threshold = opts.Threshold
	}
	if opts.Ownership != nil {
		c.Ownership = opts.Ownership
	}
	if opts.User != nil {
		c.User = opts.User
	}
	return c
}

// NormalizeChipID trims and upper-cases a chip identifier. Every lookup and
// every stored row goes through this.
func NormalizeChipID(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
