package models

import "time"

const (
	RoleNameUser  string = "User"
	RoleNameAdmin string = "Admin"
)

type Role struct {
	ID        uint   `gorm:"primaryKey"`
	RoleName  string `gorm:"uniqueIndex"`
	CreatedAt time.Time

	Users []User `gorm:"foreignKey:RoleID"`
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex"`
	Email        string
	PasswordHash string
	RoleID       uint `gorm:"index"`

	RefreshToken       string `gorm:"index"`
	RefreshTokenExpiry *time.Time

	// Optimistic-concurrency counter for username renames.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	Role Role `gorm:"foreignKey:RoleID"`
}

// Ownership binds one chip to one user and one named room. ChipID is stored
// normalized (trimmed, upper-cased) and is globally unique: a chip has at most
// one owner.
type Ownership struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	ChipID    string `gorm:"uniqueIndex"`
	RoomName  string
	ImageName string

	// Version together with ChipID forms the ETag used for conditional updates.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}

// Reading is one immutable telemetry sample. Sensor fields are pointers:
// absence means "sensor not wired", which is distinct from a zero reading.
// Temperature and humidity arrive from two parallel sensor sources (DHT and
// BME) that may or may not both be present.
type Reading struct {
	ID     uint   `gorm:"primaryKey"`
	ChipID string `gorm:"index"`

	TemperatureDht *float64
	HumidityDht    *float64
	TemperatureBme *float64
	HumidityBme    *float64

	GasDetected      *bool
	Mq2Analog        *int
	Mq2AnalogPercent *float64

	Light              *string
	LightAnalog        *int
	LightAnalogPercent *float64

	Pressure *float64
	Altitude *float64

	CreatedAt time.Time `gorm:"index"`
}

// Threshold is one monitored parameter with optional low/high bounds and the
// advisory messages emitted on a breach. Name is stored lower-cased.
type Threshold struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"uniqueIndex"`
	Low         *float64
	High        *float64
	LowMessage  string
	HighMessage string
	CreatedAt   time.Time

	Adjustments []ThresholdAdjustment `gorm:"foreignKey:ThresholdID"`
}

// ThresholdAdjustment is the versioned per-(user, ownership) delta applied on
// top of one base Threshold. At most one current row exists per triple.
type ThresholdAdjustment struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"uniqueIndex:idx_adjustment_scope"`
	OwnershipID uint `gorm:"uniqueIndex:idx_adjustment_scope"`
	ThresholdID uint `gorm:"uniqueIndex:idx_adjustment_scope"`
	LowDelta    float64
	HighDelta   float64
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Recommendation is advice derived from exactly one Reading. The unique index
// on ReadingID is the backstop against duplicate advice under racing saves.
// CreatedAt is inherited from the source Reading, not the wall clock of the
// computation.
type Recommendation struct {
	ID          uint `gorm:"primaryKey"`
	ReadingID   uint `gorm:"uniqueIndex"`
	OwnershipID uint `gorm:"index"`
	Text        string
	CreatedAt   time.Time
}

// DefaultThresholds is the seed data for the three monitored parameters. It is
// applied at startup with a do-nothing-on-conflict upsert, so operator edits
// survive restarts.
func DefaultThresholds() []Threshold {
	bound := func(v float64) *float64 { return &v }
	return []Threshold{
		{
			Name:        "temperature",
			Low:         bound(18),
			High:        bound(25),
			LowMessage:  "It is chilly in the room, consider turning up the heating",
			HighMessage: "It is hot in the room, consider ventilating or cooling",
		},
		{
			Name:        "humidity",
			Low:         bound(40),
			High:        bound(60),
			LowMessage:  "The air is dry, a humidifier would help",
			HighMessage: "Humidity is high, ventilate the room",
		},
		{
			// Gas has no meaningful "too little" state: no low bound, no low message.
			Name:        "gas",
			High:        bound(30),
			HighMessage: "Gas level is elevated, ventilate the room immediately",
		},
	}
}
