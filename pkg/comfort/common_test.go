package comfort

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"roomsense.io/room-comfort-service/pkg/auth"
	"roomsense.io/room-comfort-service/pkg/db"
	"roomsense.io/room-comfort-service/pkg/models"
	_ "roomsense.io/room-comfort-service/pkg/testing"
)

func GetTestComfortWithMemorySqliteDialector(t *testing.T) *Comfort {
	t.Helper()

	dbInstance := db.GetInstance(db.UseMemorySqliteDialector()) // ensure migrations and seed
	comfortInstance := &Comfort{
		Db:   *dbInstance,
		Auth: auth.NewTokenService("test-secret", 15*time.Minute),
	}
	comfortInstance.WithServices(ServiceOpts{
		Reading:   comfortInstance.GetIReading(),
		Advice:    comfortInstance.GetIAdvice(),
		Threshold: comfortInstance.GetIThreshold(),
		Ownership: comfortInstance.GetIOwnership(),
		User:      comfortInstance.GetIUser(),
	})
	return comfortInstance
}

func createTestUser(t *testing.T, c *Comfort) *models.User {
	t.Helper()

	var role models.Role
	require.NoError(t, c.Db.Conn.Where("role_name = ?", models.RoleNameUser).First(&role).Error)

	user := models.User{
		Username:     "user-" + uuid.NewString(),
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "not-a-real-hash",
		RoleID:       role.ID,
		Version:      1,
	}
	require.NoError(t, c.Db.Conn.Create(&user).Error)
	return &user
}

func createTestOwnership(t *testing.T, c *Comfort, userID uint, roomName string) *models.Ownership {
	t.Helper()

	now := time.Now().UTC()
	own := models.Ownership{
		UserID:    userID,
		ChipID:    NormalizeChipID("chip-" + uuid.NewString()),
		RoomName:  roomName,
		ImageName: "room.png",
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, c.Db.Conn.Create(&own).Error)
	return &own
}

func createTestReading(t *testing.T, c *Comfort, chipID string, mutate func(*models.Reading)) *models.Reading {
	t.Helper()

	reading := models.Reading{
		ChipID:    NormalizeChipID(chipID),
		CreatedAt: time.Now().UTC(),
	}
	if mutate != nil {
		mutate(&reading)
	}
	require.NoError(t, c.Db.Conn.Create(&reading).Error)
	return &reading
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
