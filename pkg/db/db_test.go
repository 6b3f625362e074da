package db

import (
	"sync"
	"testing"

	"roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
	_ "roomsense.io/room-comfort-service/pkg/testing"

	"gorm.io/gorm"
)

func tableExists(db *gorm.DB, tableName string) bool {
	var count int64
	err := db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?`, tableName,
	).Scan(&count).Error
	return err == nil && count > 0
}

func TestWithMemorySqlite(t *testing.T) {
	common.SetTestLoggerNop()

	dialector := UseMemorySqliteDialector()

	instance := GetInstance(dialector)
	if instance == nil {
		t.Fatal("Expected non-nil DB instance")
	}

	var tables = []string{
		"roles", "users", "ownerships", "readings",
		"thresholds", "threshold_adjustments", "recommendations",
	}
	for _, table := range tables {
		if !tableExists(instance.Conn, table) {
			t.Errorf("Expected table %q to exist after migration", table)
		}
	}
}

func TestSeedData(t *testing.T) {
	common.SetTestLoggerNop()

	instance := GetInstance(UseMemorySqliteDialector())

	for _, roleName := range []string{models.RoleNameUser, models.RoleNameAdmin} {
		var count int64
		err := instance.Conn.Model(&models.Role{}).Where("role_name = ?", roleName).Count(&count).Error
		if err != nil || count != 1 {
			t.Errorf("Expected role %q to be seeded exactly once, count=%v err=%v", roleName, count, err)
		}
	}

	for _, name := range []string{"temperature", "humidity", "gas"} {
		var count int64
		err := instance.Conn.Model(&models.Threshold{}).Where("name = ?", name).Count(&count).Error
		if err != nil || count != 1 {
			t.Errorf("Expected threshold %q to be seeded exactly once, count=%v err=%v", name, count, err)
		}
	}

	var gas models.Threshold
	if err := instance.Conn.Where("name = ?", "gas").First(&gas).Error; err != nil {
		t.Fatalf("Failed to load gas threshold: %v", err)
	}
	if gas.Low != nil {
		t.Error("Expected gas threshold to have no low bound")
	}
	if gas.High == nil || *gas.High != 30 {
		t.Errorf("Expected gas high bound 30, got %v", gas.High)
	}
}

func TestSingletonConcurrency(t *testing.T) {
	common.SetTestLoggerNop()

	const goroutineCount = 20

	var wg sync.WaitGroup
	instances := make(chan *DB, goroutineCount)

	for i := 0; i < goroutineCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			instance := GetInstance(UseMemorySqliteDialector())
			instances <- instance
		}()
	}

	wg.Wait()
	close(instances)

	var first *DB
	for inst := range instances {
		if first == nil {
			first = inst
			continue
		}
		if inst != first {
			t.Error("Expected all instances to be the same (singleton), but found different ones")
		}
	}
}
