package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	constant "roomsense.io/room-comfort-service/pkg/common"
	"roomsense.io/room-comfort-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = constant.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		err = instance.Conn.AutoMigrate(
			&models.Role{},
			&models.User{},
			&models.Ownership{},
			&models.Reading{},
			&models.Threshold{},
			&models.ThresholdAdjustment{},
			&models.Recommendation{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		if err := instance.Conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			log.Fatal("Failed to enable sqlite foreign key support", err)
		}

		if err := instance.Conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			log.Fatal("Failed to set sqlite journal mode", err)
		}

		if err := seed(instance.Conn); err != nil {
			log.Fatal("Failed to seed database:", err)
		}

		logger.Info("Database seed completed")
	})
	return instance
}

// seed inserts the fixed roles and the default monitored thresholds. Conflicts
// are ignored so values edited at runtime are not clobbered on restart.
func seed(conn *gorm.DB) error {
	roles := []models.Role{
		{RoleName: models.RoleNameUser},
		{RoleName: models.RoleNameAdmin},
	}
	for i := range roles {
		err := conn.Where("role_name = ?", roles[i].RoleName).FirstOrCreate(&roles[i]).Error
		if err != nil {
			return err
		}
	}

	thresholds := models.DefaultThresholds()
	return conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&thresholds).Error
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(constant.EnvKeyComfortDbPath); !found {
		dbPath = "comfort.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}
