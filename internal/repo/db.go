package repo

import (
	"os"

	"sleuth-client/internal/config"
	"sleuth-client/internal/model"
	"sleuth-client/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func dialector(driver, dsn string) gorm.Dialector {
	switch driver {
	case "postgres":
		return postgres.Open(dsn)
	case "mysql":
		return mysql.Open(dsn)
	default:
		return sqlite.Open(dsn)
	}
}

// InitDB opens the event journal. It leaves DB nil when no driver is configured.
func InitDB() {
	conf := config.GlobalConfig.Journal
	if conf.Driver == "" {
		logger.Log.Info("event journal disabled")
		return
	}

	var err error
	DB, err = gorm.Open(dialector(conf.Driver, conf.DSN), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		logger.Log.Fatal("Failed to connect to journal database",
			zap.String("driver", conf.Driver),
			zap.Error(err),
		)
	}

	if os.Getenv("SLEUTH_SKIP_MIGRATE") == "1" {
		return
	}
	if err := DB.AutoMigrate(&model.EventRecord{}); err != nil {
		logger.Log.Fatal("Failed to migrate journal", zap.Error(err))
	}
}
