package db

import (
	"fmt"

	"github.com/komunitech/komunitech/internal/config"
	"github.com/komunitech/komunitech/internal/domain/audit"
	"github.com/komunitech/komunitech/internal/domain/category"
	"github.com/komunitech/komunitech/internal/domain/comment"
	"github.com/komunitech/komunitech/internal/domain/notification"
	"github.com/komunitech/komunitech/internal/domain/project"
	"github.com/komunitech/komunitech/internal/domain/requirement"
	"github.com/komunitech/komunitech/internal/domain/support"
	"github.com/komunitech/komunitech/internal/domain/user"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
		config.DbSSLMode,
	)
}

// Open connects through the given dialector with error translation on, so
// unique violations surface as gorm.ErrDuplicatedKey where the driver allows.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
}

func Init() {
	var err error
	DB, err = Open(postgres.Open(DSN()))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate")
	}
	if err := RunSQLMigrations(DB); err != nil {
		log.Fatal().Err(err).Msg("failed to apply sql migrations")
	}

	log.Info().Str("host", config.DbHost).Str("db", config.DbName).Msg("database connected and migrated")
}

// Models lists every table in creation order.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&category.Category{},
		&project.Project{},
		&project.Collaborator{},
		&requirement.Requirement{},
		&comment.Comment{},
		&support.Support{},
		&notification.Notification{},
		&audit.AuditLog{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
