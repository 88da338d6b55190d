// File: /database/database.go
package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"photoshare-api/config"
	"photoshare-api/logging"
	"photoshare-api/models"
)

// zapWriter adapts zap.Logger to logger.Writer interface
type zapWriter struct {
	logger *zap.Logger
}

func (w *zapWriter) Printf(format string, args ...interface{}) {
	w.logger.Sugar().Infof(format, args...)
}

// DB wraps GORM database connection
type DB struct {
	*gorm.DB
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		return mysql.Open(cfg.URL), nil
	case "postgres":
		return postgres.Open(cfg.URL), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "DEBUG", "debug":
		return logger.Info
	case "WARN", "warn", "WARNING", "warning":
		return logger.Error
	case "ERROR", "error":
		return logger.Silent
	}
	return logger.Warn
}

// Initialize opens the SQL database named by cfg and checks the connection.
func Initialize(cfg *config.DatabaseConfig, logLevel string) (*DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		&zapWriter{logger: logging.WithComponent("gorm")},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(logLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logging.GetLogger().Info("Database connection established", zap.String("driver", cfg.Driver))
	return &DB{DB: db}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health checks database health
func (d *DB) Health(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.Photo{},
		&models.Comment{},
		&models.Reaction{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

type customIndex struct {
	model interface{}
	name  string
	ddl   string
}

func addCustomIndexes(db *gorm.DB) error {
	log := logging.WithComponent("migrate")
	indexes := []customIndex{
		{&models.Comment{}, "idx_comments_photo_date", "CREATE INDEX idx_comments_photo_date ON comments(photo_id, date_time)"},
		{&models.Reaction{}, "idx_reactions_photo_type", "CREATE INDEX idx_reactions_photo_type ON reactions(photo_id, type)"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}
		if err := db.Exec(idx.ddl).Error; err != nil {
			log.Warn("Could not create index", zap.String("index", idx.name), zap.Error(err))
		}
	}
	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	log := logging.WithComponent("migrate")
	constraints := []customIndex{
		{&models.Friendship{}, "ck_friendships_no_self", "ALTER TABLE friendships ADD CONSTRAINT ck_friendships_no_self CHECK (requester_id <> recipient_id)"},
		{&models.Photo{}, "ck_photos_reaction_total", "ALTER TABLE photos ADD CONSTRAINT ck_photos_reaction_total CHECK (reaction_total >= 0)"},
	}

	for _, ck := range constraints {
		if db.Migrator().HasConstraint(ck.model, ck.name) {
			continue
		}
		if err := db.Exec(ck.ddl).Error; err != nil {
			log.Warn("Could not add constraint", zap.String("constraint", ck.name), zap.Error(err))
		}
	}
	return nil
}

// SeedPassword is the password of every seeded account.
const SeedPassword = "password123"

// SeedData populates an empty database with two friends and a photo for
// development.
func SeedData(db *gorm.DB) error {
	log := logging.WithComponent("seed")

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if userCount > 0 {
		log.Info("Database already has data, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	now := time.Now().UTC()
	users := []models.User{
		{ID: "user-1", LoginName: "john_doe", Password: string(hashed), FirstName: "John", LastName: "Doe", Location: "Lisbon", Occupation: "Photographer", CreatedAt: now, UpdatedAt: now},
		{ID: "user-2", LoginName: "jane_smith", Password: string(hashed), FirstName: "Jane", LastName: "Smith", Location: "Porto", Occupation: "Designer", CreatedAt: now, UpdatedAt: now},
	}
	friendship := models.Friendship{
		ID:          "friendship-1",
		RequesterID: "user-1",
		RecipientID: "user-2",
		Status:      models.FriendshipStatusAccepted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	photo := models.Photo{
		ID:       "photo-1",
		Title:    "Sunset over the river",
		FileName: "https://picsum.photos/800/600?random=1",
		UserID:   "user-1",
		DateTime: now,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("failed to seed users: %w", err)
		}
		if err := tx.Create(&friendship).Error; err != nil {
			return fmt.Errorf("failed to seed friendship: %w", err)
		}
		if err := tx.Omit("Comments", "Reactions").Create(&photo).Error; err != nil {
			return fmt.Errorf("failed to seed photo: %w", err)
		}
		log.Info("Database seeded", zap.Int("users", len(users)))
		return nil
	})
}
