package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// profileDocument is one JSON document row. Both collections share the shape
// and differ only by table.
type profileDocument struct {
	UserID    string         `gorm:"primaryKey;size:128"`
	Data      datatypes.JSON `gorm:"type:json;not null"`
	UpdatedAt time.Time
}

// MySQLConfig holds the connection settings for GormProfileStore.
type MySQLConfig struct {
	DSN                    string
	MaxIdleConns           int
	MaxOpenConns           int
	ConnMaxLifetimeMinutes int
	Debug                  bool
}

// GormProfileStore keeps profile documents in MySQL through GORM.
type GormProfileStore struct {
	documentProfileStore
	db *gorm.DB
}

var _ ProfileStore = (*GormProfileStore)(nil)

// NewGormProfileStore connects to MySQL and migrates the document tables.
func NewGormProfileStore(cfg MySQLConfig) (*GormProfileStore, error) {
	logLevel := gormlogger.Warn
	if cfg.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger:      gormlogger.Default.LogMode(logLevel),
		PrepareStmt: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("mysql: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql: get sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	return newGormProfileStore(db)
}

func newGormProfileStore(db *gorm.DB) (*GormProfileStore, error) {
	for _, table := range []string{collectionProfiles, collectionFiles} {
		if err := db.Table(table).AutoMigrate(&profileDocument{}); err != nil {
			return nil, fmt.Errorf("mysql: migrate %s: %w", table, err)
		}
	}

	s := &GormProfileStore{db: db}
	s.documentProfileStore = documentProfileStore{backend: s}
	return s, nil
}

func (s *GormProfileStore) updateDocument(ctx context.Context, collection, userID string, fn func([]byte) ([]byte, error)) ([]byte, error) {
	var next []byte
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row profileDocument
		err := tx.Table(collection).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			Take(&row).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("mysql: read %s: %w", collection, err)
		}

		next, err = fn(row.Data)
		if err != nil {
			return err
		}

		row = profileDocument{UserID: userID, Data: datatypes.JSON(next)}
		err = tx.Table(collection).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).
			Create(&row).Error
		if err != nil {
			return fmt.Errorf("mysql: write %s: %w", collection, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

func (s *GormProfileStore) getDocument(ctx context.Context, collection, userID string) ([]byte, error) {
	var row profileDocument
	err := s.db.WithContext(ctx).Table(collection).Where("user_id = ?", userID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mysql: read %s: %w", collection, err)
	}
	return row.Data, nil
}

// Close closes the underlying connection pool.
func (s *GormProfileStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
