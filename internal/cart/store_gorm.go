package cart

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// cartBlob is the single-row-per-key table holding the serialized cart.
// The schema mirrors the key/value contract, so swapping drivers never
// touches the manager.
type cartBlob struct {
	Key       string `gorm:"primaryKey;size:255"`
	Payload   []byte
	UpdatedAt time.Time
}

func (cartBlob) TableName() string { return "cart_blobs" }

// GormStore persists cart blobs in a local SQLite file. This is the
// device-local option for deployments without a Redis.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens (or creates) the SQLite database and migrates the
// blob table.
func NewGormStore(path string) (*GormStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&cartBlob{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob cartBlob
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return blob.Payload, nil
}

func (s *GormStore) Set(ctx context.Context, key string, payload []byte) error {
	blob := cartBlob{Key: key, Payload: payload, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			UpdateAll: true,
		}).
		Create(&blob).Error
}

// Ping satisfies the readiness probe.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
