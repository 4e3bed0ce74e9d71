package db

import (
	"context"
	"fmt"
	"time"

	"lab_loan_tool/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const DocumentTable = "lab_loan_documents"

// documentRow 一行存一个集合（JSON 数组）
type documentRow struct {
	Name      string    `gorm:"primaryKey;size:64"`
	Body      string    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (documentRow) TableName() string { return DocumentTable }

// DSN builds a key/value DSN from the individual DB_* settings.
func DSN(host, user, password, name, port string) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, name, port,
	)
}

func ConnectDB(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(conn); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return conn, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&documentRow{})
}

// PostgresStore keeps the documents as rows of one table.
type PostgresStore struct{ DB *gorm.DB }

func NewPostgresStore(db *gorm.DB) *PostgresStore { return &PostgresStore{DB: db} }

func (s *PostgresStore) Load(ctx context.Context) (*models.Snapshot, error) {
	var rows []documentRow
	if err := s.DB.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	snap := models.NewSnapshot()
	for _, row := range rows {
		if err := DecodeDocument(snap, models.Document(row.Name), []byte(row.Body)); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// Save upserts the given documents inside one transaction.
func (s *PostgresStore) Save(ctx context.Context, snap *models.Snapshot, docs ...models.Document) error {
	encoded, err := encodeAll(snap, docs)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for d, b := range encoded {
			row := documentRow{Name: string(d), Body: string(b), UpdatedAt: now}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name"}},
				DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
			}).Create(&row).Error; err != nil {
				return fmt.Errorf("upsert %s: %w", d, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
