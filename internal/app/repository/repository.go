package repository

import (
	"fmt"

	"backend/internal/app/ds"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func New(dsn string, log *logrus.Logger) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Repository{
		db:  db,
		log: log,
	}, nil
}

// EnsureSchema creates the tables if they do not exist yet. Safe to call on
// every install; an existing table is left alone.
func (r *Repository) EnsureSchema() error {
	err := r.db.AutoMigrate(
		&ds.CostRecord{},
		&ds.TicketSolution{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// DropAll removes the plugin's own table at uninstall. The resolution notes
// table belongs to the host and is never dropped. Dropping an absent table is
// a no-op.
func (r *Repository) DropAll() error {
	m := r.db.Migrator()
	if !m.HasTable(&ds.CostRecord{}) {
		return nil
	}
	if err := m.DropTable(&ds.CostRecord{}); err != nil {
		return fmt.Errorf("failed to drop cost table: %w", err)
	}
	return nil
}
