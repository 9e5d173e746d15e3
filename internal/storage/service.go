package storage

import (
	"context"
	"fmt"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
	"github.com/ymatsuda/deck-ledger/internal/storage/repository"
)

// Service ties the database and record repository together behind the
// operations the rest of the program uses.
type Service struct {
	db      *DB
	records repository.RecordRepository
}

// NewService opens the store at the given path, migrating the schema if
// needed, and returns a ready service.
func NewService(path string) (*Service, error) {
	cfg := DefaultConfig(path)
	cfg.AutoMigrate = true

	db, err := Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	return &Service{
		db:      db,
		records: repository.NewRecordRepository(db.Conn()),
	}, nil
}

// NewServiceWithDB wraps an already-open database. The caller keeps
// ownership of the connection. Used by tests and by backup verification.
func NewServiceWithDB(db *DB) *Service {
	return &Service{
		db:      db,
		records: repository.NewRecordRepository(db.Conn()),
	}
}

// Close closes the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}

// Path returns the file path of the underlying database.
func (s *Service) Path() string {
	return s.db.Path()
}

// Append validates and stores one record. A record that fails validation
// is rejected before anything is written.
func (s *Service) Append(ctx context.Context, rec *models.MatchRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid record: %w", err)
	}
	return s.records.Append(ctx, rec)
}

// AppendAll validates and stores a batch of records in one transaction.
// The batch is rejected as a whole if any record fails validation.
func (s *Service) AppendAll(ctx context.Context, recs []*models.MatchRecord) error {
	for i, rec := range recs {
		if err := rec.Validate(); err != nil {
			return fmt.Errorf("invalid record %d: %w", i+1, err)
		}
	}
	return s.records.AppendAll(ctx, recs)
}

// ImportAll stores every record that passes validation and reports a warning
// per skipped row. Legacy tables legitimately carry rows with absent deck
// fields, so an import keeps the usable rows instead of rejecting the batch
// the way AppendAll does. Returns the number of records stored.
func (s *Service) ImportAll(ctx context.Context, recs []*models.MatchRecord) (int, []string, error) {
	var valid []*models.MatchRecord
	var warnings []string
	for i, rec := range recs {
		if err := rec.Validate(); err != nil {
			warnings = append(warnings, fmt.Sprintf("row %d skipped: %v", i+1, err))
			continue
		}
		valid = append(valid, rec)
	}

	if len(valid) == 0 {
		return 0, warnings, nil
	}
	if err := s.records.AppendAll(ctx, valid); err != nil {
		return 0, warnings, err
	}
	return len(valid), warnings, nil
}

// LoadAll returns every stored record in insertion order.
func (s *Service) LoadAll(ctx context.Context) ([]*models.MatchRecord, error) {
	return s.records.LoadAll(ctx)
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	return s.records.Count(ctx)
}

// Seasons returns the distinct seasons present in the store.
func (s *Service) Seasons(ctx context.Context) ([]string, error) {
	return s.records.Seasons(ctx)
}

// Environments returns the distinct environments present in the store.
func (s *Service) Environments(ctx context.Context) ([]string, error) {
	return s.records.Environments(ctx)
}
