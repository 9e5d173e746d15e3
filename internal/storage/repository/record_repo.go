// Package repository provides data access layers for the record store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// RecordRepository handles database operations for match records.
//
// The record table is append-only: rows are added and read back, never
// updated. Duplicate appends are accepted as distinct rows.
type RecordRepository interface {
	// Append inserts a new record and fills in its assigned ID.
	Append(ctx context.Context, rec *models.MatchRecord) error

	// AppendAll inserts a batch of records in one transaction.
	AppendAll(ctx context.Context, recs []*models.MatchRecord) error

	// LoadAll retrieves every record in insertion order.
	LoadAll(ctx context.Context) ([]*models.MatchRecord, error)

	// GetByID retrieves a record by its ID, or nil when absent.
	GetByID(ctx context.Context, id int) (*models.MatchRecord, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Seasons returns the distinct seasons present, sorted.
	Seasons(ctx context.Context) ([]string, error)

	// Environments returns the distinct environments present, sorted.
	Environments(ctx context.Context) ([]string, error)
}

// recordRepository is the concrete implementation of RecordRepository.
type recordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new record repository.
func NewRecordRepository(db *sql.DB) RecordRepository {
	return &recordRepository{db: db}
}

const recordColumns = `id, season, date, environment, my_deck, my_deck_type,
		opponent_deck, opponent_deck_type, first_second, result, finish_turn,
		memo, created_at`

// Append inserts a new record and fills in its assigned ID.
func (r *recordRepository) Append(ctx context.Context, rec *models.MatchRecord) error {
	return r.appendWith(ctx, r.db, rec)
}

// AppendAll inserts a batch of records in one transaction. Either every
// record lands or none do.
func (r *recordRepository) AppendAll(ctx context.Context, recs []*models.MatchRecord) error {
	if len(recs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, rec := range recs {
		if err := r.appendWith(ctx, tx, rec); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *recordRepository) appendWith(ctx context.Context, ex execer, rec *models.MatchRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO records (
			season, date, environment, my_deck, my_deck_type,
			opponent_deck, opponent_deck_type, first_second, result,
			finish_turn, memo, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := ex.ExecContext(ctx, query,
		rec.Season,
		rec.Date,
		rec.Environment,
		rec.MyDeck,
		rec.MyDeckType,
		rec.OpponentDeck,
		rec.OpponentDeckType,
		string(rec.FirstSecond),
		string(rec.Result),
		rec.FinishTurn,
		rec.Memo,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	rec.ID = int(id)
	return nil
}

// LoadAll retrieves every record in insertion order.
func (r *recordRepository) LoadAll(ctx context.Context) ([]*models.MatchRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM records ORDER BY id`, recordColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*models.MatchRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return records, nil
}

// GetByID retrieves a record by its ID, or nil when absent.
func (r *recordRepository) GetByID(ctx context.Context, id int) (*models.MatchRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM records WHERE id = ?`, recordColumns)

	row := r.db.QueryRowContext(ctx, query, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// Count returns the number of stored records.
func (r *recordRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// Seasons returns the distinct seasons present, sorted.
func (r *recordRepository) Seasons(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "season")
}

// Environments returns the distinct environments present, sorted.
func (r *recordRepository) Environments(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "environment")
}

func (r *recordRepository) distinct(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM records WHERE %s != '' ORDER BY %s`, column, column, column)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", column, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s values: %w", column, err)
	}

	return values, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*models.MatchRecord, error) {
	var (
		rec         models.MatchRecord
		date        sql.NullTime
		finishTurn  sql.NullInt64
		firstSecond string
		result      string
	)

	err := s.Scan(
		&rec.ID,
		&rec.Season,
		&date,
		&rec.Environment,
		&rec.MyDeck,
		&rec.MyDeckType,
		&rec.OpponentDeck,
		&rec.OpponentDeckType,
		&firstSecond,
		&result,
		&finishTurn,
		&rec.Memo,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	if date.Valid {
		d := date.Time
		rec.Date = &d
	}
	if finishTurn.Valid {
		t := int(finishTurn.Int64)
		rec.FinishTurn = &t
	}
	rec.FirstSecond = models.Initiative(firstSecond)
	rec.Result = models.Result(result)

	return &rec, nil
}
