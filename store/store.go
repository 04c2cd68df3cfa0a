// Package store persists the shell's durable client-side state: the bearer
// token slot and per-page filter preferences. State lives in a local sqlite
// file keyed by name, the moral equivalent of the browser's localStorage.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// Record is one durable slot
type Record struct {
	bun.BaseModel `bun:"table:client_state,alias:cst"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Key           string     `bun:"key,notnull,unique" json:"key"`
	Value         string     `bun:"value" json:"value,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// Store is the sqlite-backed state store
type Store struct {
	db      *bun.DB
	records repository.Repository[*Record]
}

// Open opens (and if needed initializes) the state database at path. Use
// ":memory:" for throwaway state in tests.
func Open(ctx context.Context, path string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open state database")
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())

	if _, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to initialize state schema")
	}

	records := repository.NewRepository[*Record](db, repository.ModelHandlers[*Record]{
		NewRecord: func() *Record { return &Record{} },
		GetID: func(r *Record) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Record, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
		GetIdentifier: func() string { return "key" },
	})

	return &Store{db: db, records: records}, nil
}

// Close releases the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key, or "" when the slot is empty
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	record, err := s.lookup(ctx, key)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", nil
	}
	return record.Value, nil
}

// Put writes value under key, replacing any previous value
func (s *Store) Put(ctx context.Context, key, value string) error {
	existing, err := s.lookup(ctx, key)
	if err != nil {
		return err
	}

	now := time.Now()
	record := &Record{Key: key, Value: value, UpdatedAt: &now}
	if existing != nil {
		record.ID = existing.ID
	} else {
		record.ID = uuid.New()
	}

	if _, err := s.records.Upsert(ctx, record); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write state slot")
	}

	return nil
}

// Remove clears the slot under key. Removing an absent slot is a no-op.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.db.NewDelete().
		Model((*Record)(nil)).
		Where("key = ?", key).
		Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear state slot")
	}
	return nil
}

func (s *Store) lookup(ctx context.Context, key string) (*Record, error) {
	record := &Record{}
	err := s.db.NewSelect().
		Model(record).
		Where("key = ?", key).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read state slot")
	}
	return record, nil
}

// SavePreference stores a page's filter state as JSON under prefs:<page>
func (s *Store) SavePreference(ctx context.Context, page string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryBadInput, "failed to encode preference")
	}
	return s.Put(ctx, prefKey(page), string(encoded))
}

// LoadPreference restores a page's filter state. Returns false when the page
// has no stored preference.
func (s *Store) LoadPreference(ctx context.Context, page string, out any) (bool, error) {
	raw, err := s.Get(ctx, prefKey(page))
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode preference")
	}

	return true, nil
}

// ClearPreference drops a page's stored filter state
func (s *Store) ClearPreference(ctx context.Context, page string) error {
	return s.Remove(ctx, prefKey(page))
}

func prefKey(page string) string {
	return "prefs:" + page
}
