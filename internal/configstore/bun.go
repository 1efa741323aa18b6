package configstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// ErrDatabaseRequired indicates a BunStore built without a database handle.
var ErrDatabaseRequired = errors.New("configstore: bun store requires a database")

// BunStore persists settings in an app_configs table through Bun. It is the
// durable counterpart to MemoryStore for deployments that keep sync settings
// in SQLite or another bun-supported database.
type BunStore struct {
	db *bun.DB
}

// NewBunStore constructs a Bun-backed settings store.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	_, err := s.db.NewCreateTable().
		Model((*appConfigModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Get returns the stored value for key, or def when absent.
func (s *BunStore) Get(ctx context.Context, key, def string) (string, error) {
	if s.db == nil {
		return "", ErrDatabaseRequired
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", errKeyRequired
	}

	var model appConfigModel
	err := s.db.NewSelect().Model(&model).Where("key = ?", trimmed).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return def, nil
		}
		return "", err
	}
	return model.Value, nil
}

// Set stores value under key, replacing any previous value.
func (s *BunStore) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errKeyRequired
	}

	model := &appConfigModel{
		Key:       trimmed,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.db.NewInsert().
		Model(model).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

type appConfigModel struct {
	bun.BaseModel `bun:"table:app_configs"`

	Key       string    `bun:"key,pk"`
	Value     string    `bun:"value"`
	UpdatedAt time.Time `bun:"updated_at"`
}
