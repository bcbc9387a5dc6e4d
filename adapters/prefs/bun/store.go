// Package prefsbun stores theme preferences in a SQL database through Bun.
package prefsbun

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-report/theme"
)

// Store keeps preferences in the "preferences" table.
type Store struct {
	DB  *bun.DB
	Now func() time.Time
}

var _ theme.PreferenceStore = (*Store)(nil)

// NewStore creates a Bun-backed preference store.
func NewStore(db *bun.DB) *Store {
	return &Store{DB: db, Now: time.Now}
}

// EnsureSchema creates the preferences table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("preference database not configured")
	}
	_, err := s.DB.NewCreateTable().Model((*preferenceModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Get returns the stored value for key.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.DB == nil {
		return "", false, errors.New("preference database not configured")
	}
	if key == "" {
		return "", false, errors.New("preference key is required")
	}

	model := new(preferenceModel)
	err := s.DB.NewSelect().Model(model).Where("name = ?", key).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return model.Value, true, nil
}

// Set inserts or replaces the value for key.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if s == nil || s.DB == nil {
		return errors.New("preference database not configured")
	}
	if key == "" {
		return errors.New("preference key is required")
	}

	model := preferenceModel{Name: key, Value: value, UpdatedAt: s.now()}
	_, err := s.DB.NewInsert().Model(&model).
		On("CONFLICT (name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

type preferenceModel struct {
	bun.BaseModel `bun:"table:preferences,alias:preferences"`

	Name      string    `bun:",pk"`
	Value     string    `bun:",notnull"`
	UpdatedAt time.Time `bun:"updated_at"`
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
