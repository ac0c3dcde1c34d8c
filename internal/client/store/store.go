// Package store persists the bearer credential and the cached identity
// record so that a session survives process restarts.
//
// Two keys are used in the local metadata table: TokenKey holds the raw
// bearer string and UserKey holds the identity as JSON. The store performs
// no validation; it only reads, writes and clears.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/staffkeeper/internal/client/models"
	"github.com/dmitrijs2005/staffkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/staffkeeper/internal/common"
	"github.com/dmitrijs2005/staffkeeper/internal/dbx"
)

const (
	TokenKey = "jwt_token"
	UserKey  = "user"
)

// CredentialStore is the durable credential record.
type CredentialStore struct {
	db *sql.DB
}

func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

func (s *CredentialStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *CredentialStore) SetToken(ctx context.Context, token string) error {
	return s.repo(s.db).Set(ctx, TokenKey, []byte(token))
}

// GetToken returns the stored token and whether one exists.
func (s *CredentialStore) GetToken(ctx context.Context) (string, bool, error) {
	v, err := s.repo(s.db).Get(ctx, TokenKey)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return string(v), true, nil
}

func (s *CredentialStore) SetUser(ctx context.Context, id models.Identity) error {
	return setUser(ctx, s.repo(s.db), id)
}

// GetUser returns the cached identity, or nil when none is stored. A record
// that cannot be parsed yields an error wrapping common.ErrDecode.
func (s *CredentialStore) GetUser(ctx context.Context) (*models.Identity, error) {
	v, err := s.repo(s.db).Get(ctx, UserKey)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	var id models.Identity
	if err := json.Unmarshal(v, &id); err != nil {
		return nil, fmt.Errorf("%w: cached user record: %v", common.ErrDecode, err)
	}
	return &id, nil
}

// Save writes token and identity in one transaction: either both keys are
// updated or neither is.
func (s *CredentialStore) Save(ctx context.Context, token string, id models.Identity) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, TokenKey, []byte(token)); err != nil {
			return err
		}
		return setUser(ctx, repo, id)
	})
}

// ClearAll removes both keys. Clearing an empty store is a no-op.
func (s *CredentialStore) ClearAll(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, UserKey, TokenKey)
}

func setUser(ctx context.Context, repo metadata.Repository, id models.Identity) error {
	b, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("encode user record: %w", err)
	}
	return repo.Set(ctx, UserKey, b)
}
