package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gynecare/internal/client/models"
	"github.com/dmitrijs2005/gynecare/internal/client/repositories/kv"
	"github.com/dmitrijs2005/gynecare/internal/dbx"
)

// Fixed storage keys.
const (
	KeyToken       = "token"
	KeyTokenExpiry = "token_expiry"
	KeyUser        = "user"
)

var ErrStorage = errors.New("session storage error")

// Store is the persistent mirror of the in-memory session.
type Store interface {
	Save(ctx context.Context, s *models.Session) error
	Load(ctx context.Context) (*models.Session, error)
	Clear(ctx context.Context) error
}

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func (s *SQLiteStore) Save(ctx context.Context, sess *models.Session) error {
	if sess == nil {
		return fmt.Errorf("%w: save: nil session", ErrStorage)
	}

	user, err := json.Marshal(sess.User)
	if err != nil {
		return storageError("encode user", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyToken, sess.Token); err != nil {
			return err
		}
		if err := repo.Set(ctx, KeyTokenExpiry, strconv.FormatInt(sess.TokenExpiry, 10)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUser, string(user))
	})
	if err != nil {
		return storageError("save", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.Session, error) {
	// A single SELECT is a consistent snapshot of all three keys.
	values, err := kv.NewSQLiteRepository(s.db).List(ctx)
	if err != nil {
		return nil, storageError("load", err)
	}

	token, okToken := values[KeyToken]
	rawExpiry, okExpiry := values[KeyTokenExpiry]
	rawUser, okUser := values[KeyUser]
	if !okToken || !okExpiry || !okUser || token == "" {
		return nil, nil
	}

	expiry, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return nil, nil
	}

	var user models.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return nil, nil
	}

	return &models.Session{Token: token, TokenExpiry: expiry, User: user}, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return kv.NewSQLiteRepository(tx).Delete(ctx, KeyToken, KeyTokenExpiry, KeyUser)
	})
	if err != nil {
		return storageError("clear", err)
	}
	return nil
}
