package flagstore

import (
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/startmenudetection/startmenudetection/internal/database"
)

// SQLiteStore keeps the flag in a sqlite file provisioned by setup. It
// stands in for the registry on platforms without one.
type SQLiteStore struct {
	dbPath    string
	keyPath   string
	valueName string
}

func NewSQLiteStore(dbPath, keyPath, valueName string) *SQLiteStore {
	return &SQLiteStore{
		dbPath:    dbPath,
		keyPath:   keyPath,
		valueName: valueName,
	}
}

func (s *SQLiteStore) SetFlag(value uint32) error {
	db, err := database.Connect(s.dbPath)
	if err != nil {
		return s.accessError(PathUnopenable, err)
	}
	defer db.Close()

	repo := database.NewRepository(db)
	if _, err := repo.OpenKey(s.keyPath); err != nil {
		return s.accessError(PathUnopenable, err)
	}

	if err := repo.SetValue(s.keyPath, s.valueName, int32(value)); err != nil {
		if isWriteDenied(err) {
			return s.accessError(WriteDenied, err)
		}
		return s.accessError(WriteFailed, err)
	}

	return nil
}

func (s *SQLiteStore) accessError(kind Kind, err error) *StoreAccessError {
	return &StoreAccessError{Kind: kind, Path: s.keyPath, Name: s.valueName, Err: err}
}

func isWriteDenied(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code {
	case sqlite3.ErrReadonly, sqlite3.ErrPerm, sqlite3.ErrAuth:
		return true
	}
	return false
}
