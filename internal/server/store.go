package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"taskdeck/internal/task"
)

// ErrNotFound is returned when a key does not exist.
var ErrNotFound = errors.New("not found")

// Key prefixes. Email keys index user ids for lookup by email.
const (
	userPrefix  = "user/"
	emailPrefix = "email/"
	taskPrefix  = "task/"
)

// UserRecord is the stored account shape. Password holds the bcrypt hash
// and never leaves the server.
type UserRecord struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	CreatedAt int64  `json:"createdAt"`
}

// Sanitized strips the password hash for responses.
func (u UserRecord) Sanitized() map[string]any {
	return map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"createdAt": u.CreatedAt,
	}
}

// Store persists users and tasks in badger with JSON-encoded values.
type Store struct {
	db *badger.DB
}

// OpenStore opens (or creates) the database at dirPath.
func OpenStore(dirPath string) (*Store, error) {
	opts := badger.DefaultOptions(dirPath).
		WithLoggingLevel(badger.ERROR)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// CreateUser stores a new account and its email index entry.
// Returns ErrDuplicate when the email is already registered.
func (s *Store) CreateUser(u UserRecord) error {
	return s.db.Update(func(txn *badger.Txn) error {
		emailKey := []byte(emailPrefix + strings.ToLower(u.Email))
		if _, err := txn.Get(emailKey); err == nil {
			return ErrDuplicate
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		data, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(userPrefix+u.ID), data); err != nil {
			return err
		}
		return txn.Set(emailKey, []byte(u.ID))
	})
}

// ErrDuplicate is returned when creating a user with a registered email.
var ErrDuplicate = errors.New("email already registered")

// UserByEmail looks an account up through the email index.
func (s *Store) UserByEmail(email string) (UserRecord, error) {
	var u UserRecord
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(emailPrefix + strings.ToLower(email)))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		var id []byte
		if id, err = item.ValueCopy(nil); err != nil {
			return err
		}
		return s.readUser(txn, string(id), &u)
	})
	return u, err
}

// UserByID fetches an account record.
func (s *Store) UserByID(id string) (UserRecord, error) {
	var u UserRecord
	err := s.db.View(func(txn *badger.Txn) error {
		return s.readUser(txn, id, &u)
	})
	return u, err
}

func (s *Store) readUser(txn *badger.Txn, id string, u *UserRecord) error {
	item, err := txn.Get([]byte(userPrefix + id))
	if err == badger.ErrKeyNotFound {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, u)
	})
}

// PutTask stores a task record keyed by id.
func (s *Store) PutTask(t task.Task) error {
	return s.db.Update(func(txn *badger.Txn) error {
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		return txn.Set([]byte(taskPrefix+t.ID), data)
	})
}

// TaskByID fetches a task record.
func (s *Store) TaskByID(id string) (task.Task, error) {
	var t task.Task
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(taskPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &t)
		})
	})
	return t, err
}

// DeleteTask removes a task record.
func (s *Store) DeleteTask(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(taskPrefix + id)
		if _, err := txn.Get(key); err == badger.ErrKeyNotFound {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// TasksByUser scans the task prefix and returns the user's tasks.
// Fine for a development store; there is no secondary index.
func (s *Store) TasksByUser(userID string) ([]task.Task, error) {
	var out []task.Task
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(taskPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var t task.Task
				if err := json.Unmarshal(val, &t); err != nil {
					return err
				}
				if t.UserID == userID {
					out = append(out, t)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}
