package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	bolt "go.etcd.io/bbolt"
)

var (
	bucketSession = []byte("session")
	keyAuthToken  = []byte("auth_token")
)

// Store holds the single bearer token issued at login or registration.
// The token is persisted under a fixed key so it survives restarts; the
// in-memory copy is a plain single-writer register read at submission time.
type Store struct {
	db *bolt.DB

	mu    sync.RWMutex
	token string
}

func New(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf(newErr1, err)
	}

	store := &Store{db: db}

	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketSession)
		if err != nil {
			return err
		}

		if raw := bucket.Get(keyAuthToken); raw != nil {
			store.token = string(raw)
		}

		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf(newErr2, err)
	}

	return store, nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Store) SetToken(token string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put(keyAuthToken, []byte(token))
	})
	if err != nil {
		return fmt.Errorf(setTokenErr1, err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	return nil
}

func (s *Store) Clear() error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete(keyAuthToken)
	})
	if err != nil {
		return fmt.Errorf(clearErr1, err)
	}

	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	return nil
}

// ExpiresAt reports the unverified `exp` claim of the stored token, for
// informational display only. Token presence, not expiry, gates the
// authenticated flows.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}

	return claims.ExpiresAt.Time, true
}

func (s *Store) Close() error {
	return s.db.Close()
}
