package stubapi

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"pointcard/internal/models"
)

var (
	ErrUnknownPointID     = errors.New("unknown point id")
	ErrInsufficientPoints = errors.New("insufficient points")
)

// LedgerEntry records one points transaction. The stub keeps the full
// ledger so balances are inspectable during development.
type LedgerEntry struct {
	PointID   string
	Direction models.Direction
	Amount    int
	Shop      string
	At        time.Time
}

type record struct {
	user     models.User
	password string
}

// Store is the stub backend's in-memory state: registered users keyed by
// email and id, plus per-point-identifier balances and the ledger.
type Store struct {
	mu sync.Mutex

	usersByEmail map[string]*record
	usersByID    map[int]*record
	balances     map[string]int
	ledger       []LedgerEntry
	nextUserID   int
}

func NewStore() *Store {
	return &Store{
		usersByEmail: map[string]*record{},
		usersByID:    map[int]*record{},
		balances:     map[string]int{},
		nextUserID:   1,
	}
}

func (s *Store) CreateUser(name, email, password string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.usersByEmail[email]; exists {
		return nil, models.ErrUserAlreadyExists
	}

	now := time.Now().UTC().Format(time.RFC3339)
	usr := models.User{
		ID:        s.nextUserID,
		Email:     email,
		Name:      &name,
		PointID:   uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextUserID++

	rec := &record{user: usr, password: password}
	s.usersByEmail[email] = rec
	s.usersByID[usr.ID] = rec
	s.balances[usr.PointID] = 0

	return &usr, nil
}

func (s *Store) Authenticate(email, password string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.usersByEmail[email]
	if !exists || rec.password != password {
		return nil, false
	}

	usr := rec.user

	return &usr, true
}

func (s *Store) GetUserByID(id int) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.usersByID[id]
	if !exists {
		return nil, false
	}

	usr := rec.user

	return &usr, true
}

func (s *Store) AddPoints(pointID string, amount int, shop string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, exists := s.balances[pointID]
	if !exists {
		return 0, ErrUnknownPointID
	}

	balance += amount
	s.balances[pointID] = balance
	s.ledger = append(s.ledger, LedgerEntry{
		PointID:   pointID,
		Direction: models.DirectionAdd,
		Amount:    amount,
		Shop:      shop,
		At:        time.Now().UTC(),
	})

	return balance, nil
}

func (s *Store) UsePoints(pointID string, amount int, shop string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, exists := s.balances[pointID]
	if !exists {
		return 0, ErrUnknownPointID
	}

	if balance < amount {
		return balance, ErrInsufficientPoints
	}

	balance -= amount
	s.balances[pointID] = balance
	s.ledger = append(s.ledger, LedgerEntry{
		PointID:   pointID,
		Direction: models.DirectionUse,
		Amount:    amount,
		Shop:      shop,
		At:        time.Now().UTC(),
	})

	return balance, nil
}

func (s *Store) Balance(pointID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, exists := s.balances[pointID]

	return balance, exists
}

func (s *Store) Ledger() []LedgerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]LedgerEntry, len(s.ledger))
	copy(result, s.ledger)

	return result
}
