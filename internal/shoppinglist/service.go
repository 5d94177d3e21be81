// Package shoppinglist keeps per-session lists of (item, quantity) requests and
// totals them through the calculator's aggregator.
package shoppinglist

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/concurrency"
	"github.com/osse101/CraftCalc_Go/internal/domain"
	"github.com/osse101/CraftCalc_Go/internal/logger"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9:_-]{1,64}$`)

// Catalog is the subset of the catalog the service needs to validate items
type Catalog interface {
	Known(name string) bool
}

// Aggregator totals a list of requests
type Aggregator interface {
	Aggregate(ctx context.Context, requests []calculator.Request) (*calculator.Result, error)
}

// Service defines shopping list operations
type Service interface {
	NewSession(ctx context.Context) (string, error)
	Get(ctx context.Context, sessionID string) (*domain.ShoppingList, error)
	Add(ctx context.Context, sessionID, item string, quantity int) (*domain.ShoppingList, error)
	Remove(ctx context.Context, sessionID, item string) (*domain.ShoppingList, error)
	Clear(ctx context.Context, sessionID string) error
	Delete(ctx context.Context, sessionID string) error
	Calculate(ctx context.Context, sessionID string) (*calculator.Result, error)
}

type service struct {
	store       Store
	catalog     Catalog
	aggregator  Aggregator
	lockManager *concurrency.LockManager
}

// NewService creates a new shopping list service
func NewService(store Store, catalog Catalog, aggregator Aggregator, lockManager *concurrency.LockManager) Service {
	return &service{
		store:       store,
		catalog:     catalog,
		aggregator:  aggregator,
		lockManager: lockManager,
	}
}

// ValidSessionID reports whether id can be used as a session key
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

// NewSession creates an empty list under a fresh UUID
func (s *service) NewSession(ctx context.Context) (string, error) {
	id := uuid.New().String()
	s.store.Put(&domain.ShoppingList{SessionID: id, Entries: []domain.ShoppingListEntry{}})
	logger.FromContext(ctx).Info("Shopping list session created", "session_id", id)
	return id, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*domain.ShoppingList, error) {
	if err := checkSessionID(sessionID); err != nil {
		return nil, err
	}
	list, ok := s.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return clone(list), nil
}

// Add puts quantity units of item on the list, creating the session if needed.
// An item already on the list keeps its position and has its quantity increased.
func (s *service) Add(ctx context.Context, sessionID, item string, quantity int) (*domain.ShoppingList, error) {
	if err := checkSessionID(sessionID); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be a positive integer, got %d", domain.ErrInvalidInput, quantity)
	}
	if item == "" {
		return nil, fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if !s.catalog.Known(item) {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrItemNotFound, item)
	}

	unlock := s.lockManager.Lock(sessionID)
	defer unlock()

	list := &domain.ShoppingList{SessionID: sessionID}
	if existing, ok := s.store.Get(sessionID); ok {
		list = clone(existing)
	}

	merged := false
	for i := range list.Entries {
		if list.Entries[i].Item == item {
			list.Entries[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		list.Entries = append(list.Entries, domain.ShoppingListEntry{Item: item, Quantity: quantity})
	}

	s.store.Put(list)
	logger.FromContext(ctx).Debug("Shopping list item added", "session_id", sessionID, "item", item, "quantity", quantity)
	return clone(list), nil
}

func (s *service) Remove(ctx context.Context, sessionID, item string) (*domain.ShoppingList, error) {
	if err := checkSessionID(sessionID); err != nil {
		return nil, err
	}

	unlock := s.lockManager.Lock(sessionID)
	defer unlock()

	existing, ok := s.store.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}

	list := clone(existing)
	for i, e := range list.Entries {
		if e.Item == item {
			list.Entries = append(list.Entries[:i], list.Entries[i+1:]...)
			s.store.Put(list)
			logger.FromContext(ctx).Debug("Shopping list item removed", "session_id", sessionID, "item", item)
			return clone(list), nil
		}
	}
	return nil, fmt.Errorf("%w: '%s' is not on the list", domain.ErrItemNotFound, item)
}

// Clear empties the list but keeps the session
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := checkSessionID(sessionID); err != nil {
		return err
	}

	unlock := s.lockManager.Lock(sessionID)
	defer unlock()

	if _, ok := s.store.Get(sessionID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	s.store.Put(&domain.ShoppingList{SessionID: sessionID, Entries: []domain.ShoppingListEntry{}})
	logger.FromContext(ctx).Info("Shopping list cleared", "session_id", sessionID)
	return nil
}

// Delete ends the session
func (s *service) Delete(ctx context.Context, sessionID string) error {
	if err := checkSessionID(sessionID); err != nil {
		return err
	}

	unlock := s.lockManager.Lock(sessionID)
	defer unlock()

	if _, ok := s.store.Get(sessionID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	s.store.Delete(sessionID)
	logger.FromContext(ctx).Info("Shopping list session deleted", "session_id", sessionID)
	return nil
}

// Calculate aggregates every entry on the list into one bill of materials
func (s *service) Calculate(ctx context.Context, sessionID string) (*calculator.Result, error) {
	list, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	requests := make([]calculator.Request, 0, len(list.Entries))
	for _, e := range list.Entries {
		requests = append(requests, calculator.Request{Item: e.Item, Quantity: float64(e.Quantity)})
	}

	res, err := s.aggregator.Aggregate(ctx, requests)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate shopping list: %w", err)
	}
	return res, nil
}

func checkSessionID(id string) error {
	if !ValidSessionID(id) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidSession, id)
	}
	return nil
}

func clone(list *domain.ShoppingList) *domain.ShoppingList {
	entries := make([]domain.ShoppingListEntry, len(list.Entries))
	copy(entries, list.Entries)
	return &domain.ShoppingList{SessionID: list.SessionID, Entries: entries}
}
