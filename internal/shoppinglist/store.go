package shoppinglist

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CraftCalc_Go/internal/domain"
	"github.com/osse101/CraftCalc_Go/internal/metrics"
)

const (
	DefaultCapacity = 10000
	DefaultTTL      = 24 * time.Hour
)

// Store holds shopping lists by session ID.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(sessionID string) (*domain.ShoppingList, bool)
	Put(list *domain.ShoppingList)
	Delete(sessionID string)
	Len() int
}

// memoryStore keeps lists in an expirable LRU; idle sessions expire after ttl
// and the least recently used ones are evicted once capacity is reached.
type memoryStore struct {
	lru *expirable.LRU[string, *domain.ShoppingList]
}

// NewMemoryStore creates an in-memory store. Non-positive arguments fall back to
// DefaultCapacity and DefaultTTL.
func NewMemoryStore(capacity int, ttl time.Duration) Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	// The eviction callback runs under the LRU's lock and must not call back into it.
	onEvict := func(string, *domain.ShoppingList) {
		metrics.ShoppingListSessions.Dec()
	}
	return &memoryStore{
		lru: expirable.NewLRU[string, *domain.ShoppingList](capacity, onEvict, ttl),
	}
}

func (s *memoryStore) Get(sessionID string) (*domain.ShoppingList, bool) {
	return s.lru.Get(sessionID)
}

func (s *memoryStore) Put(list *domain.ShoppingList) {
	if !s.lru.Contains(list.SessionID) {
		metrics.ShoppingListSessions.Inc()
	}
	s.lru.Add(list.SessionID, list)
}

func (s *memoryStore) Delete(sessionID string) {
	s.lru.Remove(sessionID)
}

func (s *memoryStore) Len() int {
	return s.lru.Len()
}
