package shoppinglist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/catalog"
	"github.com/osse101/CraftCalc_Go/internal/concurrency"
	"github.com/osse101/CraftCalc_Go/internal/domain"
)

type MockAggregator struct {
	mock.Mock
}

func (m *MockAggregator) Aggregate(ctx context.Context, requests []calculator.Request) (*calculator.Result, error) {
	args := m.Called(ctx, requests)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calculator.Result), args.Error(1)
}

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]domain.Recipe{
		"Plank": {Inputs: map[string]float64{"Wood": 2}},
		"Table": {Inputs: map[string]float64{"Plank": 4, "Stone": 1}},
	}, []string{"Wood", "Stone"})
}

func newTestService(agg Aggregator) Service {
	return NewService(NewMemoryStore(100, time.Hour), testCatalog(), agg, concurrency.NewLockManager())
}

func TestAdd_MergesAndKeepsOrder(t *testing.T) {
	svc := newTestService(&MockAggregator{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "Table", 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "Stone", 2)
	require.NoError(t, err)
	list, err := svc.Add(ctx, "s1", "Table", 3)
	require.NoError(t, err)

	assert.Equal(t, []domain.ShoppingListEntry{
		{Item: "Table", Quantity: 4},
		{Item: "Stone", Quantity: 2},
	}, list.Entries)
}

func TestAdd_Validation(t *testing.T) {
	svc := newTestService(&MockAggregator{})
	ctx := context.Background()

	tests := []struct {
		name     string
		session  string
		item     string
		quantity int
		wantErr  error
	}{
		{name: "zero quantity", session: "s1", item: "Plank", quantity: 0, wantErr: domain.ErrInvalidInput},
		{name: "negative quantity", session: "s1", item: "Plank", quantity: -2, wantErr: domain.ErrInvalidInput},
		{name: "empty item", session: "s1", item: "", quantity: 1, wantErr: domain.ErrInvalidInput},
		{name: "unknown item", session: "s1", item: "Spaceship", quantity: 1, wantErr: domain.ErrItemNotFound},
		{name: "bad session", session: "has spaces", item: "Plank", quantity: 1, wantErr: domain.ErrInvalidSession},
		{name: "empty session", session: "", item: "Plank", quantity: 1, wantErr: domain.ErrInvalidSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.session, tt.item, tt.quantity)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	svc := newTestService(&MockAggregator{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "discord:42", "Plank", 1)
	require.NoError(t, err)

	list, err := svc.Get(ctx, "discord:42")
	require.NoError(t, err)
	list.Entries[0].Quantity = 100

	again, err := svc.Get(ctx, "discord:42")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Entries[0].Quantity)
}

func TestGet_UnknownSession(t *testing.T) {
	svc := newTestService(&MockAggregator{})

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestNewSession(t *testing.T) {
	svc := newTestService(&MockAggregator{})
	ctx := context.Background()

	id, err := svc.NewSession(ctx)
	require.NoError(t, err)
	assert.True(t, ValidSessionID(id))

	list, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
}

func TestRemove(t *testing.T) {
	svc := newTestService(&MockAggregator{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "Plank", 1)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "Table", 1)
	require.NoError(t, err)

	list, err := svc.Remove(ctx, "s1", "Plank")
	require.NoError(t, err)
	assert.Equal(t, []domain.ShoppingListEntry{{Item: "Table", Quantity: 1}}, list.Entries)

	_, err = svc.Remove(ctx, "s1", "Plank")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = svc.Remove(ctx, "other", "Plank")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestClearAndDelete(t *testing.T) {
	svc := newTestService(&MockAggregator{})
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "Plank", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "s1"))
	list, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, list.Entries)

	require.NoError(t, svc.Delete(ctx, "s1"))
	_, err = svc.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	assert.ErrorIs(t, svc.Clear(ctx, "s1"), domain.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "s1"), domain.ErrSessionNotFound)
}

func TestCalculate_PassesEntriesInOrder(t *testing.T) {
	agg := &MockAggregator{}
	svc := newTestService(agg)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "Plank", 4)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "Stone", 1)
	require.NoError(t, err)

	want := &calculator.Result{Materials: calculator.Materials{"Wood": 8, "Stone": 1}}
	agg.On("Aggregate", ctx, []calculator.Request{
		{Item: "Plank", Quantity: 4},
		{Item: "Stone", Quantity: 1},
	}).Return(want, nil)

	got, err := svc.Calculate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	agg.AssertExpectations(t)
}

func TestCalculate_WrapsAggregatorError(t *testing.T) {
	agg := &MockAggregator{}
	svc := newTestService(agg)
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "Plank", 1)
	require.NoError(t, err)

	cause := &calculator.RequestError{Index: 0, Item: "Plank", Err: &calculator.CycleError{Path: []string{"Plank", "Plank"}}}
	agg.On("Aggregate", ctx, mock.Anything).Return(nil, cause)

	_, err = svc.Calculate(ctx, "s1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCircularDependency)

	var reqErr *calculator.RequestError
	assert.True(t, errors.As(err, &reqErr))
}

func TestCalculate_WithEngine(t *testing.T) {
	cat := testCatalog()
	engine := calculator.New(cat, calculator.DefaultOptions())
	svc := NewService(NewMemoryStore(10, time.Minute), cat, engine, concurrency.NewLockManager())
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "Plank", 4)
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "Stone", 1)
	require.NoError(t, err)

	res, err := svc.Calculate(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, calculator.Materials{"Wood": 8, "Stone": 1}, res.Materials)
}

func TestAdd_Concurrent(t *testing.T) {
	svc := newTestService(&MockAggregator{})
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, "shared", "Plank", 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := svc.Get(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, 20, list.Entries[0].Quantity)
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	store := NewMemoryStore(2, time.Hour)

	store.Put(&domain.ShoppingList{SessionID: "a"})
	store.Put(&domain.ShoppingList{SessionID: "b"})
	store.Put(&domain.ShoppingList{SessionID: "c"})

	_, ok := store.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 2, store.Len())
}

func TestValidSessionID(t *testing.T) {
	assert.True(t, ValidSessionID("discord:123456789"))
	assert.True(t, ValidSessionID("0b7e4c8e-3c1f-4c2a-9d1e-5b7f2a3c4d5e"))
	assert.False(t, ValidSessionID(""))
	assert.False(t, ValidSessionID("a/b"))
	assert.False(t, ValidSessionID(string(make([]byte, 65))))
}
