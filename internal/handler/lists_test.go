package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/domain"
)

type MockListService struct {
	mock.Mock
}

func (m *MockListService) NewSession(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockListService) Get(ctx context.Context, sessionID string) (*domain.ShoppingList, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingList), args.Error(1)
}

func (m *MockListService) Add(ctx context.Context, sessionID, item string, quantity int) (*domain.ShoppingList, error) {
	args := m.Called(ctx, sessionID, item, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingList), args.Error(1)
}

func (m *MockListService) Remove(ctx context.Context, sessionID, item string) (*domain.ShoppingList, error) {
	args := m.Called(ctx, sessionID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShoppingList), args.Error(1)
}

func (m *MockListService) Clear(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockListService) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockListService) Calculate(ctx context.Context, sessionID string) (*calculator.Result, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calculator.Result), args.Error(1)
}

func TestListHandler_Create(t *testing.T) {
	svc := new(MockListService)
	h := NewListHandler(svc)
	svc.On("NewSession", mock.Anything).Return("abc-123", nil)

	w := httptest.NewRecorder()
	h.HandleCreate(w, httptest.NewRequest(http.MethodPost, "/api/v1/lists", nil))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"session_id":"abc-123"}`, w.Body.String())
}

func TestListHandler_AddItem(t *testing.T) {
	svc := new(MockListService)
	h := NewListHandler(svc)

	list := &domain.ShoppingList{SessionID: "s1", Entries: []domain.ShoppingListEntry{{Item: "Plank", Quantity: 3}}}
	svc.On("Add", mock.Anything, "s1", "Plank", 3).Return(list, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lists/s1/items", bytes.NewBufferString(`{"item":"Plank","quantity":3}`))
	req = withURLParams(req, map[string]string{"session": "s1"})
	w := httptest.NewRecorder()

	h.HandleAddItem(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, MsgItemAddedSuccess, resp.Message)
	assert.Equal(t, list, resp.List)
}

func TestListHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown item", err: fmt.Errorf("%w: 'Spaceship'", domain.ErrItemNotFound), wantStatus: http.StatusNotFound},
		{name: "bad session", err: fmt.Errorf("%w: %q", domain.ErrInvalidSession, "a b"), wantStatus: http.StatusBadRequest},
		{name: "bad input", err: domain.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockListService)
			h := NewListHandler(svc)
			svc.On("Add", mock.Anything, "s1", "Spaceship", 1).Return(nil, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/lists/s1/items", bytes.NewBufferString(`{"item":"Spaceship","quantity":1}`))
			req = withURLParams(req, map[string]string{"session": "s1"})
			w := httptest.NewRecorder()

			h.HandleAddItem(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestListHandler_GetMissingSession(t *testing.T) {
	svc := new(MockListService)
	h := NewListHandler(svc)
	svc.On("Get", mock.Anything, "gone").Return(nil, fmt.Errorf("%w: gone", domain.ErrSessionNotFound))

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/lists/gone", nil), map[string]string{"session": "gone"})
	w := httptest.NewRecorder()

	h.HandleGet(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListHandler_RemoveClearDelete(t *testing.T) {
	svc := new(MockListService)
	h := NewListHandler(svc)

	svc.On("Remove", mock.Anything, "s1", "Copper Ingot").Return(&domain.ShoppingList{SessionID: "s1", Entries: []domain.ShoppingListEntry{}}, nil)
	svc.On("Clear", mock.Anything, "s1").Return(nil)
	svc.On("Delete", mock.Anything, "s1").Return(nil)

	req := withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/lists/s1/items/Copper%20Ingot", nil),
		map[string]string{"session": "s1", "item": "Copper%20Ingot"})
	w := httptest.NewRecorder()
	h.HandleRemoveItem(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/lists/s1/items", nil), map[string]string{"session": "s1"})
	w = httptest.NewRecorder()
	h.HandleClear(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = withURLParams(httptest.NewRequest(http.MethodDelete, "/api/v1/lists/s1", nil), map[string]string{"session": "s1"})
	w = httptest.NewRecorder()
	h.HandleDelete(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	svc.AssertExpectations(t)
}

func TestListHandler_Calculate(t *testing.T) {
	svc := new(MockListService)
	h := NewListHandler(svc)
	svc.On("Calculate", mock.Anything, "s1").Return(&calculator.Result{
		Materials: calculator.Materials{"Wood": 8, "Stone": 1},
		Steps:     3,
	}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodPost, "/api/v1/lists/s1/calculate", nil), map[string]string{"session": "s1"})
	w := httptest.NewRecorder()

	h.HandleCalculate(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"materials": [{"name":"Stone","quantity":1},{"name":"Wood","quantity":8}],
		"warnings": [],
		"steps": 3,
		"partial": false
	}`, w.Body.String())
}

func TestListHandler_MissingPathParam(t *testing.T) {
	h := NewListHandler(new(MockListService))

	w := httptest.NewRecorder()
	h.HandleGet(w, withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/lists/", nil), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
