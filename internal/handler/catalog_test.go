package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CraftCalc_Go/internal/catalog"
	"github.com/osse101/CraftCalc_Go/internal/domain"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(map[string]domain.Recipe{
		"Plank":        {Inputs: map[string]float64{"Wood": 2}, Description: "Sawn wood"},
		"Table":        {Inputs: map[string]float64{"Plank": 4, "Stone": 1}},
		"Copper Ingot": {OutputQty: 2, Inputs: map[string]float64{"Copper Ore": 3}},
	}, []string{"Wood", "Stone", "Copper Ore"})
}

// withURLParams attaches chi route params the way the router would
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleListItems(t *testing.T) {
	h := NewCatalogHandler(testCatalog())

	tests := []struct {
		name   string
		url    string
		status int
		want   []string
	}{
		{name: "all sorted", url: "/api/v1/items", status: http.StatusOK, want: []string{"Copper Ingot", "Plank", "Table"}},
		{name: "case-insensitive query", url: "/api/v1/items?q=PLA", status: http.StatusOK, want: []string{"Plank"}},
		{name: "limit", url: "/api/v1/items?limit=2", status: http.StatusOK, want: []string{"Copper Ingot", "Plank"}},
		{name: "no match", url: "/api/v1/items?q=zzz", status: http.StatusOK, want: []string{}},
		{name: "bad limit", url: "/api/v1/items?limit=abc", status: http.StatusBadRequest},
		{name: "zero limit", url: "/api/v1/items?limit=0", status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.HandleListItems(w, httptest.NewRequest(http.MethodGet, tt.url, nil))

			require.Equal(t, tt.status, w.Code)
			if tt.status != http.StatusOK {
				return
			}

			var resp ItemsResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			names := []string{}
			for _, item := range resp.Items {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestHandleGetItem(t *testing.T) {
	h := NewCatalogHandler(testCatalog())

	t.Run("recipe", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/items/Table", nil), map[string]string{"name": "Table"})
		w := httptest.NewRecorder()
		h.HandleGetItem(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp ItemDetailResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.False(t, resp.Raw)
		assert.Equal(t, 1.0, resp.OutputQty)
		assert.Equal(t, []IngredientResponse{
			{Name: "Plank", Quantity: 4, Raw: false},
			{Name: "Stone", Quantity: 1, Raw: true},
		}, resp.Inputs)
	})

	t.Run("escaped name", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/items/Copper%20Ingot", nil), map[string]string{"name": "Copper%20Ingot"})
		w := httptest.NewRecorder()
		h.HandleGetItem(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"output_qty":2`)
	})

	t.Run("raw material", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/items/Wood", nil), map[string]string{"name": "Wood"})
		w := httptest.NewRecorder()
		h.HandleGetItem(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"name":"Wood","raw":true}`, w.Body.String())
	})

	t.Run("unknown", func(t *testing.T) {
		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/items/Nope", nil), map[string]string{"name": "Nope"})
		w := httptest.NewRecorder()
		h.HandleGetItem(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleGetRawMaterials(t *testing.T) {
	h := NewCatalogHandler(testCatalog())
	w := httptest.NewRecorder()

	h.HandleGetRawMaterials(w, httptest.NewRequest(http.MethodGet, "/api/v1/raw-materials", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"raw_materials":["Copper Ore","Stone","Wood"]}`, w.Body.String())
}

func TestHealthAndVersion(t *testing.T) {
	cat := testCatalog()

	w := httptest.NewRecorder()
	HandleHealthz()(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	HandleReadyz(cat)(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	HandleReadyz(catalog.New(nil, nil))(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	HandleVersion(cat)(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&info))
	assert.Equal(t, 3, info.Recipes)
	assert.NotEmpty(t, info.GoVersion)
}
