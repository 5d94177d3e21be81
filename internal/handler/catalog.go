package handler

import (
	"net/http"
	"sort"

	"github.com/osse101/CraftCalc_Go/internal/domain"
)

// CatalogReader is the read side of the recipe catalog used by the HTTP API
type CatalogReader interface {
	Search(query string, limit int) []domain.ItemSummary
	Recipe(name string) (domain.Recipe, bool)
	IsRaw(name string) bool
	RawMaterials() []string
}

// IngredientResponse is one input line of a recipe
type IngredientResponse struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Raw      bool    `json:"raw"`
}

// ItemDetailResponse describes one item. Raw materials have no recipe fields.
type ItemDetailResponse struct {
	Name        string               `json:"name"`
	Raw         bool                 `json:"raw"`
	OutputQty   float64              `json:"output_qty,omitempty"`
	Inputs      []IngredientResponse `json:"inputs,omitempty"`
	Description string               `json:"description,omitempty"`
	ImagePath   string               `json:"image_path,omitempty"`
}

// ItemsResponse is the item listing payload
type ItemsResponse struct {
	Items []domain.ItemSummary `json:"items"`
}

// RawMaterialsResponse is the raw material listing payload
type RawMaterialsResponse struct {
	RawMaterials []string `json:"raw_materials"`
}

type CatalogHandler struct {
	catalog CatalogReader
}

func NewCatalogHandler(catalog CatalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// HandleListItems returns craftable items filtered by ?q= and capped by ?limit=
func (h *CatalogHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
		return
	}

	items := h.catalog.Search(r.URL.Query().Get("q"), limit)
	if items == nil {
		items = []domain.ItemSummary{}
	}
	respondJSON(w, http.StatusOK, ItemsResponse{Items: items})
}

// HandleGetItem returns the recipe of one item, or marks it raw
func (h *CatalogHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	name, ok := GetPathParam(r, w, "name")
	if !ok {
		return
	}

	if h.catalog.IsRaw(name) {
		respondJSON(w, http.StatusOK, ItemDetailResponse{Name: name, Raw: true})
		return
	}

	recipe, found := h.catalog.Recipe(name)
	if !found {
		respondError(w, http.StatusNotFound, ErrMsgItemNotFound)
		return
	}

	inputs := make([]IngredientResponse, 0, len(recipe.Inputs))
	for ing, qty := range recipe.Inputs {
		inputs = append(inputs, IngredientResponse{Name: ing, Quantity: qty, Raw: h.catalog.IsRaw(ing)})
	}
	sort.Slice(inputs, func(i, j int) bool { return inputs[i].Name < inputs[j].Name })

	respondJSON(w, http.StatusOK, ItemDetailResponse{
		Name:        recipe.Name,
		OutputQty:   recipe.OutputQty,
		Inputs:      inputs,
		Description: recipe.Description,
		ImagePath:   recipe.ImagePath,
	})
}

// HandleGetRawMaterials lists raw material names in sorted order
func (h *CatalogHandler) HandleGetRawMaterials(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, RawMaterialsResponse{RawMaterials: h.catalog.RawMaterials()})
}
