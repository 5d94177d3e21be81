package handler

import (
	"context"
	"net/http"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/domain"
	"github.com/osse101/CraftCalc_Go/internal/logger"
)

// Calculator is the expansion engine as seen by the HTTP API
type Calculator interface {
	Expand(ctx context.Context, item string, quantity float64) (*calculator.Result, error)
	Aggregate(ctx context.Context, requests []calculator.Request) (*calculator.Result, error)
}

// CalculateRequest asks for the raw materials behind quantity units of item
type CalculateRequest struct {
	Item     string `json:"item" validate:"required,max=200"`
	Quantity int    `json:"quantity" validate:"min=1,max=1000000"`
}

// BatchCalculateRequest totals several requests at once
type BatchCalculateRequest struct {
	Requests []CalculateRequest `json:"requests" validate:"required,min=1,max=100,dive"`
}

// CalculationResponse is a bill of materials sorted by material name
type CalculationResponse struct {
	Item      string                  `json:"item,omitempty"`
	Quantity  int                     `json:"quantity,omitempty"`
	Materials []domain.MaterialAmount `json:"materials"`
	Warnings  []string                `json:"warnings"`
	Steps     int                     `json:"steps"`
	Partial   bool                    `json:"partial"`
}

func newCalculationResponse(res *calculator.Result) CalculationResponse {
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return CalculationResponse{
		Materials: res.Materials.Sorted(),
		Warnings:  warnings,
		Steps:     res.Steps,
		Partial:   res.Partial,
	}
}

type CalculateHandler struct {
	calc Calculator
}

func NewCalculateHandler(calc Calculator) *CalculateHandler {
	return &CalculateHandler{calc: calc}
}

// HandleCalculate expands a single (item, quantity) request
func (h *CalculateHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Calculate"); err != nil {
		return
	}

	res, err := h.calc.Expand(r.Context(), req.Item, float64(req.Quantity))
	if err != nil {
		respondServiceError(w, r, "Calculate", err)
		return
	}

	logger.FromContext(r.Context()).Info("Calculation complete",
		"item", req.Item, "quantity", req.Quantity, "materials", len(res.Materials), "steps", res.Steps)

	resp := newCalculationResponse(res)
	resp.Item = req.Item
	resp.Quantity = req.Quantity
	respondJSON(w, http.StatusOK, resp)
}

// HandleCalculateBatch aggregates several requests, failing on the first bad one
func (h *CalculateHandler) HandleCalculateBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchCalculateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Batch calculate"); err != nil {
		return
	}

	requests := make([]calculator.Request, 0, len(req.Requests))
	for _, cr := range req.Requests {
		requests = append(requests, calculator.Request{Item: cr.Item, Quantity: float64(cr.Quantity)})
	}

	res, err := h.calc.Aggregate(r.Context(), requests)
	if err != nil {
		respondServiceError(w, r, "Batch calculate", err)
		return
	}

	respondJSON(w, http.StatusOK, newCalculationResponse(res))
}
