package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seat-allocation/internal/repository"
)

// HallHandler bundles dependencies for examination hall endpoints.
type HallHandler struct {
	Halls *repository.HallRepo
}

func NewHallHandler(h *repository.HallRepo) *HallHandler {
	return &HallHandler{Halls: h}
}

// ----- DTOs -----

type hallReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SeatRows    int    `json:"seat_rows"`
	SeatCols    int    `json:"seat_cols"`
	FillOrder   int    `json:"fill_order"`
	IsActive    *bool  `json:"is_active"` // pointer so updates can omit it
}

type hallResp struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	SeatRows    int    `json:"seat_rows"`
	SeatCols    int    `json:"seat_cols"`
	Capacity    int    `json:"capacity"`
	FillOrder   int    `json:"fill_order"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toHallResp(h *repository.Hall) hallResp {
	return hallResp{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description.String,
		SeatRows:    h.SeatRows,
		SeatCols:    h.SeatCols,
		Capacity:    h.SeatRows * h.SeatCols,
		FillOrder:   h.FillOrder,
		IsActive:    h.IsActive,
		CreatedAt:   h.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   h.UpdatedAt.Format(time.RFC3339),
	}
}

// validateLayout rejects layouts the allocator cannot work on.
func validateLayout(rows, cols int) string {
	if rows <= 0 || cols <= 0 {
		return "seat_rows and seat_cols must be positive"
	}
	if rows*cols > 10000 {
		return "hall too large"
	}
	return ""
}

// Create registers a new examination hall.
func (h *HallHandler) Create(c echo.Context) error {
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if msg := validateLayout(req.SeatRows, req.SeatCols); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall := &repository.Hall{
		Name:      req.Name,
		SeatRows:  req.SeatRows,
		SeatCols:  req.SeatCols,
		FillOrder: req.FillOrder,
	}
	if d := strings.TrimSpace(req.Description); d != "" {
		hall.Description = sql.NullString{String: d, Valid: true}
	}
	if err := h.Halls.Create(ctx, hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create hall failed"})
	}
	return c.JSON(http.StatusCreated, toHallResp(hall))
}

// Get returns a single hall by id.
func (h *HallHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toHallResp(hall))
}

// List returns all active halls in fill order.
func (h *HallHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	halls, err := h.Halls.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]hallResp, 0, len(halls))
	for _, hall := range halls {
		out = append(out, toHallResp(hall))
	}
	return c.JSON(http.StatusOK, echo.Map{"halls": out})
}

// Update replaces a hall's attributes.  Omitted is_active keeps the
// stored value.
func (h *HallHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req hallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	if msg := validateLayout(req.SeatRows, req.SeatCols); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	hall.Name = req.Name
	hall.SeatRows = req.SeatRows
	hall.SeatCols = req.SeatCols
	hall.FillOrder = req.FillOrder
	hall.Description = sql.NullString{}
	if d := strings.TrimSpace(req.Description); d != "" {
		hall.Description = sql.NullString{String: d, Valid: true}
	}
	if req.IsActive != nil {
		hall.IsActive = *req.IsActive
	}

	if err := h.Halls.Update(ctx, hall); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update hall failed"})
	}
	return c.JSON(http.StatusOK, toHallResp(hall))
}

// Delete removes a hall.
func (h *HallHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Halls.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "hall is referenced by stored plans"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete hall failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
