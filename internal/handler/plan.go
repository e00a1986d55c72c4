package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seat-allocation/internal/allocator"
	"github.com/iliyamo/exam-seat-allocation/internal/config"
	"github.com/iliyamo/exam-seat-allocation/internal/queue"
	"github.com/iliyamo/exam-seat-allocation/internal/repository"
	queue_publisher "github.com/iliyamo/exam-seat-allocation/internal/service"
	"github.com/iliyamo/exam-seat-allocation/internal/utils"
)

// PlanHandler bundles dependencies for seating plan endpoints.
type PlanHandler struct {
	Cfg      config.Config
	Halls    *repository.HallRepo
	Students *repository.StudentRepo
	Plans    *repository.PlanRepo
}

func NewPlanHandler(cfg config.Config, h *repository.HallRepo, s *repository.StudentRepo, p *repository.PlanRepo) *PlanHandler {
	return &PlanHandler{Cfg: cfg, Halls: h, Students: s, Plans: p}
}

// ----- DTOs -----

type generateReq struct {
	Mode     string `json:"mode"`      // auto | greedy | backtracking
	MaxSteps int    `json:"max_steps"` // 0 inherits SEARCH_MAX_STEPS
}

type planSeatResp struct {
	HallID    uint64 `json:"hall_id"`
	HallName  string `json:"hall_name"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	StudentNo string `json:"student_no"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	RollNo    string `json:"roll_no,omitempty"`
}

type planResp struct {
	ID        string            `json:"id"`
	Strategy  string            `json:"strategy"`
	Mode      string            `json:"mode,omitempty"`
	Seated    int               `json:"seated"`
	Unseated  int               `json:"unseated"`
	CreatedAt string            `json:"created_at,omitempty"`
	Seats     []planSeatResp    `json:"seats"`
	Colors    map[string]string `json:"colors"`
}

// parseMode maps the request mode string onto an allocator mode.
func parseMode(s string) (allocator.Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return allocator.ModeAuto, true
	case "greedy":
		return allocator.ModeGreedy, true
	case "backtracking", "exact":
		return allocator.ModeBacktracking, true
	}
	return "", false
}

// toAllocatorStudents converts roster rows to allocator input.  The
// external student number is the allocator's identifier so per-subject
// ordering matches the roster listing.
func toAllocatorStudents(rows []repository.Student) []allocator.Student {
	out := make([]allocator.Student, 0, len(rows))
	for _, s := range rows {
		out = append(out, allocator.Student{
			ID:      s.StudentNo,
			Name:    s.Name,
			Subject: s.Subject,
			Year:    s.Year,
			RollNo:  s.RollNo,
		})
	}
	return out
}

// subjectsInOrder lists subjects in roster first-seen order, which fixes
// the color legend.
func subjectsInOrder(rows []repository.Student) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range rows {
		if !seen[s.Subject] {
			seen[s.Subject] = true
			out = append(out, s.Subject)
		}
	}
	return out
}

// GenerateSingle runs the single-hall allocator for hall :id and stores
// the resulting plan.
func (h *PlanHandler) GenerateSingle(c echo.Context) error {
	ownerID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	hallID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req generateReq
	_ = c.Bind(&req) // empty body means defaults
	mode, ok := parseMode(req.Mode)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "mode must be auto, greedy or backtracking"})
	}
	maxSteps := req.MaxSteps
	if maxSteps <= 0 {
		maxSteps = h.Cfg.MaxSearchSteps
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, hallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	roster, err := h.Students.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(roster) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "roster is empty"})
	}

	seats, err := allocator.GeneratePlan(hall.SeatRows, hall.SeatCols, toAllocatorStudents(roster), allocator.Options{
		Mode:     mode,
		MaxSteps: maxSteps,
	})
	if err != nil {
		switch {
		case errors.Is(err, allocator.ErrCapacityExceeded):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "roster exceeds hall capacity"})
		case errors.Is(err, allocator.ErrSearchAborted):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "search aborted by step bound"})
		case errors.Is(err, allocator.ErrInfeasible):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no valid arrangement for this hall and roster"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "allocation failed"})
		}
	}

	var planSeats []repository.PlanSeat
	for row := 0; row < hall.SeatRows; row++ {
		for col := 0; col < hall.SeatCols; col++ {
			s := seats[allocator.Seat{Row: row, Col: col}]
			if s == nil {
				continue
			}
			planSeats = append(planSeats, repository.PlanSeat{
				HallID:    hall.ID,
				HallName:  hall.Name,
				Row:       row,
				Col:       col,
				StudentNo: s.ID,
				Name:      s.Name,
				Subject:   s.Subject,
				RollNo:    s.RollNo,
			})
		}
	}

	plan := &repository.Plan{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Strategy: "single",
		Mode:     string(mode),
		Seated:   len(planSeats),
		Unseated: 0,
	}
	if err := h.Plans.Create(ctx, plan, planSeats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save plan failed"})
	}

	h.publishGenerated(plan, 1)

	return c.JSON(http.StatusCreated, h.buildResp(plan, planSeats, subjectsInOrder(roster)))
}

// GenerateMulti distributes the roster across all active halls in fill
// order and stores the resulting plan.  The multi-hall model is
// best-effort: leftover students are reported, not an error.
func (h *PlanHandler) GenerateMulti(c echo.Context) error {
	ownerID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	halls, err := h.Halls.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(halls) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no active halls"})
	}
	roster, err := h.Students.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if len(roster) == 0 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "roster is empty"})
	}

	specs := make([]allocator.HallSpec, 0, len(halls))
	for _, hall := range halls {
		specs = append(specs, allocator.HallSpec{
			ID:   hall.ID,
			Name: hall.Name,
			Rows: hall.SeatRows,
			Cols: hall.SeatCols,
		})
	}

	result := allocator.GenerateMultiHall(specs, toAllocatorStudents(roster))

	var planSeats []repository.PlanSeat
	for _, hp := range result.Halls {
		for row := 0; row < hp.Rows; row++ {
			for col := 0; col < hp.Cols; col++ {
				s := hp.Seats[allocator.Seat{Row: row, Col: col}]
				if s == nil {
					continue
				}
				planSeats = append(planSeats, repository.PlanSeat{
					HallID:    hp.HallID,
					HallName:  hp.Name,
					Row:       row,
					Col:       col,
					StudentNo: s.ID,
					Name:      s.Name,
					Subject:   s.Subject,
					RollNo:    s.RollNo,
				})
			}
		}
	}

	plan := &repository.Plan{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Strategy: "multi",
		Mode:     "rotation",
		Seated:   len(planSeats),
		Unseated: result.Unseated,
	}
	if err := h.Plans.Create(ctx, plan, planSeats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save plan failed"})
	}

	h.publishGenerated(plan, len(result.Halls))

	return c.JSON(http.StatusCreated, h.buildResp(plan, planSeats, subjectsInOrder(roster)))
}

// Get returns a stored plan by id.
func (h *PlanHandler) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plan, seats, err := h.Plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, h.buildResp(plan, seats, seatSubjects(seats)))
}

// Latest returns the caller's most recent plan.
func (h *PlanHandler) Latest(c echo.Context) error {
	ownerID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Plans.LatestByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no plans yet"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	plan, seats, err := h.Plans.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, h.buildResp(plan, seats, seatSubjects(seats)))
}

// ExportCSV streams a stored plan as a CSV attachment.
func (h *PlanHandler) ExportCSV(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	plan, seats, err := h.Plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPlanNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "plan not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"hall", "row", "col", "student_no", "name", "subject", "roll_no"})
	for _, s := range seats {
		_ = w.Write([]string{
			s.HallName,
			fmt.Sprintf("%d", s.Row),
			fmt.Sprintf("%d", s.Col),
			s.StudentNo,
			s.Name,
			s.Subject,
			s.RollNo,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="plan-%s.csv"`, plan.ID))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// Palette returns the subject color legend for the current roster.
func (h *PlanHandler) Palette(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	roster, err := h.Students.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	subjects := subjectsInOrder(roster)
	return c.JSON(http.StatusOK, echo.Map{
		"subjects": subjects,
		"colors":   utils.SubjectColors(subjects),
	})
}

// seatSubjects recovers the subject order of a stored plan from its seat
// rows, so the legend for a reloaded plan stays stable.
func seatSubjects(seats []repository.PlanSeat) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range seats {
		if !seen[s.Subject] {
			seen[s.Subject] = true
			out = append(out, s.Subject)
		}
	}
	return out
}

func (h *PlanHandler) buildResp(plan *repository.Plan, seats []repository.PlanSeat, subjects []string) planResp {
	createdAt := ""
	if !plan.CreatedAt.IsZero() {
		createdAt = plan.CreatedAt.Format(time.RFC3339)
	}
	out := planResp{
		ID:        plan.ID,
		Strategy:  plan.Strategy,
		Mode:      plan.Mode,
		Seated:    plan.Seated,
		Unseated:  plan.Unseated,
		CreatedAt: createdAt,
		Seats:     make([]planSeatResp, 0, len(seats)),
		Colors:    utils.SubjectColors(subjects),
	}
	for _, s := range seats {
		out.Seats = append(out.Seats, planSeatResp{
			HallID:    s.HallID,
			HallName:  s.HallName,
			Row:       s.Row,
			Col:       s.Col,
			StudentNo: s.StudentNo,
			Name:      s.Name,
			Subject:   s.Subject,
			RollNo:    s.RollNo,
		})
	}
	return out
}

// publishGenerated emits the plan.generated event without blocking the
// request; broker failures only log.
func (h *PlanHandler) publishGenerated(plan *repository.Plan, halls int) {
	ev := queue.PlanGeneratedEvent{
		PlanID:      plan.ID,
		OwnerID:     plan.OwnerID,
		Strategy:    plan.Strategy,
		Mode:        plan.Mode,
		Halls:       halls,
		Seated:      plan.Seated,
		Unseated:    plan.Unseated,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishPlanGenerated(ctx, ev)
	}()
}
