package repository // repository defines data access for stored seating plans

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions
	"time"
)

// Plan is the header row of a stored seating plan.  Plans are
// identified by a UUID so exported files and queue events can reference
// them without leaking auto-increment counters.
type Plan struct {
	ID        string // UUID
	OwnerID   uint64 // user who generated the plan
	Strategy  string // single | multi
	Mode      string // auto | greedy | backtracking (single-hall only)
	Seated    int    // number of students bound to seats
	Unseated  int    // students left over (multi-hall only, 0 otherwise)
	CreatedAt time.Time
}

// PlanSeat is one seat binding inside a stored plan.  Empty seats are
// not stored; absence of a (hall,row,col) row means the seat stayed
// free.
type PlanSeat struct {
	PlanID    string
	HallID    uint64
	HallName  string
	Row       int
	Col       int
	StudentNo string
	Name      string
	Subject   string
	RollNo    string
}

// ErrPlanNotFound is returned when a plan lookup yields no rows.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRepo persists generated seating plans and their seat bindings.
type PlanRepo struct {
	db *sql.DB
}

// NewPlanRepo constructs a PlanRepo with the given DB handle.
func NewPlanRepo(db *sql.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

// Create stores a plan header and all its seat bindings in one
// transaction.
func (r *PlanRepo) Create(ctx context.Context, p *Plan, seats []PlanSeat) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	const qPlan = `INSERT INTO plans (id, owner_id, strategy, mode, seated, unseated)
	               VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, qPlan, p.ID, p.OwnerID, p.Strategy, p.Mode, p.Seated, p.Unseated); err != nil {
		return err
	}

	if len(seats) > 0 {
		query := `INSERT INTO plan_seats (plan_id, hall_id, hall_name, seat_row, seat_col, student_no, name, subject, roll_no) VALUES `
		args := make([]interface{}, 0, len(seats)*9)
		for i, s := range seats {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
			args = append(args, p.ID, s.HallID, s.HallName, s.Row, s.Col, s.StudentNo, s.Name, s.Subject, s.RollNo)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetByID loads a plan header together with its seat bindings ordered
// by hall, row and column.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*Plan, []PlanSeat, error) {
	const qPlan = `SELECT id, owner_id, strategy, mode, seated, unseated, created_at
	               FROM plans WHERE id = ?`
	var p Plan
	err := r.db.QueryRowContext(ctx, qPlan, id).
		Scan(&p.ID, &p.OwnerID, &p.Strategy, &p.Mode, &p.Seated, &p.Unseated, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}

	const qSeats = `SELECT plan_id, hall_id, hall_name, seat_row, seat_col, student_no, name, subject, roll_no
	                FROM plan_seats
	                WHERE plan_id = ?
	                ORDER BY hall_id, seat_row, seat_col`
	rows, err := r.db.QueryContext(ctx, qSeats, id)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var seats []PlanSeat
	for rows.Next() {
		var s PlanSeat
		if err := rows.Scan(&s.PlanID, &s.HallID, &s.HallName, &s.Row, &s.Col, &s.StudentNo, &s.Name, &s.Subject, &s.RollNo); err != nil {
			return nil, nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return &p, seats, nil
}

// LatestByOwner returns the most recently created plan id for a user,
// or ErrPlanNotFound when the user never generated one.
func (r *PlanRepo) LatestByOwner(ctx context.Context, ownerID uint64) (string, error) {
	const q = `SELECT id FROM plans WHERE owner_id = ? ORDER BY created_at DESC, id LIMIT 1`
	var id string
	err := r.db.QueryRowContext(ctx, q, ownerID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrPlanNotFound
		}
		return "", err
	}
	return id, nil
}
