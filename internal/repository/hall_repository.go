package repository // repository holds data access logic for domain entities

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions
	"strings"
	"time"
)

// Hall represents an examination hall.  SeatRows and SeatCols describe
// the rectangular seat layout the allocator works on; FillOrder fixes
// the sequence in which the multi-hall allocator fills halls.
type Hall struct {
	ID          uint64         // ID is the primary key of the hall
	Name        string         // Name is a human readable label, e.g. Hall-1
	Description sql.NullString // Description is optional text about the hall
	SeatRows    int            // SeatRows is the number of seating rows
	SeatCols    int            // SeatCols is the number of seats per row
	FillOrder   int            // FillOrder positions the hall in the multi-hall sequence
	IsActive    bool           // IsActive flag indicates if the hall is currently in use
	CreatedAt   time.Time      // CreatedAt stores creation timestamp
	UpdatedAt   time.Time      // UpdatedAt stores last update timestamp
}

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("hall not found")

// HallRepo provides methods to create and retrieve halls.  It embeds a
// database handle to perform queries and commands.
type HallRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

// Create inserts a new hall.  Name, SeatRows, SeatCols and FillOrder
// must be set.  After insert the record is read back so timestamps and
// the active flag are populated.
func (r *HallRepo) Create(ctx context.Context, h *Hall) error {
	const qInsert = `INSERT INTO halls (name, description, seat_rows, seat_cols, fill_order)
	                 VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert, h.Name, h.Description, h.SeatRows, h.SeatCols, h.FillOrder)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	const qSelect = `SELECT id, name, description, seat_rows, seat_cols, fill_order, is_active, created_at, updated_at
	                 FROM halls WHERE id = ?`
	return r.db.QueryRowContext(ctx, qSelect, h.ID).
		Scan(&h.ID, &h.Name, &h.Description, &h.SeatRows, &h.SeatCols, &h.FillOrder, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
}

// GetByID retrieves a hall by its ID.  It returns ErrHallNotFound when
// no row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*Hall, error) {
	const q = `SELECT id, name, description, seat_rows, seat_cols, fill_order, is_active, created_at, updated_at
	           FROM halls WHERE id = ?`
	var h Hall
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&h.ID, &h.Name, &h.Description, &h.SeatRows, &h.SeatCols, &h.FillOrder, &h.IsActive, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListActive returns all active halls in fill order.  The multi-hall
// allocator depends on this ordering: halls are filled sequentially and
// overflow rolls forward to the next hall in the list.
func (r *HallRepo) ListActive(ctx context.Context) ([]*Hall, error) {
	const q = `SELECT id, name, description, seat_rows, seat_cols, fill_order, is_active, created_at, updated_at
	           FROM halls
	           WHERE is_active = 1
	           ORDER BY fill_order, id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Hall
	for rows.Next() {
		h := new(Hall)
		if err := rows.Scan(&h.ID, &h.Name, &h.Description, &h.SeatRows, &h.SeatCols, &h.FillOrder, &h.IsActive, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update changes name, description, layout, fill order and active flag.
// Returns sql.ErrNoRows when the hall does not exist.
func (r *HallRepo) Update(ctx context.Context, h *Hall) error {
	const q = `UPDATE halls
	           SET name = ?, description = ?, seat_rows = ?, seat_cols = ?, fill_order = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		h.Name, h.Description, h.SeatRows, h.SeatCols, h.FillOrder, h.IsActive, h.ID,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a hall.  Returns sql.ErrNoRows when nothing matched
// and ErrConflict when stored plan seats still reference the hall.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM halls WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		// MySQL 1451: row is referenced by a foreign key
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
