package repository // repository defines data access for the student roster

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel definitions
	"time"
)

// Student is one roster row.  StudentNo is the externally supplied
// identifier (e.g. S0001) and is unique per roster; the allocator orders
// per-subject pools by it, so it must never change after import.
type Student struct {
	ID        uint64 // primary key
	StudentNo string // external identifier, unique
	Name      string // display name
	Subject   string // subject label
	Year      string // admission year ("1" when the upload omits it)
	RollNo    string // roll number; empty when the upload omits it
	CreatedAt time.Time
}

// ErrEmptyRoster is returned when an import carries no usable rows.
var ErrEmptyRoster = errors.New("roster contains no valid students")

// StudentRepo provides methods to work with the roster in the database.
type StudentRepo struct {
	db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the given DB handle.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// ReplaceAll swaps the entire roster inside one transaction: the old
// rows go away and the new upload takes their place.  A roster upload
// is an all-or-nothing operation; a failed import leaves the previous
// roster intact.
func (r *StudentRepo) ReplaceAll(ctx context.Context, students []Student) error {
	if len(students) == 0 {
		return ErrEmptyRoster
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM students`); err != nil {
		return err
	}

	query := `INSERT INTO students (student_no, name, subject, year, roll_no) VALUES `
	args := make([]interface{}, 0, len(students)*5)
	for i, s := range students {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, s.StudentNo, s.Name, s.Subject, s.Year, s.RollNo)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return tx.Commit()
}

// ListAll returns the full roster ordered by student_no so downstream
// consumers see the same deterministic order the allocator uses.
func (r *StudentRepo) ListAll(ctx context.Context) ([]Student, error) {
	const q = `SELECT id, student_no, name, subject, year, roll_no, created_at
	           FROM students
	           ORDER BY student_no`
	return r.queryStudents(ctx, q)
}

// ListBySubject returns roster rows for one subject ordered by
// student_no.
func (r *StudentRepo) ListBySubject(ctx context.Context, subject string) ([]Student, error) {
	const q = `SELECT id, student_no, name, subject, year, roll_no, created_at
	           FROM students
	           WHERE subject = ?
	           ORDER BY student_no`
	return r.queryStudents(ctx, q, subject)
}

// CountBySubject returns per-subject student counts, largest first.
func (r *StudentRepo) CountBySubject(ctx context.Context) (map[string]int, error) {
	const q = `SELECT subject, COUNT(*) FROM students GROUP BY subject`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var subject string
		var n int
		if err := rows.Scan(&subject, &n); err != nil {
			return nil, err
		}
		counts[subject] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *StudentRepo) queryStudents(ctx context.Context, q string, args ...interface{}) ([]Student, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Student
	for rows.Next() {
		var s Student
		if err := rows.Scan(&s.ID, &s.StudentNo, &s.Name, &s.Subject, &s.Year, &s.RollNo, &s.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
