package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/exam-seat-allocation/internal/repository"
)

// RosterHandler bundles dependencies for roster import and listing.
type RosterHandler struct {
	Students *repository.StudentRepo
}

func NewRosterHandler(s *repository.StudentRepo) *RosterHandler {
	return &RosterHandler{Students: s}
}

type studentResp struct {
	ID        uint64 `json:"id"`
	StudentNo string `json:"student_no"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Year      string `json:"year"`
	RollNo    string `json:"roll_no,omitempty"`
}

// Upload replaces the roster from a CSV file sent as multipart form
// field "file".  Expected columns: student_no, name, subject, year,
// roll_no.  Year and roll_no are optional; rows missing student_no,
// name or subject are skipped and counted.  A leading header row is
// detected and ignored.
func (h *RosterHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "multipart field 'file' required"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot read upload"})
	}
	defer src.Close()

	r := csv.NewReader(src)
	r.FieldsPerRecord = -1 // rows may omit trailing columns
	r.TrimLeadingSpace = true

	var (
		students []repository.Student
		skipped  int
		first    = true
	)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "malformed csv: " + err.Error()})
		}
		if first {
			first = false
			if isHeaderRow(rec) {
				continue
			}
		}
		s, ok := parseStudentRow(rec)
		if !ok {
			skipped++
			continue
		}
		students = append(students, s)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	if err := h.Students.ReplaceAll(ctx, students); err != nil {
		if errors.Is(err, repository.ErrEmptyRoster) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "roster contains no valid students"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "import failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"imported": len(students),
		"skipped":  skipped,
	})
}

// isHeaderRow reports whether a first CSV row looks like column names
// rather than data.
func isHeaderRow(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(rec[0]))
	return first == "id" || first == "student_no" || first == "student no" || first == "studentno"
}

// parseStudentRow converts one CSV record into a Student.  Rows without
// student_no, name or subject are unusable for allocation.
func parseStudentRow(rec []string) (repository.Student, bool) {
	get := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	s := repository.Student{
		StudentNo: get(0),
		Name:      get(1),
		Subject:   get(2),
		Year:      get(3),
		RollNo:    get(4),
	}
	if s.StudentNo == "" || s.Name == "" || s.Subject == "" {
		return repository.Student{}, false
	}
	if s.Year == "" {
		s.Year = "1"
	}
	return s, true
}

// List returns the stored roster together with per-subject counts.
func (h *RosterHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	all, err := h.Students.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	counts, err := h.Students.CountBySubject(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	out := make([]studentResp, 0, len(all))
	for _, s := range all {
		out = append(out, studentResp{
			ID:        s.ID,
			StudentNo: s.StudentNo,
			Name:      s.Name,
			Subject:   s.Subject,
			Year:      s.Year,
			RollNo:    s.RollNo,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"students": out,
		"subjects": counts,
		"total":    len(out),
	})
}
