package allocator

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// HallSpec describes one hall in a multi-hall allocation request.
// Halls are filled in slice order.
type HallSpec struct {
	ID   uint64 // database identifier, echoed back in the plan
	Name string // display name, e.g. Hall-1
	Rows int
	Cols int
}

// HallPlan is the outcome for a single hall: the seat bindings plus a
// filled/capacity summary.
type HallPlan struct {
	HallID   uint64
	Name     string
	Rows     int
	Cols     int
	Capacity int
	Filled   int
	Seats    map[Seat]*Student
}

// MultiHallResult is the outcome of a sequential multi-hall run.
// Unseated counts students left over once every hall is full; the
// multi-hall model is best-effort and never fails outright.
type MultiHallResult struct {
	Halls    []HallPlan
	Unseated int
}

// GenerateMultiHall spreads a roster across several halls filled in
// order.  The constraint model is deliberately weaker than the
// single-hall solver: a subject may not appear in two vertically
// adjacent rows of the same hall, and nothing else.  The two models are
// separate strategies on purpose; this one is round-robin rotation, not
// search, and is not an approximation of the exact solver.
//
// Subjects rotate through a queue ordered initially by descending
// student count (ties keep roster first-seen order).  Each row skips
// subjects used in the row directly above; a full walk of the rotation
// without a single placement abandons the row.  Exhausted subjects drop
// out of the rotation permanently.  Students who do not fit in any hall
// are reported through the Unseated count.
//
// Students missing a roll number receive a synthetic one (subject
// abbreviation + year + sequence) assigned in the same per-subject
// identifier order used for placement, so roll numbers and seat order
// stay consistent.  The input slice is never mutated; bindings point at
// an internal copy.
func GenerateMultiHall(halls []HallSpec, students []Student) MultiHallResult {
	roster := append([]Student(nil), students...)
	pools := buildPools(roster)
	demand := DemandFromStudents(roster)

	for _, subj := range demand.Subjects() {
		for seq, st := range pools[subj] {
			if st.RollNo == "" {
				year := st.Year
				if year == "" {
					year = "1"
				}
				st.RollNo = fmt.Sprintf("%s%s-%03d", subjectAbbrev(subj), year, seq+1)
			}
		}
	}

	rotation := append([]string(nil), demand.Subjects()...)
	sort.SliceStable(rotation, func(i, j int) bool {
		return demand.Count(rotation[i]) > demand.Count(rotation[j])
	})

	result := MultiHallResult{Halls: make([]HallPlan, 0, len(halls))}
	for _, hall := range halls {
		plan := HallPlan{
			HallID:   hall.ID,
			Name:     hall.Name,
			Rows:     hall.Rows,
			Cols:     hall.Cols,
			Capacity: hall.Rows * hall.Cols,
			Seats:    make(map[Seat]*Student),
		}
		prevRow := map[string]bool{}
		for r := 0; r < hall.Rows; r++ {
			curRow := map[string]bool{}
			col := 0
			skips := 0
			for col < hall.Cols && len(rotation) > 0 && skips < len(rotation) {
				subj := rotation[0]
				rotation = rotation[1:]
				if len(pools[subj]) == 0 {
					// exhausted: drop permanently, do not re-append
					continue
				}
				if prevRow[subj] {
					rotation = append(rotation, subj)
					skips++
					continue
				}
				st := pools[subj][0]
				pools[subj] = pools[subj][1:]
				plan.Seats[Seat{Row: r, Col: col}] = st
				curRow[subj] = true
				col++
				plan.Filled++
				skips = 0
				if len(pools[subj]) > 0 {
					rotation = append(rotation, subj)
				}
			}
			prevRow = curRow
		}
		result.Halls = append(result.Halls, plan)
	}

	for _, subj := range demand.Subjects() {
		result.Unseated += len(pools[subj])
	}
	return result
}

// subjectAbbrev derives a short code from a subject label: initials of
// up to three words, or the first three letters of a single word.
// "E&C Engineering" becomes "ECE", "Commerce" becomes "COM".
func subjectAbbrev(subject string) string {
	var words []string
	var cur strings.Builder
	for _, r := range subject {
		if unicode.IsLetter(r) {
			cur.WriteRune(unicode.ToUpper(r))
			continue
		}
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	switch {
	case len(words) == 0:
		return "SUB"
	case len(words) == 1:
		w := words[0]
		if len(w) > 3 {
			w = w[:3]
		}
		return w
	default:
		var b strings.Builder
		for i, w := range words {
			if i == 3 {
				break
			}
			b.WriteByte(w[0])
		}
		return b.String()
	}
}
