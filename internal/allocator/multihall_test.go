package allocator

import (
	"strings"
	"testing"
)

// checkRowConstraint verifies the multi-hall model's only guarantee: a
// subject never appears in two vertically adjacent rows of a hall.
func checkRowConstraint(t *testing.T, plan HallPlan) {
	t.Helper()
	for r := 0; r+1 < plan.Rows; r++ {
		rowSubjects := map[string]bool{}
		for c := 0; c < plan.Cols; c++ {
			if st := plan.Seats[Seat{Row: r, Col: c}]; st != nil {
				rowSubjects[st.Subject] = true
			}
		}
		for c := 0; c < plan.Cols; c++ {
			if st := plan.Seats[Seat{Row: r + 1, Col: c}]; st != nil && rowSubjects[st.Subject] {
				t.Fatalf("%s: subject %q in rows %d and %d", plan.Name, st.Subject, r, r+1)
			}
		}
	}
}

func TestGenerateMultiHallTwoHalls(t *testing.T) {
	halls := []HallSpec{
		{ID: 1, Name: "Hall-1", Rows: 2, Cols: 2},
		{ID: 2, Name: "Hall-2", Rows: 2, Cols: 2},
	}
	students := roster("A", 3, "B", 2)

	res := GenerateMultiHall(halls, students)

	if len(res.Halls) != 2 {
		t.Fatalf("halls = %d, want 2", len(res.Halls))
	}
	for _, plan := range res.Halls {
		checkRowConstraint(t, plan)
		if plan.Capacity != 4 {
			t.Fatalf("%s capacity = %d, want 4", plan.Name, plan.Capacity)
		}
	}

	// With only two subjects every second row must stay empty, so each
	// hall seats one full first row and the fifth student has nowhere
	// to go.
	totalSeated := res.Halls[0].Filled + res.Halls[1].Filled
	if totalSeated+res.Unseated != len(students) {
		t.Fatalf("seated %d + unseated %d != roster %d", totalSeated, res.Unseated, len(students))
	}
	if res.Unseated != 1 {
		t.Fatalf("unseated = %d, want 1", res.Unseated)
	}
}

func TestGenerateMultiHallCarriesOverflowForward(t *testing.T) {
	halls := []HallSpec{
		{ID: 1, Name: "Hall-1", Rows: 1, Cols: 2},
		{ID: 2, Name: "Hall-2", Rows: 1, Cols: 4},
	}
	students := roster("A", 2, "B", 2, "C", 2)

	res := GenerateMultiHall(halls, students)

	total := 0
	for _, plan := range res.Halls {
		checkRowConstraint(t, plan)
		total += plan.Filled
	}
	if total != 6 || res.Unseated != 0 {
		t.Fatalf("seated %d unseated %d, want 6 and 0", total, res.Unseated)
	}
	if res.Halls[0].Filled != 2 {
		t.Fatalf("first hall filled = %d, want 2", res.Halls[0].Filled)
	}
}

func TestGenerateMultiHallRollNumbers(t *testing.T) {
	halls := []HallSpec{{ID: 1, Name: "Hall-1", Rows: 1, Cols: 4}}
	students := []Student{
		{ID: "S002", Subject: "Computer Science", Year: "25"},
		{ID: "S001", Subject: "Computer Science", Year: "25"},
		{ID: "S003", Subject: "Mathematics", Year: "25", RollNo: "keep-me"},
	}

	res := GenerateMultiHall(halls, students)

	byID := map[string]*Student{}
	for _, plan := range res.Halls {
		for _, st := range plan.Seats {
			if st != nil {
				byID[st.ID] = st
			}
		}
	}
	if len(byID) != 3 {
		t.Fatalf("seated %d students, want 3", len(byID))
	}

	// Sequence numbers follow per-subject identifier order, so S001
	// comes before S002 even though the roster lists it second.
	if got := byID["S001"].RollNo; got != "CS25-001" {
		t.Fatalf("S001 roll = %q, want CS25-001", got)
	}
	if got := byID["S002"].RollNo; got != "CS25-002" {
		t.Fatalf("S002 roll = %q, want CS25-002", got)
	}
	if got := byID["S003"].RollNo; got != "keep-me" {
		t.Fatalf("S003 roll = %q, want unchanged", got)
	}

	// Input slice must stay untouched.
	for _, st := range students[:2] {
		if st.RollNo != "" {
			t.Fatalf("input roster mutated: %+v", st)
		}
	}
}

func TestSubjectAbbrev(t *testing.T) {
	cases := map[string]string{
		"Computer Science": "CS",
		"Commerce":         "COM",
		"E&C Engineering":  "ECE",
		"Cyber Security":   "CS",
		"":                 "SUB",
	}
	for in, want := range cases {
		if got := subjectAbbrev(in); got != want {
			t.Errorf("subjectAbbrev(%q) = %q, want %q", in, got, want)
		}
	}
	if got := subjectAbbrev("Management (MBA)"); !strings.HasPrefix(got, "M") {
		t.Errorf("subjectAbbrev(Management (MBA)) = %q", got)
	}
}
