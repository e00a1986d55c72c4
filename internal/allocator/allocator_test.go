package allocator

import (
	"errors"
	"fmt"
	"testing"
)

// roster builds students for the given per-subject counts, in the given
// subject order, with identifiers S001, S002, ...
func roster(subjectCounts ...interface{}) []Student {
	var students []Student
	n := 0
	for i := 0; i < len(subjectCounts); i += 2 {
		subj := subjectCounts[i].(string)
		count := subjectCounts[i+1].(int)
		for j := 0; j < count; j++ {
			n++
			students = append(students, Student{
				ID:      fmt.Sprintf("S%03d", n),
				Name:    fmt.Sprintf("Student %d", n),
				Subject: subj,
			})
		}
	}
	return students
}

// checkPlan verifies the two correctness properties of an exact-model
// plan: no two adjacent seats hold the same subject, and every student
// is seated exactly once.
func checkPlan(t *testing.T, rows, cols int, students []Student, plan map[Seat]*Student) {
	t.Helper()
	g := NewGrid(rows, cols)

	seated := map[string]bool{}
	for seat, st := range plan {
		if st == nil {
			continue
		}
		if seated[st.ID] {
			t.Fatalf("student %s seated twice", st.ID)
		}
		seated[st.ID] = true
		for _, nb := range g.Neighbors(seat) {
			if other := plan[nb]; other != nil && other.Subject == st.Subject {
				t.Fatalf("adjacent seats %v and %v both hold subject %q", seat, nb, st.Subject)
			}
		}
	}
	if len(seated) != len(students) {
		t.Fatalf("seated %d of %d students", len(seated), len(students))
	}
}

func TestGenerate2x2TwoSubjects(t *testing.T) {
	students := roster("A", 2, "B", 2)
	plan, err := GeneratePlan(2, 2, students, Options{Mode: ModeAuto})
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	checkPlan(t, 2, 2, students, plan)
}

// On a 1x3 strip with A:2 B:1 the greedy pass paints the middle seat A
// (largest supply, highest degree) and strands the second A student,
// but the exact solver finds A B A.  Greedy-only reports infeasible;
// auto mode recovers through the fallback.
func TestGenerate1x3GreedyFailsExactSucceeds(t *testing.T) {
	students := roster("A", 2, "B", 1)

	if _, err := GeneratePlan(1, 3, students, Options{Mode: ModeGreedy}); !errors.Is(err, ErrInfeasible) {
		t.Fatalf("greedy-only err = %v, want ErrInfeasible", err)
	}
	for _, mode := range []Mode{ModeBacktracking, ModeAuto} {
		plan, err := GeneratePlan(1, 3, students, Options{Mode: mode})
		if err != nil {
			t.Fatalf("mode %s failed: %v", mode, err)
		}
		checkPlan(t, 1, 3, students, plan)
		if mid := plan[Seat{Row: 0, Col: 1}]; mid == nil || mid.Subject != "B" {
			t.Fatalf("middle seat = %+v, want the B student", mid)
		}
	}
}

// A 1x2 strip with two same-subject students has no valid coloring at
// all; every mode must report infeasible.
func TestGenerateTrulyInfeasible(t *testing.T) {
	students := roster("A", 2)
	for _, mode := range []Mode{ModeGreedy, ModeBacktracking, ModeAuto} {
		_, err := GeneratePlan(1, 2, students, Options{Mode: mode})
		if !errors.Is(err, ErrInfeasible) {
			t.Fatalf("mode %s: err = %v, want ErrInfeasible", mode, err)
		}
	}
}

// A 3x3 grid with demand A:4 B:3 C:2 defeats the greedy pass under the
// pinned tie-break rules (the last corner ends up with both of its
// neighbors' subjects excluded and nothing left) but has an exact
// solution, so auto mode must fall back to backtracking and succeed.
func TestGenerateFallbackToBacktracking(t *testing.T) {
	students := roster("A", 4, "B", 3, "C", 2)

	if _, err := GeneratePlan(3, 3, students, Options{Mode: ModeGreedy}); !errors.Is(err, ErrInfeasible) {
		t.Fatalf("greedy-only err = %v, want ErrInfeasible", err)
	}

	plan, err := GeneratePlan(3, 3, students, Options{Mode: ModeAuto})
	if err != nil {
		t.Fatalf("auto mode failed: %v", err)
	}
	checkPlan(t, 3, 3, students, plan)
}

func TestGenerate3x3TwoSubjects(t *testing.T) {
	students := roster("A", 5, "B", 4)
	for _, mode := range []Mode{ModeAuto, ModeBacktracking} {
		plan, err := GeneratePlan(3, 3, students, Options{Mode: mode})
		if err != nil {
			t.Fatalf("mode %s failed: %v", mode, err)
		}
		checkPlan(t, 3, 3, students, plan)
	}
}

func TestGenerateCapacityOverflow(t *testing.T) {
	students := roster("A", 3, "B", 2)
	_, err := GeneratePlan(2, 2, students, Options{Mode: ModeAuto})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("err = %v, want ErrCapacityExceeded", err)
	}
}

// Six A students cannot avoid each other on a 3x3 grid (the largest
// independent set has five seats), so the solver must prove
// infeasibility rather than return a bad plan.
func TestGenerateProvablyInfeasibleDistribution(t *testing.T) {
	students := roster("A", 6, "B", 3)
	_, err := GeneratePlan(3, 3, students, Options{Mode: ModeBacktracking})
	if !errors.Is(err, ErrInfeasible) {
		t.Fatalf("err = %v, want ErrInfeasible", err)
	}
}

func TestGenerateStepBound(t *testing.T) {
	students := roster("A", 6, "B", 3)
	_, err := GeneratePlan(3, 3, students, Options{Mode: ModeBacktracking, MaxSteps: 3})
	if !errors.Is(err, ErrSearchAborted) {
		t.Fatalf("err = %v, want ErrSearchAborted", err)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	students := roster("A", 5, "B", 4)
	for _, mode := range []Mode{ModeAuto, ModeGreedy, ModeBacktracking} {
		first, err := GeneratePlan(3, 3, students, Options{Mode: mode})
		if err != nil {
			t.Fatalf("mode %s run 1 failed: %v", mode, err)
		}
		second, err := GeneratePlan(3, 3, students, Options{Mode: mode})
		if err != nil {
			t.Fatalf("mode %s run 2 failed: %v", mode, err)
		}
		for seat, st := range first {
			other := second[seat]
			switch {
			case st == nil && other == nil:
			case st == nil || other == nil || st.ID != other.ID:
				t.Fatalf("mode %s: seat %v differs between runs", mode, seat)
			}
		}
	}
}

// Greedy success must imply the same properties the exact solver
// guarantees; sweep a range of feasible distributions and verify it
// never reports a false success.
func TestGreedyNeverFalseSuccess(t *testing.T) {
	cases := []struct {
		rows, cols int
		students   []Student
	}{
		{2, 2, roster("A", 2, "B", 2)},
		{2, 3, roster("A", 3, "B", 3)},
		{3, 3, roster("A", 5, "B", 4)},
		{3, 3, roster("A", 3, "B", 3, "C", 3)},
		{4, 4, roster("A", 8, "B", 8)},
		{2, 4, roster("A", 4, "B", 2, "C", 2)},
	}
	for _, tc := range cases {
		plan, err := GeneratePlan(tc.rows, tc.cols, tc.students, Options{Mode: ModeGreedy})
		if errors.Is(err, ErrInfeasible) {
			continue // incomplete heuristic giving up is allowed
		}
		if err != nil {
			t.Fatalf("%dx%d: unexpected error %v", tc.rows, tc.cols, err)
		}
		checkPlan(t, tc.rows, tc.cols, tc.students, plan)
	}
}
