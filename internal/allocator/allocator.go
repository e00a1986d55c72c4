package allocator

// Mode selects which algorithm handles a single-hall request.
type Mode string

const (
	// ModeAuto tries the greedy pass first and falls back to the exact
	// backtracking solver when the heuristic gives up.
	ModeAuto Mode = "auto"
	// ModeGreedy runs only the heuristic; it may report infeasible on
	// instances the exact solver could still place.
	ModeGreedy Mode = "greedy"
	// ModeBacktracking runs only the exact solver.
	ModeBacktracking Mode = "backtracking"
)

// Options tunes a single-hall allocation request.
type Options struct {
	Mode Mode // algorithm selection; defaults to ModeAuto
	// MaxSteps bounds the backtracking solver's tentative assignments.
	// Zero means unbounded.  The bound counts solver steps, not wall
	// clock, so bounded runs stay reproducible.
	MaxSteps int
}

// GeneratePlan produces a seat-to-student binding for one rows x cols
// hall under the full 4-adjacency model: no two edge-adjacent seats may
// hold students of the same subject.
//
// Capacity overflow is rejected before any graph or search work.  A nil
// student pointer in the result marks an empty seat.  All state is local
// to the call, so GeneratePlan is safe for concurrent use.
func GeneratePlan(rows, cols int, students []Student, opts Options) (map[Seat]*Student, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInfeasible
	}
	if len(students) > rows*cols {
		return nil, ErrCapacityExceeded
	}

	mode := opts.Mode
	if mode == "" {
		mode = ModeAuto
	}

	grid := NewGrid(rows, cols)
	demand := DemandFromStudents(students)

	var assignment Assignment
	if mode == ModeAuto || mode == ModeGreedy {
		assignment, _ = greedyAssign(grid, demand)
	}
	if assignment == nil {
		if mode == ModeGreedy {
			return nil, ErrInfeasible
		}
		a, err := backtrackingAssign(grid, demand, opts.MaxSteps)
		if err != nil {
			return nil, err
		}
		assignment = a
	}

	return Distribute(grid, assignment, students), nil
}
