package allocator

import "sort"

// Assignment maps seats to subject labels.  It may be partial while a
// search is running; the solvers only ever return complete assignments.
type Assignment map[Seat]string

// greedyAssign runs the fast heuristic pass: seats are visited in order
// of descending degree (ties keep row-major enumeration order) and each
// seat takes the legal subject with the most remaining supply (ties go
// to the subject registered first in the demand table).
//
// The heuristic is incomplete: it can miss solutions the exact solver
// finds, so a false return only means "try backtracking", not
// "infeasible".  When it does return true, the assignment is complete,
// consumes every subject's supply exactly and violates no adjacency
// constraint.  Full supply exhaustion is checked as a postcondition, not
// assumed.
func greedyAssign(g *Grid, demand *Demand) (Assignment, bool) {
	order := append([]Seat(nil), g.Seats()...)
	sort.SliceStable(order, func(i, j int) bool {
		return g.Degree(order[i]) > g.Degree(order[j])
	})

	remaining := demand.clone()
	assignment := make(Assignment, len(order))

	for _, seat := range order {
		used := make(map[string]bool, 4)
		for _, nb := range g.Neighbors(seat) {
			if subj, ok := assignment[nb]; ok {
				used[subj] = true
			}
		}
		best := ""
		bestLeft := 0
		for _, subj := range remaining.Subjects() {
			left := remaining.Count(subj)
			if left <= 0 || used[subj] {
				continue
			}
			if left > bestLeft {
				best, bestLeft = subj, left
			}
		}
		if best == "" {
			return nil, false
		}
		assignment[seat] = best
		remaining.Add(best, -1)
	}

	// A pass that fills every seat but strands supply is still a failure.
	for _, subj := range remaining.Subjects() {
		if remaining.Count(subj) != 0 {
			return nil, false
		}
	}
	return assignment, true
}
