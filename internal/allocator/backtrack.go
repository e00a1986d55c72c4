package allocator

import "sort"

// btRemoval records one forward-checking domain removal so it can be
// reversed exactly when the solver backtracks.
type btRemoval struct {
	seat int // seat index whose domain lost a value
	subj int // subject index that was removed
}

// btFrame is one level of the explicit search stack.  The candidate
// order is frozen when the frame is created; exhausted subjects are
// skipped at try time, matching the frame-entry snapshot semantics of
// the value ordering heuristic.
type btFrame struct {
	seat    int   // seat chosen for this depth
	order   []int // candidate subject indices, best first
	next    int   // next candidate to try
	applied int   // subject currently assigned here, -1 when none
	trail   []btRemoval
}

// backtrackingAssign is the exact solver.  It is sound and complete for
// the full 4-adjacency model: it returns an assignment whenever one
// exists and ErrInfeasible when none does.
//
// Variable order: minimum remaining values, ties broken by largest
// degree, then by row-major seat index.  Value order: descending
// remaining supply, ties by demand insertion order.  Forward checking
// prunes neighbor domains on every tentative assignment; every removal
// is logged on the frame's trail and restored before the next candidate
// is tried.  The search is iterative so grid size never threatens the
// goroutine stack and the step bound check sits in one place.
//
// maxSteps bounds the number of tentative assignments; zero means
// unbounded.  Exceeding it returns ErrSearchAborted.
func backtrackingAssign(g *Grid, demand *Demand, maxSteps int) (Assignment, error) {
	n := g.Capacity()
	subjects := demand.Subjects()
	m := len(subjects)

	// All search state is per-call: concurrent requests never share it.
	remaining := make([]int, m)
	for i, s := range subjects {
		remaining[i] = demand.Count(s)
	}
	dom := make([][]bool, n)
	domSize := make([]int, n)
	degree := make([]int, n)
	assign := make([]int, n)
	neighborIdx := make([][]int, n)
	for i, seat := range g.Seats() {
		dom[i] = make([]bool, m)
		for s := 0; s < m; s++ {
			if remaining[s] > 0 {
				dom[i][s] = true
				domSize[i]++
			}
		}
		degree[i] = g.Degree(seat)
		assign[i] = -1
		nbs := g.Neighbors(seat)
		neighborIdx[i] = make([]int, len(nbs))
		for j, nb := range nbs {
			neighborIdx[i][j] = g.index(nb)
		}
	}

	consistent := func(seat, subj int) bool {
		for _, nb := range neighborIdx[seat] {
			if assign[nb] == subj {
				return false
			}
		}
		return true
	}

	newFrame := func() *btFrame {
		best := -1
		for i := 0; i < n; i++ {
			if assign[i] >= 0 {
				continue
			}
			if best < 0 ||
				domSize[i] < domSize[best] ||
				(domSize[i] == domSize[best] && degree[i] > degree[best]) {
				best = i
			}
		}
		order := make([]int, 0, domSize[best])
		for s := 0; s < m; s++ {
			if dom[best][s] {
				order = append(order, s)
			}
		}
		sort.SliceStable(order, func(a, b int) bool {
			return remaining[order[a]] > remaining[order[b]]
		})
		return &btFrame{seat: best, order: order, applied: -1}
	}

	assignedCount := 0
	steps := 0

	undo := func(f *btFrame) {
		for _, rm := range f.trail {
			dom[rm.seat][rm.subj] = true
			domSize[rm.seat]++
		}
		f.trail = f.trail[:0]
		remaining[f.applied]++
		assign[f.seat] = -1
		assignedCount--
		f.applied = -1
	}

	stack := []*btFrame{newFrame()}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.applied >= 0 {
			// A deeper frame failed; roll back and try the next value.
			undo(f)
		}

		advanced := false
		for f.next < len(f.order) {
			subj := f.order[f.next]
			f.next++
			if remaining[subj] == 0 {
				continue
			}
			if !consistent(f.seat, subj) {
				continue
			}
			if maxSteps > 0 {
				steps++
				if steps > maxSteps {
					return nil, ErrSearchAborted
				}
			}

			assign[f.seat] = subj
			remaining[subj]--
			assignedCount++
			f.applied = subj

			pruned := true
			for _, nb := range neighborIdx[f.seat] {
				if assign[nb] >= 0 || !dom[nb][subj] {
					continue
				}
				dom[nb][subj] = false
				domSize[nb]--
				f.trail = append(f.trail, btRemoval{seat: nb, subj: subj})
				if domSize[nb] == 0 {
					pruned = false
					break
				}
			}
			if !pruned {
				undo(f)
				continue
			}

			if assignedCount == n {
				// A full grid only counts as solved when every subject's
				// supply reached exactly zero.
				solved := true
				for s := 0; s < m; s++ {
					if remaining[s] != 0 {
						solved = false
						break
					}
				}
				if solved {
					out := make(Assignment, n)
					for i, seat := range g.Seats() {
						out[seat] = subjects[assign[i]]
					}
					return out, nil
				}
				undo(f)
				continue
			}

			stack = append(stack, newFrame())
			advanced = true
			break
		}

		if !advanced {
			stack = stack[:len(stack)-1]
		}
	}
	return nil, ErrInfeasible
}
