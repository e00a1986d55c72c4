package allocator

import "sort"

// Distribute maps the abstract seat labeling onto concrete students.
// Per subject, students form a pool ordered by identifier; seats are
// walked in row-major order and each one pops the next student of its
// assigned subject.  The ordering is a contract, not cosmetics: it is
// what makes repeated runs on the same roster bind the same students to
// the same seats.
//
// An exhausted pool leaves the seat empty (nil) instead of failing.
// With the solvers' supply-exhaustion postcondition this should not
// happen, but the distributor does not rely on it.
func Distribute(g *Grid, assignment Assignment, students []Student) map[Seat]*Student {
	pools := buildPools(students)

	bound := make(map[Seat]*Student, len(assignment))
	for _, seat := range g.Seats() {
		subj, ok := assignment[seat]
		if !ok {
			bound[seat] = nil
			continue
		}
		pool := pools[subj]
		if len(pool) == 0 {
			bound[seat] = nil
			continue
		}
		st := pool[0]
		pools[subj] = pool[1:]
		bound[seat] = st
	}
	return bound
}

// buildPools groups students by subject and orders each pool by student
// identifier.
func buildPools(students []Student) map[string][]*Student {
	pools := make(map[string][]*Student)
	for i := range students {
		s := &students[i]
		pools[s.Subject] = append(pools[s.Subject], s)
	}
	for subj := range pools {
		pool := pools[subj]
		sort.SliceStable(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	}
	return pools
}
