// Package allocator contains the seat allocation core: the grid
// adjacency builder, a greedy heuristic assigner, an exact backtracking
// solver and the sequential multi-hall allocator.  Sentinel errors let
// handlers map each failure to a distinct HTTP response.
package allocator

import "errors"

// ErrCapacityExceeded is returned when the roster holds more students
// than the grid has seats.  It is detected before any search runs.
var ErrCapacityExceeded = errors.New("more students than seats")

// ErrInfeasible is returned when no assignment satisfies the adjacency
// constraint for the given subject distribution.  The backtracking
// solver proves this by exhausting the search space; a complete seat
// assignment that leaves subject supply unconsumed counts as infeasible
// too, never as success.
var ErrInfeasible = errors.New("no feasible seating arrangement")

// ErrSearchAborted is returned when the backtracking solver exceeds its
// configured step bound.  It is distinct from ErrInfeasible: nothing has
// been proven about the instance.
var ErrSearchAborted = errors.New("search aborted: step bound exceeded")
