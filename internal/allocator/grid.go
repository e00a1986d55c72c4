package allocator // allocator implements the seat assignment algorithms

// Seat identifies a position inside a hall grid.  Row and Col are
// zero-based.  Seats are pure coordinates: they are never created or
// destroyed after a grid is built.
type Seat struct {
	Row int // zero-based row index
	Col int // zero-based column index
}

// Grid holds the adjacency structure of a rows x cols seat grid.  Two
// seats are adjacent when they share an edge (north, south, west, east).
// Adjacency is symmetric and restricted to the grid bounds.  A Grid is
// immutable once built; all enumeration happens in row-major order so
// every pass over the seats is deterministic.
type Grid struct {
	Rows int // number of rows
	Cols int // number of columns

	seats     []Seat   // row-major seat enumeration
	neighbors [][]Seat // neighbor list per seat, indexed like seats
}

// NewGrid builds the adjacency graph for a rows x cols grid.  Neighbor
// lists follow the fixed N, S, W, E probe order so that degree and
// iteration behaviour are reproducible across runs.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{
		Rows:      rows,
		Cols:      cols,
		seats:     make([]Seat, 0, rows*cols),
		neighbors: make([][]Seat, 0, rows*cols),
	}
	deltas := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} // N, S, W, E
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.seats = append(g.seats, Seat{Row: r, Col: c})
			nbs := make([]Seat, 0, 4)
			for _, d := range deltas {
				nr, nc := r+d[0], c+d[1]
				if nr >= 0 && nr < rows && nc >= 0 && nc < cols {
					nbs = append(nbs, Seat{Row: nr, Col: nc})
				}
			}
			g.neighbors = append(g.neighbors, nbs)
		}
	}
	return g
}

// Capacity returns the total number of seats in the grid.
func (g *Grid) Capacity() int { return g.Rows * g.Cols }

// Seats returns all seats in row-major order.  Callers must not mutate
// the returned slice.
func (g *Grid) Seats() []Seat { return g.seats }

// Neighbors returns the grid neighbors of a seat (between 2 and 4
// entries depending on the seat's position).
func (g *Grid) Neighbors(s Seat) []Seat { return g.neighbors[g.index(s)] }

// Degree returns the number of grid neighbors of a seat.
func (g *Grid) Degree(s Seat) int { return len(g.neighbors[g.index(s)]) }

// index converts a seat to its row-major position.
func (g *Grid) index(s Seat) int { return s.Row*g.Cols + s.Col }
