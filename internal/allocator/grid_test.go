package allocator

import "testing"

func TestNewGridNeighbors(t *testing.T) {
	g := NewGrid(2, 3)
	if g.Capacity() != 6 {
		t.Fatalf("capacity = %d, want 6", g.Capacity())
	}
	if len(g.Seats()) != 6 {
		t.Fatalf("seats = %d, want 6", len(g.Seats()))
	}

	wantDegree := map[Seat]int{
		{0, 0}: 2, {0, 1}: 3, {0, 2}: 2,
		{1, 0}: 2, {1, 1}: 3, {1, 2}: 2,
	}
	for seat, want := range wantDegree {
		if got := g.Degree(seat); got != want {
			t.Errorf("degree(%v) = %d, want %d", seat, got, want)
		}
	}
}

func TestGridAdjacencySymmetricAndBounded(t *testing.T) {
	g := NewGrid(4, 5)
	for _, seat := range g.Seats() {
		for _, nb := range g.Neighbors(seat) {
			if nb.Row < 0 || nb.Row >= g.Rows || nb.Col < 0 || nb.Col >= g.Cols {
				t.Fatalf("neighbor %v of %v out of bounds", nb, seat)
			}
			dr, dc := seat.Row-nb.Row, seat.Col-nb.Col
			if dr*dr+dc*dc != 1 {
				t.Fatalf("neighbor %v of %v is not edge-adjacent", nb, seat)
			}
			back := false
			for _, rev := range g.Neighbors(nb) {
				if rev == seat {
					back = true
					break
				}
			}
			if !back {
				t.Fatalf("adjacency not symmetric: %v -> %v", seat, nb)
			}
		}
	}
}

func TestGridSeatsRowMajor(t *testing.T) {
	g := NewGrid(2, 2)
	want := []Seat{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for i, s := range g.Seats() {
		if s != want[i] {
			t.Fatalf("seat[%d] = %v, want %v", i, s, want[i])
		}
	}
}
