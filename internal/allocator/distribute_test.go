package allocator

import "testing"

func TestDistributeOrdersPoolsByID(t *testing.T) {
	g := NewGrid(1, 4)
	assignment := Assignment{
		{0, 0}: "A", {0, 1}: "B", {0, 2}: "A", {0, 3}: "B",
	}
	// Roster deliberately out of identifier order.
	students := []Student{
		{ID: "S004", Subject: "B"},
		{ID: "S001", Subject: "A"},
		{ID: "S003", Subject: "B"},
		{ID: "S002", Subject: "A"},
	}

	bound := Distribute(g, assignment, students)

	want := map[Seat]string{
		{0, 0}: "S001", // first A seat in row-major order gets lowest A id
		{0, 1}: "S003",
		{0, 2}: "S002",
		{0, 3}: "S004",
	}
	for seat, id := range want {
		st := bound[seat]
		if st == nil || st.ID != id {
			t.Fatalf("seat %v bound to %+v, want id %s", seat, st, id)
		}
	}
}

func TestDistributeLeavesSeatEmptyOnPoolUnderrun(t *testing.T) {
	g := NewGrid(1, 3)
	assignment := Assignment{
		{0, 0}: "A", {0, 1}: "B", {0, 2}: "A",
	}
	// Only one A student although the labeling reserved two A seats.
	students := []Student{
		{ID: "S001", Subject: "A"},
		{ID: "S002", Subject: "B"},
	}

	bound := Distribute(g, assignment, students)

	if st := bound[Seat{0, 0}]; st == nil || st.ID != "S001" {
		t.Fatalf("seat (0,0) = %+v, want S001", st)
	}
	if st := bound[Seat{0, 2}]; st != nil {
		t.Fatalf("seat (0,2) = %+v, want empty", st)
	}
}
