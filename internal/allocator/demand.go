package allocator

// Student is one roster entry.  Records are immutable once read from
// input; the allocator only groups and orders them.
type Student struct {
	ID      string // unique identifier, e.g. S0001
	Name    string // display name
	Subject string // subject label
	Year    string // admission year, used for synthetic roll numbers
	RollNo  string // roll number; synthesized when empty
}

// Demand maps subject labels to the exact number of students that need
// a seat.  Insertion order of subjects is preserved because the greedy
// assigner and the CSP solver both break supply ties by the order in
// which subjects first appeared, and that order must be reproducible.
type Demand struct {
	subjects []string
	counts   map[string]int
}

// NewDemand returns an empty demand table.
func NewDemand() *Demand {
	return &Demand{counts: make(map[string]int)}
}

// DemandFromStudents tallies per-subject counts from a roster.  Subjects
// enter the table in first-seen order.
func DemandFromStudents(students []Student) *Demand {
	d := NewDemand()
	for _, s := range students {
		d.Add(s.Subject, 1)
	}
	return d
}

// Add increases the count for a subject, registering it on first use.
func (d *Demand) Add(subject string, n int) {
	if _, ok := d.counts[subject]; !ok {
		d.subjects = append(d.subjects, subject)
	}
	d.counts[subject] += n
}

// Count returns the current count for a subject (zero when unknown).
func (d *Demand) Count(subject string) int { return d.counts[subject] }

// Subjects returns subject labels in insertion order.  Callers must not
// mutate the returned slice.
func (d *Demand) Subjects() []string { return d.subjects }

// Total returns the sum of all subject counts.
func (d *Demand) Total() int {
	t := 0
	for _, c := range d.counts {
		t += c
	}
	return t
}

// clone returns an independent copy.  Every solver pass works on its own
// copy so concurrent allocation requests never share counters.
func (d *Demand) clone() *Demand {
	c := &Demand{
		subjects: append([]string(nil), d.subjects...),
		counts:   make(map[string]int, len(d.counts)),
	}
	for k, v := range d.counts {
		c.counts[k] = v
	}
	return c
}
