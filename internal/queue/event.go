// Package queue defines message payloads exchanged over the message broker.
package queue

// PlanGeneratedEvent is published when a seating plan has been generated
// and stored.  It carries enough information for downstream consumers to
// log, notify invigilators, or trigger analytics without querying the
// primary database.
type PlanGeneratedEvent struct {
	PlanID      string `json:"plan_id"`
	OwnerID     uint64 `json:"owner_id"`
	Strategy    string `json:"strategy"` // single | multi
	Mode        string `json:"mode"`     // auto | greedy | backtracking
	Halls       int    `json:"halls"`
	Seated      int    `json:"seated"`
	Unseated    int    `json:"unseated"`
	GeneratedAt string `json:"generated_at"`
}
