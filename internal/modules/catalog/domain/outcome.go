package domain

// Status describes what applying one command did to the store.
type Status string

const (
	StatusCreated      Status = "created"
	StatusReplaced     Status = "replaced"
	StatusUpdated      Status = "updated"
	StatusDeleted      Status = "deleted"
	StatusNotFound     Status = "not_found"
	StatusUnrecognized Status = "unrecognized"
	StatusRejected     Status = "rejected"
)

// Applied reports whether the store was mutated.
func (s Status) Applied() bool {
	switch s {
	case StatusCreated, StatusReplaced, StatusUpdated, StatusDeleted:
		return true
	default:
		return false
	}
}

// Outcome is the result of applying one envelope. Err is set for the non-applied statuses.
type Outcome struct {
	Kind      Kind
	Operation Operation
	EntityID  string
	Status    Status
	Err       error
}
