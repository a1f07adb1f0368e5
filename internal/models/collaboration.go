package models

// Collaboration represents a row of the collaborations table.
type Collaboration struct {
	CollaborationID string `db:"collaboration_id"`
	RequesterID     string `db:"requester_id"`
	AddresseeID     string `db:"addressee_id"`
	Status          string `db:"status"`
	AuditFields
}
