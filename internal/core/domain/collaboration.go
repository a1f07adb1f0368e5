package domain

// CollaborationStatus is the lifecycle state of a partnership invite.
type CollaborationStatus string

const (
	CollaborationPending  CollaborationStatus = "pending"
	CollaborationAccepted CollaborationStatus = "accepted"
	CollaborationDeclined CollaborationStatus = "declined"
	CollaborationRevoked  CollaborationStatus = "revoked"
)

// Collaboration links two users. Only an accepted collaboration (in either
// direction) allows one user to be attached as a revenue-share partner on the
// other's projects.
type Collaboration struct {
	CollaborationID string              `json:"collaborationID"` // Primary Key (UUID)
	RequesterID     string              `json:"requesterID"`     // FK -> users
	AddresseeID     string              `json:"addresseeID"`     // FK -> users
	Status          CollaborationStatus `json:"status"`
	AuditFields
}

// Involves reports whether the given user is on either side of the collaboration.
func (c Collaboration) Involves(userID string) bool {
	return c.RequesterID == userID || c.AddresseeID == userID
}
