package domain

// Client represents a paying customer that projects are billed against.
// Clients are owned singly by their creator.
type Client struct {
	ClientID  string `json:"clientID"` // Primary Key (UUID)
	OwnerID   string `json:"ownerID"`  // FK -> users
	LegalName string `json:"legalName"`
	TradeName string `json:"tradeName"` // Nullable display name
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AuditFields
}

// DisplayName prefers the trade name when one is set.
func (c Client) DisplayName() string {
	if c.TradeName != "" {
		return c.TradeName
	}
	return c.LegalName
}
