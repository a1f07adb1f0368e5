package models

// Client represents a row of the clients table.
type Client struct {
	ClientID  string `db:"client_id"`
	OwnerID   string `db:"owner_id"`
	LegalName string `db:"legal_name"`
	TradeName string `db:"trade_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	AuditFields
}
