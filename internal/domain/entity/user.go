package entity

// User is the aggregate root for the account domain.
// Password holds a bcrypt hash and is never serialized.
//
// Points and Hits are running totals maintained by the exchange protocol.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	ClientID string `json:"clientId"`
	Points   int    `json:"points"`
	Hits     int    `json:"hits"`
}
