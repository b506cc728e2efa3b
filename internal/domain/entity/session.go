package entity

// Well-known session statuses. Status is stored as free text so the
// dashboard can surface transient states; these are the values the API
// itself writes.
const (
	StatusReady      = "Ready"
	StatusPaused     = "Paused"
	StatusRestarting = "Restarting"
)

// Session is one exchange session owned by a user. ClientID is a copy of
// the owner's client identifier, not unique per session.
type Session struct {
	ID          int    `json:"id"`
	UserID      int    `json:"userId"`
	ClientID    string `json:"clientId"`
	Note        string `json:"note"`
	Proxy       string `json:"proxy"`
	ProxyConfig string `json:"proxyConfig,omitempty"`
	Points      int    `json:"points"`
	Hits        int    `json:"hits"`
	Active      bool   `json:"active"`
	Status      string `json:"status"`
}
