package repository

import "github.com/hitbridge/traffic-exchange/internal/domain/entity"

// SessionRepository defines storage operations for exchange sessions.
type SessionRepository interface {
	// Create assigns the next identifier and persists the session with
	// points=0, hits=0, active=true, status Ready. Proxy falls back to
	// "System" when empty.
	Create(s *entity.Session) error
	GetByID(id int) (*entity.Session, error)
	GetByClientID(clientID string) (*entity.Session, error)
	ListByUser(userID int) ([]*entity.Session, error)

	// SetStatus writes the status field unconditionally. It does not
	// reconcile the active flag; callers that need the active/status
	// invariant must go through SetActive.
	SetStatus(id int, status string) error

	// SetActive toggles the session and derives the status: Ready when
	// activating, Paused when deactivating.
	SetActive(id int, active bool) error

	AddHits(id int, delta int) error
	AddPoints(id int, delta int) error
}
