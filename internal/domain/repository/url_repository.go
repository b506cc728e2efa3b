package repository

import "github.com/hitbridge/traffic-exchange/internal/domain/entity"

// UrlRepository defines storage operations for registered URLs.
type UrlRepository interface {
	// Create assigns the next identifier and persists the URL with zeroed
	// counters, active=true and createdAt=now. A zero MinVisitTime is
	// replaced with entity.DefaultMinVisitTime.
	Create(u *entity.Url) error
	GetByID(id int) (*entity.Url, error)
	ListByUser(userID int) ([]*entity.Url, error)
	SetActive(id int, active bool) error
	AddHits(id int, delta int) error
	AddTodayHits(id int, delta int) error
	AddPointsUsed(id int, delta int) error

	// ResetTodayHits zeroes the daily counter on every URL. Nothing in the
	// API schedules this; it exists for an operator-run maintenance job.
	ResetTodayHits() error

	// Delete removes the URL permanently. Deletion does not cascade into
	// session or user aggregates.
	Delete(id int) error
}
