package repository

import "github.com/hitbridge/traffic-exchange/internal/domain/entity"

// UserRepository defines storage operations for user accounts.
//
// Counter mutations take deltas and are applied atomically by the store, so
// concurrent hit registrations never lose updates to a read-modify-write
// interleaving.
type UserRepository interface {
	// Create assigns the next identifier and a fresh client identifier,
	// then persists the user.
	Create(u *entity.User) error
	GetByID(id int) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	AddHits(id int, delta int) error
	AddPoints(id int, delta int) error
}
