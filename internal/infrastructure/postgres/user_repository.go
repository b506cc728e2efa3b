package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	"github.com/hitbridge/traffic-exchange/internal/domain/repository"
	"github.com/hitbridge/traffic-exchange/pkg/helpers"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(u *entity.User) error {
	clientID, err := helpers.NewClientID()
	if err != nil {
		return err
	}
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, password, client_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, u.Username, u.Password, clientID)
	if err := row.Scan(&u.ID); err != nil {
		return err
	}
	u.ClientID = clientID
	u.Points = 0
	u.Hits = 0
	return nil
}

func (r *UserRepository) GetByID(id int) (*entity.User, error) {
	return r.get(`WHERE id = $1`, id)
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	return r.get(`WHERE username = $1`, username)
}

func (r *UserRepository) get(where string, arg any) (*entity.User, error) {
	ctx := context.Background()
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, password, client_id, points, hits
		FROM users
	`+where, arg)

	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.ClientID, &u.Points, &u.Hits); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// AddHits applies the delta in a single statement so concurrent hit
// registrations never lose an update.
func (r *UserRepository) AddHits(id int, delta int) error {
	return r.add(`UPDATE users SET hits = hits + $1 WHERE id = $2`, id, delta)
}

func (r *UserRepository) AddPoints(id int, delta int) error {
	return r.add(`UPDATE users SET points = points + $1 WHERE id = $2`, id, delta)
}

func (r *UserRepository) add(query string, id, delta int) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, query, delta, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
