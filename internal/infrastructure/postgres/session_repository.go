package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	"github.com/hitbridge/traffic-exchange/internal/domain/repository"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

const sessionColumns = `id, user_id, client_id, note, proxy, proxy_config, points, hits, active, status`

func (r *SessionRepository) Create(s *entity.Session) error {
	if s.Proxy == "" {
		s.Proxy = "System"
	}
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO sessions (user_id, client_id, note, proxy, proxy_config)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, points, hits, active, status
	`, s.UserID, s.ClientID, s.Note, s.Proxy, s.ProxyConfig)
	return row.Scan(&s.ID, &s.Points, &s.Hits, &s.Active, &s.Status)
}

func (r *SessionRepository) GetByID(id int) (*entity.Session, error) {
	return r.get(`WHERE id = $1`, id)
}

func (r *SessionRepository) GetByClientID(clientID string) (*entity.Session, error) {
	return r.get(`WHERE client_id = $1 ORDER BY id LIMIT 1`, clientID)
}

func (r *SessionRepository) get(where string, arg any) (*entity.Session, error) {
	ctx := context.Background()
	s := &entity.Session{}

	row := r.pool.QueryRow(ctx, `SELECT `+sessionColumns+` FROM sessions `+where, arg)
	if err := scanSession(row, s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *SessionRepository) ListByUser(userID int) ([]*entity.Session, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Session, 0)
	for rows.Next() {
		s := &entity.Session{}
		if err := scanSession(rows, s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SessionRepository) SetStatus(id int, status string) error {
	return r.exec(`UPDATE sessions SET status = $1 WHERE id = $2`, status, id)
}

func (r *SessionRepository) SetActive(id int, active bool) error {
	status := entity.StatusPaused
	if active {
		status = entity.StatusReady
	}
	return r.exec(`UPDATE sessions SET active = $1, status = $2 WHERE id = $3`, active, status, id)
}

func (r *SessionRepository) AddHits(id int, delta int) error {
	return r.exec(`UPDATE sessions SET hits = hits + $1 WHERE id = $2`, delta, id)
}

func (r *SessionRepository) AddPoints(id int, delta int) error {
	return r.exec(`UPDATE sessions SET points = points + $1 WHERE id = $2`, delta, id)
}

func (r *SessionRepository) exec(query string, args ...any) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanSession(row pgx.Row, s *entity.Session) error {
	return row.Scan(&s.ID, &s.UserID, &s.ClientID, &s.Note, &s.Proxy, &s.ProxyConfig,
		&s.Points, &s.Hits, &s.Active, &s.Status)
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
