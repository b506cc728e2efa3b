package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hitbridge/traffic-exchange/internal/domain/entity"
	"github.com/hitbridge/traffic-exchange/internal/domain/repository"
)

type UrlRepository struct {
	pool *pgxpool.Pool
}

func NewUrlRepository(pool *pgxpool.Pool) *UrlRepository {
	return &UrlRepository{pool: pool}
}

const urlColumns = `id, user_id, url, min_visit_time, hits, today_hits, points_used, active, created_at`

func (r *UrlRepository) Create(u *entity.Url) error {
	if u.MinVisitTime == 0 {
		u.MinVisitTime = entity.DefaultMinVisitTime
	}
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO urls (user_id, url, min_visit_time)
		VALUES ($1, $2, $3)
		RETURNING id, hits, today_hits, points_used, active, created_at
	`, u.UserID, u.URL, u.MinVisitTime)
	return row.Scan(&u.ID, &u.Hits, &u.TodayHits, &u.PointsUsed, &u.Active, &u.CreatedAt)
}

func (r *UrlRepository) GetByID(id int) (*entity.Url, error) {
	ctx := context.Background()
	u := &entity.Url{}

	row := r.pool.QueryRow(ctx, `SELECT `+urlColumns+` FROM urls WHERE id = $1`, id)
	if err := scanUrl(row, u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UrlRepository) ListByUser(userID int) ([]*entity.Url, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `SELECT `+urlColumns+` FROM urls WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Url, 0)
	for rows.Next() {
		u := &entity.Url{}
		if err := scanUrl(rows, u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UrlRepository) SetActive(id int, active bool) error {
	return r.exec(`UPDATE urls SET active = $1 WHERE id = $2`, active, id)
}

func (r *UrlRepository) AddHits(id int, delta int) error {
	return r.exec(`UPDATE urls SET hits = hits + $1 WHERE id = $2`, delta, id)
}

func (r *UrlRepository) AddTodayHits(id int, delta int) error {
	return r.exec(`UPDATE urls SET today_hits = today_hits + $1 WHERE id = $2`, delta, id)
}

func (r *UrlRepository) AddPointsUsed(id int, delta int) error {
	return r.exec(`UPDATE urls SET points_used = points_used + $1 WHERE id = $2`, delta, id)
}

func (r *UrlRepository) ResetTodayHits() error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `UPDATE urls SET today_hits = 0`)
	return err
}

func (r *UrlRepository) Delete(id int) error {
	return r.exec(`DELETE FROM urls WHERE id = $1`, id)
}

func (r *UrlRepository) exec(query string, args ...any) error {
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

func scanUrl(row pgx.Row, u *entity.Url) error {
	return row.Scan(&u.ID, &u.UserID, &u.URL, &u.MinVisitTime, &u.Hits, &u.TodayHits,
		&u.PointsUsed, &u.Active, &u.CreatedAt)
}

var _ repository.UrlRepository = (*UrlRepository)(nil)
