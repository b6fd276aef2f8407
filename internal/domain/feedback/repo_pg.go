package feedback

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepo struct{ pool *pgxpool.Pool }

func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const feedbackCols = `id, name, email, category, rating, comments, created_at`

func (r *pgRepo) scan(row pgx.Row) (*Feedback, error) {
	var f Feedback
	err := row.Scan(&f.ID, &f.Name, &f.Email, &f.Category, &f.Rating, &f.Comments, &f.CreatedAt)
	return &f, err
}

func (r *pgRepo) Create(ctx context.Context, f *Feedback) error {
	f.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO feedback (id, name, email, category, rating, comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		f.ID, f.Name, f.Email, f.Category, f.Rating, f.Comments).Scan(&f.CreatedAt)
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Feedback, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM feedback`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+feedbackCols+` FROM feedback ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items := []*Feedback{}
	for rows.Next() {
		f, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, f)
	}
	return items, total, rows.Err()
}

func (r *pgRepo) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByCategory: make(map[string]int)}
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM feedback`).
		Scan(&stats.Total, &stats.AverageRating); err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `SELECT category, COUNT(*) FROM feedback GROUP BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		stats.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent, err := r.pool.Query(ctx, `SELECT `+feedbackCols+` FROM feedback ORDER BY created_at DESC LIMIT $1`, recentStatsCount)
	if err != nil {
		return nil, err
	}
	defer recent.Close()
	stats.Recent = []*Feedback{}
	for recent.Next() {
		f, err := r.scan(recent)
		if err != nil {
			return nil, err
		}
		stats.Recent = append(stats.Recent, f)
	}
	return stats, recent.Err()
}
