package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/campaign/internal/media"
)

// VideoRepository persists saved YouTube tracks.
type VideoRepository struct {
	db *pgxpool.Pool
}

// NewVideoRepository creates a VideoRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewVideoRepository(db *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{db: db}
}

const videoColumns = `id, name, category, link, created_at, updated_at`

func scanVideo(row pgx.Row) (*media.Video, error) {
	var v media.Video
	if err := row.Scan(&v.ID, &v.Name, &v.Category, &v.Link, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, media.ErrVideoNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns every video, newest first.
func (r *VideoRepository) List(ctx context.Context) ([]*media.Video, error) {
	rows, err := r.db.Query(ctx, `SELECT `+videoColumns+` FROM youtube_videos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing videos: %w", err)
	}
	defer rows.Close()
	out := make([]*media.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning video row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Get returns one video or media.ErrVideoNotFound.
func (r *VideoRepository) Get(ctx context.Context, id string) (*media.Video, error) {
	if !validID(id) {
		return nil, media.ErrVideoNotFound
	}
	v, err := scanVideo(r.db.QueryRow(ctx, `SELECT `+videoColumns+` FROM youtube_videos WHERE id = $1`, id))
	if err != nil && !errors.Is(err, media.ErrVideoNotFound) {
		return nil, fmt.Errorf("querying video: %w", err)
	}
	return v, err
}

// Create inserts v.
//
// Precondition: v must pass Validate.
func (r *VideoRepository) Create(ctx context.Context, v media.Video) (*media.Video, error) {
	out, err := scanVideo(r.db.QueryRow(ctx, `
		INSERT INTO youtube_videos (id, name, category, link)
		VALUES ($1, $2, $3, $4)
		RETURNING `+videoColumns,
		uuid.NewString(), v.Name, v.Category, v.Link,
	))
	if err != nil {
		return nil, fmt.Errorf("inserting video: %w", err)
	}
	return out, nil
}

// Update overwrites the video identified by v.ID.
func (r *VideoRepository) Update(ctx context.Context, v media.Video) (*media.Video, error) {
	if !validID(v.ID) {
		return nil, media.ErrVideoNotFound
	}
	out, err := scanVideo(r.db.QueryRow(ctx, `
		UPDATE youtube_videos SET name = $2, category = $3, link = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING `+videoColumns,
		v.ID, v.Name, v.Category, v.Link,
	))
	if err != nil && !errors.Is(err, media.ErrVideoNotFound) {
		return nil, fmt.Errorf("updating video: %w", err)
	}
	return out, err
}

// Delete removes a video.
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return media.ErrVideoNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM youtube_videos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return media.ErrVideoNotFound
	}
	return nil
}
