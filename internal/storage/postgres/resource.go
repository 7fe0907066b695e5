package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/campaign/internal/game/resource"
)

// ResourceRepository persists the skill and quality/drawback catalogs.
type ResourceRepository struct {
	db *pgxpool.Pool
}

// NewResourceRepository creates a ResourceRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{db: db}
}

const skillColumns = `id, name, description, type, page, created_at, updated_at`

func scanSkill(row pgx.Row) (*resource.Skill, error) {
	var s resource.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Type, &s.Page, &s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, resource.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListSkills returns every skill, newest first.
func (r *ResourceRepository) ListSkills(ctx context.Context) ([]*resource.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT `+skillColumns+` FROM resource_skills ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing skills: %w", err)
	}
	defer rows.Close()
	out := make([]*resource.Skill, 0)
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning skill row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSkill returns one skill or resource.ErrNotFound.
func (r *ResourceRepository) GetSkill(ctx context.Context, id string) (*resource.Skill, error) {
	if !validID(id) {
		return nil, resource.ErrNotFound
	}
	s, err := scanSkill(r.db.QueryRow(ctx, `SELECT `+skillColumns+` FROM resource_skills WHERE id = $1`, id))
	if err != nil && !errors.Is(err, resource.ErrNotFound) {
		return nil, fmt.Errorf("querying skill: %w", err)
	}
	return s, err
}

// CreateSkill inserts s.
//
// Precondition: s must pass Validate.
func (r *ResourceRepository) CreateSkill(ctx context.Context, s resource.Skill) (*resource.Skill, error) {
	out, err := scanSkill(r.db.QueryRow(ctx, `
		INSERT INTO resource_skills (id, name, description, type, page)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+skillColumns,
		uuid.NewString(), s.Name, s.Description, s.Type, s.Page,
	))
	if err != nil {
		return nil, fmt.Errorf("inserting skill: %w", err)
	}
	return out, nil
}

// UpdateSkill overwrites the skill identified by s.ID.
func (r *ResourceRepository) UpdateSkill(ctx context.Context, s resource.Skill) (*resource.Skill, error) {
	if !validID(s.ID) {
		return nil, resource.ErrNotFound
	}
	out, err := scanSkill(r.db.QueryRow(ctx, `
		UPDATE resource_skills
		SET name = $2, description = $3, type = $4, page = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+skillColumns,
		s.ID, s.Name, s.Description, s.Type, s.Page,
	))
	if err != nil && !errors.Is(err, resource.ErrNotFound) {
		return nil, fmt.Errorf("updating skill: %w", err)
	}
	return out, err
}

// DeleteSkill removes a skill. Characters referencing it keep their copy of the name.
func (r *ResourceRepository) DeleteSkill(ctx context.Context, id string) error {
	return r.deleteFrom(ctx, "resource_skills", id)
}

const qdColumns = `id, name, description, cost, page, created_at, updated_at`

func scanQualityDrawback(row pgx.Row) (*resource.QualityDrawback, error) {
	var q resource.QualityDrawback
	if err := row.Scan(&q.ID, &q.Name, &q.Description, &q.Cost, &q.Page, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, resource.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// ListQualitiesDrawbacks returns every quality and drawback, newest first.
func (r *ResourceRepository) ListQualitiesDrawbacks(ctx context.Context) ([]*resource.QualityDrawback, error) {
	rows, err := r.db.Query(ctx, `SELECT `+qdColumns+` FROM resource_qualities_drawbacks ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing qualities/drawbacks: %w", err)
	}
	defer rows.Close()
	out := make([]*resource.QualityDrawback, 0)
	for rows.Next() {
		q, err := scanQualityDrawback(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning quality/drawback row: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// GetQualityDrawback returns one entry or resource.ErrNotFound.
func (r *ResourceRepository) GetQualityDrawback(ctx context.Context, id string) (*resource.QualityDrawback, error) {
	if !validID(id) {
		return nil, resource.ErrNotFound
	}
	q, err := scanQualityDrawback(r.db.QueryRow(ctx, `SELECT `+qdColumns+` FROM resource_qualities_drawbacks WHERE id = $1`, id))
	if err != nil && !errors.Is(err, resource.ErrNotFound) {
		return nil, fmt.Errorf("querying quality/drawback: %w", err)
	}
	return q, err
}

// CreateQualityDrawback inserts q.
//
// Precondition: q must pass Validate.
func (r *ResourceRepository) CreateQualityDrawback(ctx context.Context, q resource.QualityDrawback) (*resource.QualityDrawback, error) {
	out, err := scanQualityDrawback(r.db.QueryRow(ctx, `
		INSERT INTO resource_qualities_drawbacks (id, name, description, cost, page)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+qdColumns,
		uuid.NewString(), q.Name, q.Description, q.Cost, q.Page,
	))
	if err != nil {
		return nil, fmt.Errorf("inserting quality/drawback: %w", err)
	}
	return out, nil
}

// UpdateQualityDrawback overwrites the entry identified by q.ID.
func (r *ResourceRepository) UpdateQualityDrawback(ctx context.Context, q resource.QualityDrawback) (*resource.QualityDrawback, error) {
	if !validID(q.ID) {
		return nil, resource.ErrNotFound
	}
	out, err := scanQualityDrawback(r.db.QueryRow(ctx, `
		UPDATE resource_qualities_drawbacks
		SET name = $2, description = $3, cost = $4, page = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING `+qdColumns,
		q.ID, q.Name, q.Description, q.Cost, q.Page,
	))
	if err != nil && !errors.Is(err, resource.ErrNotFound) {
		return nil, fmt.Errorf("updating quality/drawback: %w", err)
	}
	return out, err
}

// DeleteQualityDrawback removes an entry.
func (r *ResourceRepository) DeleteQualityDrawback(ctx context.Context, id string) error {
	return r.deleteFrom(ctx, "resource_qualities_drawbacks", id)
}

func (r *ResourceRepository) deleteFrom(ctx context.Context, table, id string) error {
	if !validID(id) {
		return resource.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return resource.ErrNotFound
	}
	return nil
}
