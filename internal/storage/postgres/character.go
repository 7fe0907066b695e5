package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/campaign/internal/game/character"
)

// CharacterRepository provides character persistence operations.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const characterSelect = `
	SELECT c.id, c.name, c.category, c.age, c.weight, c.height, c.created_at, c.updated_at,
	       a.character_id IS NOT NULL,
	       COALESCE(a.strength, 0), COALESCE(a.intelligence, 0), COALESCE(a.dexterity, 0),
	       COALESCE(a.perception, 0), COALESCE(a.constitution, 0), COALESCE(a.will_power, 0),
	       s.character_id IS NOT NULL,
	       COALESCE(s.life, 0), COALESCE(s.endurance, 0), COALESCE(s.speed, 0), COALESCE(s.max_load, 0)
	FROM characters c
	LEFT JOIN character_attributes a ON a.character_id = c.id
	LEFT JOIN character_status s ON s.character_id = c.id`

func scanCharacter(row pgx.Row) (*character.Character, error) {
	var (
		c                   character.Character
		attrs               character.Attributes
		status              character.Status
		hasAttrs, hasStatus bool
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.Category, &c.Age, &c.Weight, &c.Height, &c.CreatedAt, &c.UpdatedAt,
		&hasAttrs,
		&attrs.Strength, &attrs.Intelligence, &attrs.Dexterity,
		&attrs.Perception, &attrs.Constitution, &attrs.WillPower,
		&hasStatus,
		&status.Life, &status.Endurance, &status.Speed, &status.MaxLoad,
	); err != nil {
		return nil, err
	}
	if hasAttrs {
		c.Attributes = &attrs
	}
	if hasStatus {
		c.Status = &status
	}
	c.Skills = []character.Skill{}
	c.Traits = []character.Trait{}
	return &c, nil
}

// Create inserts a character with its attribute, status, skill, and trait blocks.
//
// Precondition: c must pass Validate.
// Postcondition: Returns the stored character with ID and timestamps set.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) (*character.Character, error) {
	id := uuid.NewString()
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO characters (id, name, category, age, weight, height)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			id, c.Name, c.Category, c.Age, c.Weight, c.Height,
		); err != nil {
			return fmt.Errorf("inserting character: %w", err)
		}
		return writeCharacterDetails(ctx, tx, id, c)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update overwrites the stored character identified by c.ID, including every detail block.
//
// Precondition: c must pass Validate.
// Postcondition: Returns the updated character or character.ErrNotFound.
func (r *CharacterRepository) Update(ctx context.Context, c *character.Character) (*character.Character, error) {
	if !validID(c.ID) {
		return nil, character.ErrNotFound
	}
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE characters
			SET name = $2, category = $3, age = $4, weight = $5, height = $6, updated_at = NOW()
			WHERE id = $1`,
			c.ID, c.Name, c.Category, c.Age, c.Weight, c.Height,
		)
		if err != nil {
			return fmt.Errorf("updating character: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return character.ErrNotFound
		}
		for _, table := range []string{"character_attributes", "character_status", "character_skills", "character_traits"} {
			if _, err := tx.Exec(ctx, `DELETE FROM `+table+` WHERE character_id = $1`, c.ID); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}
		return writeCharacterDetails(ctx, tx, c.ID, c)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, c.ID)
}

func writeCharacterDetails(ctx context.Context, q querier, id string, c *character.Character) error {
	if a := c.Attributes; a != nil {
		if _, err := q.Exec(ctx, `
			INSERT INTO character_attributes
				(character_id, strength, intelligence, dexterity, perception, constitution, will_power)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			id, a.Strength, a.Intelligence, a.Dexterity, a.Perception, a.Constitution, a.WillPower,
		); err != nil {
			return fmt.Errorf("inserting attributes: %w", err)
		}
	}
	if s := c.Status; s != nil {
		if _, err := q.Exec(ctx, `
			INSERT INTO character_status (character_id, life, endurance, speed, max_load)
			VALUES ($1, $2, $3, $4, $5)`,
			id, s.Life, s.Endurance, s.Speed, s.MaxLoad,
		); err != nil {
			return fmt.Errorf("inserting status: %w", err)
		}
	}
	for i, sk := range c.Skills {
		if _, err := q.Exec(ctx, `
			INSERT INTO character_skills (character_id, position, skill_id, name, level)
			VALUES ($1, $2, $3, $4, $5)`,
			id, i, nullableID(sk.SkillID), sk.Name, sk.Level,
		); err != nil {
			return fmt.Errorf("inserting skill %q: %w", sk.Name, err)
		}
	}
	for i, t := range c.Traits {
		if _, err := q.Exec(ctx, `
			INSERT INTO character_traits (character_id, position, trait_id, name, cost)
			VALUES ($1, $2, $3, $4, $5)`,
			id, i, nullableID(t.TraitID), t.Name, t.Cost,
		); err != nil {
			return fmt.Errorf("inserting trait %q: %w", t.Name, err)
		}
	}
	return nil
}

// Get retrieves a character with every detail block.
//
// Postcondition: Returns the Character or character.ErrNotFound.
func (r *CharacterRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	if !validID(id) {
		return nil, character.ErrNotFound
	}
	c, err := scanCharacter(r.db.QueryRow(ctx, characterSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, character.ErrNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}
	if err := r.loadLists(ctx, map[string]*character.Character{c.ID: c}); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns characters newest first, optionally restricted to one category.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CharacterRepository) List(ctx context.Context, category character.Category) ([]*character.Character, error) {
	rows, err := r.db.Query(ctx,
		characterSelect+` WHERE ($1 = '' OR c.category = $1) ORDER BY c.created_at DESC`,
		string(category),
	)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	chars := make([]*character.Character, 0)
	byID := make(map[string]*character.Character)
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		chars = append(chars, c)
		byID[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	if err := r.loadLists(ctx, byID); err != nil {
		return nil, err
	}
	return chars, nil
}

func (r *CharacterRepository) loadLists(ctx context.Context, byID map[string]*character.Character) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	rows, err := r.db.Query(ctx, `
		SELECT character_id, COALESCE(skill_id::text, ''), name, level
		FROM character_skills WHERE character_id = ANY($1::uuid[])
		ORDER BY character_id, position`, ids)
	if err != nil {
		return fmt.Errorf("listing character skills: %w", err)
	}
	for rows.Next() {
		var owner string
		var sk character.Skill
		if err := rows.Scan(&owner, &sk.SkillID, &sk.Name, &sk.Level); err != nil {
			rows.Close()
			return fmt.Errorf("scanning character skill: %w", err)
		}
		byID[owner].Skills = append(byID[owner].Skills, sk)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("listing character skills: %w", err)
	}

	rows, err = r.db.Query(ctx, `
		SELECT character_id, COALESCE(trait_id::text, ''), name, cost
		FROM character_traits WHERE character_id = ANY($1::uuid[])
		ORDER BY character_id, position`, ids)
	if err != nil {
		return fmt.Errorf("listing character traits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var owner string
		var t character.Trait
		if err := rows.Scan(&owner, &t.TraitID, &t.Name, &t.Cost); err != nil {
			return fmt.Errorf("scanning character trait: %w", err)
		}
		byID[owner].Traits = append(byID[owner].Traits, t)
	}
	return rows.Err()
}

// Delete removes a character and its detail blocks.
//
// Postcondition: Returns nil on success, character.ErrNotFound if no row was deleted.
func (r *CharacterRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return character.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return character.ErrNotFound
	}
	return nil
}

// nullableID maps an empty or malformed catalog reference to NULL.
func nullableID(id string) *string {
	if !validID(id) {
		return nil
	}
	return &id
}
