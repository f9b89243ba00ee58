package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// ListPupils retrieves all pupils in roster order
func (db *DB) ListPupils(ctx context.Context) ([]model.Pupil, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT name, gender, choices
		FROM pupil
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pupils: %w", err)
	}
	defer rows.Close()

	pupils := []model.Pupil{}
	for rows.Next() {
		var p model.Pupil
		var gender string
		if err := rows.Scan(&p.Name, &gender, &p.RawChoices); err != nil {
			return nil, fmt.Errorf("failed to scan pupil: %w", err)
		}
		p.Gender = model.Gender(gender)
		pupils = append(pupils, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pupils: %w", err)
	}

	return pupils, nil
}

// ListRooms retrieves all rooms in list order
func (db *DB) ListRooms(ctx context.Context) ([]model.RoomSpec, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT label, capacity
		FROM room
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	rooms := []model.RoomSpec{}
	for rows.Next() {
		var r model.RoomSpec
		if err := rows.Scan(&r.Label, &r.Capacity); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}

	return rooms, nil
}

// ReplaceRoster replaces the stored pupils and rooms in a single transaction
func (db *DB) ReplaceRoster(ctx context.Context, pupils []model.Pupil, rooms []model.RoomSpec) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM pupil`); err != nil {
		return fmt.Errorf("failed to clear pupils: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM room`); err != nil {
		return fmt.Errorf("failed to clear rooms: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"pupil"},
		[]string{"id", "position", "name", "gender", "choices"},
		pgx.CopyFromSlice(len(pupils), func(i int) ([]any, error) {
			p := pupils[i]
			return []any{uuid.New(), i, p.Name, string(p.Gender), p.RawChoices}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to insert pupils: %w", err)
	}

	for i, r := range rooms {
		_, err := tx.Exec(ctx, `
			INSERT INTO room (label, capacity, position)
			VALUES ($1, $2, $3)
		`, r.Label, r.Capacity, i)
		if err != nil {
			return fmt.Errorf("failed to insert room %q: %w", r.Label, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
