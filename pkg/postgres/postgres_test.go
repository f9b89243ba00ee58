package postgres

import (
	"context"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
)

// testDatabaseEnv names a disposable database used by the integration tests
const testDatabaseEnv = "TRIP_ROOMS_TEST_DATABASE_URL"

func TestMigrationsAreEmbedded(t *testing.T) {
	content, err := fs.ReadFile(migrationsFS, "migrations/001_roster.sql")
	require.NoError(t, err)
	assert.Contains(t, string(content), "CREATE TABLE pupil")
	assert.Contains(t, string(content), "CREATE TABLE room")
}

func newTestDB(t *testing.T) *DB {
	t.Helper()
	connString := os.Getenv(testDatabaseEnv)
	if connString == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}

	ctx := context.Background()
	db, err := NewDB(ctx, connString)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.RunMigrations(ctx)
	require.NoError(t, err)
	return db
}

func TestReplaceRoster_RoundTripKeepsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	pupils := []model.Pupil{
		{Name: "Zoe", Gender: model.GenderFemale, RawChoices: "Amy"},
		{Name: "Amy", Gender: model.GenderFemale, RawChoices: "Zoe"},
		{Name: "Ben", Gender: model.GenderMale, RawChoices: ""},
	}
	rooms := []model.RoomSpec{{Label: "R9", Capacity: 2}, {Label: "R1", Capacity: 4}}

	require.NoError(t, db.ReplaceRoster(ctx, pupils, rooms))

	gotPupils, err := db.ListPupils(ctx)
	require.NoError(t, err)
	assert.Equal(t, pupils, gotPupils)

	gotRooms, err := db.ListRooms(ctx)
	require.NoError(t, err)
	assert.Equal(t, rooms, gotRooms)

	require.NoError(t, db.ReplaceRoster(ctx, pupils[:1], rooms[:1]))
	gotPupils, err = db.ListPupils(ctx)
	require.NoError(t, err)
	assert.Len(t, gotPupils, 1)
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	db := newTestDB(t)

	applied, err := db.RunMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
}
