package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_DefaultConfig(t *testing.T) {
	err := Validate(Default())
	assert.NoError(t, err)
}

func TestValidate_MissingRosterColumn(t *testing.T) {
	cfg := Default()
	cfg.Roster.NameColumn = ""

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SameGenderValues(t *testing.T) {
	cfg := Default()
	cfg.Roster.FemaleValue = cfg.Roster.MaleValue

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "FemaleValue")
}

func TestValidate_UnknownStrategy(t *testing.T) {
	cfg := Default()
	cfg.Allocation.Strategy = "annealing"

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Strategy")
}

func TestValidate_NonPositiveIterations(t *testing.T) {
	cfg := Default()
	cfg.Allocation.RandomIterations = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "RandomIterations")
}

func TestValidate_ManualRoomsRequiredWithoutAutoSplit(t *testing.T) {
	cfg := Default()
	cfg.Allocation.AutoSplit = false

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no manual room capacities")

	cfg.Allocation.ManualBoys = []int{4, 2}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_InvalidManualCapacity(t *testing.T) {
	cfg := Default()
	cfg.Allocation.AutoSplit = false
	cfg.Allocation.ManualGirls = []int{4, 0}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_SlotsOutOfRange(t *testing.T) {
	cfg := Default()
	cfg.Display.Slots = 0

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Slots")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
roster:
  nameColumn: "Name"
  genderColumn: "Sex"
  choicesColumn: "Roommates"
  maleValue: "Boy"
  femaleValue: "Girl"
  sheetName: "Responses"
allocation:
  strategy: random
  randomIterations: 500
  seed: 42
  timeout: 30s
display:
  slots: 6
sheets:
  rosterSheetID: "sheet123"
  publishSheetID: "pub456"
postgres:
  connString: "postgres://localhost/trip"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "Name", cfg.Roster.NameColumn)
	assert.Equal(t, "Sex", cfg.Roster.GenderColumn)
	assert.Equal(t, "Roommates", cfg.Roster.ChoicesColumn)
	assert.Equal(t, "Boy", cfg.Roster.MaleValue)
	assert.Equal(t, "Girl", cfg.Roster.FemaleValue)
	assert.Equal(t, "Responses", cfg.Roster.SheetName)

	assert.Equal(t, "random", cfg.Allocation.Strategy)
	assert.Equal(t, 500, cfg.Allocation.RandomIterations)
	require.NotNil(t, cfg.Allocation.Seed)
	assert.Equal(t, int64(42), *cfg.Allocation.Seed)
	assert.Equal(t, 30*time.Second, cfg.Allocation.Timeout)

	assert.Equal(t, 6, cfg.Display.Slots)
	assert.Equal(t, "sheet123", cfg.Sheets.RosterSheetID)
	assert.Equal(t, "pub456", cfg.Sheets.PublishSheetID)
	assert.Equal(t, "postgres://localhost/trip", cfg.Postgres.ConnString)
	assert.NoError(t, cfg.RequireSheets())
	assert.NoError(t, cfg.RequirePostgres())
}

func TestLoadFromPath_PartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial_config.yaml")

	partialConfig := `
allocation:
  strategy: greedy
`

	err := os.WriteFile(configPath, []byte(partialConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "greedy", cfg.Allocation.Strategy)
	assert.Equal(t, 1000, cfg.Allocation.RefineIterations)
	assert.True(t, cfg.Allocation.AutoSplit)
	assert.Nil(t, cfg.Allocation.Seed)
	assert.Equal(t, DefaultNameColumn, cfg.Roster.NameColumn)
	assert.Equal(t, "M", cfg.Roster.MaleValue)
	assert.Equal(t, 4, cfg.Display.Slots)
	assert.Error(t, cfg.RequireSheets())
	assert.Error(t, cfg.RequirePostgres())
}

func TestLoadFromPath_InvalidStrategy(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_strategy.yaml")

	err := os.WriteFile(configPath, []byte("allocation:\n  strategy: fastest\n"), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
roster:
  nameColumn: "Name"
    invalid indentation
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadWithEnv_PrefersEnvFile(t *testing.T) {
	tmpDir := t.TempDir()
	chdirForTest(t, tmpDir)
	t.Setenv("HOME", tmpDir)

	require.NoError(t, os.WriteFile(configFileBase+".yaml", []byte("allocation:\n  strategy: greedy\n"), 0644))
	require.NoError(t, os.WriteFile(configFileBase+".test.yaml", []byte("allocation:\n  strategy: random\n"), 0644))

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "random", cfg.Allocation.Strategy)

	cfg, err = LoadWithEnv("prod")
	require.NoError(t, err)
	assert.Equal(t, "greedy", cfg.Allocation.Strategy)
}

func TestLoadWithEnv_DefaultsWhenMissing(t *testing.T) {
	tmpDir := t.TempDir()
	chdirForTest(t, tmpDir)
	t.Setenv("HOME", tmpDir)

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
