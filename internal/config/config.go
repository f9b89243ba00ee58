package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const configFileBase = "room_allocator_config"

// Default roster column headers, as produced by the pupils' room choice form
const (
	DefaultNameColumn    = "Select your name. MAKE SURE YOU CLICK YOU!"
	DefaultGenderColumn  = "Gender"
	DefaultChoicesColumn = "Who would you like to share a room with. Choose up to 5. Boys can only choose boys & girls can only choose girls. "
)

// ErrConfigNotFound is returned when no config file exists in the searched locations
var ErrConfigNotFound = errors.New("config file not found in current directory or home directory")

// RosterConfig describes the layout of the pupils roster
type RosterConfig struct {
	NameColumn    string `yaml:"nameColumn" validate:"required"`
	GenderColumn  string `yaml:"genderColumn" validate:"required"`
	ChoicesColumn string `yaml:"choicesColumn" validate:"required"`
	MaleValue     string `yaml:"maleValue" validate:"required"`
	FemaleValue   string `yaml:"femaleValue" validate:"required,nefield=MaleValue"`

	// SheetName is the worksheet read from .xlsx roster files
	SheetName string `yaml:"sheetName" validate:"required"`
}

// AllocationConfig controls the allocation strategies
type AllocationConfig struct {
	Strategy         string        `yaml:"strategy" validate:"required,oneof=greedy strict random"`
	RefineIterations int           `yaml:"refineIterations" validate:"min=1"`
	RandomIterations int           `yaml:"randomIterations" validate:"min=1"`
	Seed             *int64        `yaml:"seed,omitempty"`
	Timeout          time.Duration `yaml:"timeout" validate:"min=0"`

	// AutoSplit divides the room list between boys and girls. When false,
	// ManualBoys and ManualGirls give each group's room capacities.
	AutoSplit   bool  `yaml:"autoSplit"`
	ManualBoys  []int `yaml:"manualBoys,omitempty" validate:"dive,min=1"`
	ManualGirls []int `yaml:"manualGirls,omitempty" validate:"dive,min=1"`
}

// DisplayConfig controls the allocation table layout
type DisplayConfig struct {
	// Slots is the number of pupil columns per room
	Slots int `yaml:"slots" validate:"min=1,max=12"`
}

// SheetsConfig locates the Google Sheets roster and publish target
type SheetsConfig struct {
	RosterSheetID  string `yaml:"rosterSheetID,omitempty"`
	PupilsTab      string `yaml:"pupilsTab" validate:"required"`
	RoomsTab       string `yaml:"roomsTab" validate:"required"`
	PublishSheetID string `yaml:"publishSheetID,omitempty"`
}

// PostgresConfig locates the Postgres roster database
type PostgresConfig struct {
	ConnString string `yaml:"connString,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Roster     RosterConfig     `yaml:"roster"`
	Allocation AllocationConfig `yaml:"allocation"`
	Display    DisplayConfig    `yaml:"display"`
	Sheets     SheetsConfig     `yaml:"sheets"`
	Postgres   PostgresConfig   `yaml:"postgres"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Roster: RosterConfig{
			NameColumn:    DefaultNameColumn,
			GenderColumn:  DefaultGenderColumn,
			ChoicesColumn: DefaultChoicesColumn,
			MaleValue:     "M",
			FemaleValue:   "F",
			SheetName:     "Sheet1",
		},
		Allocation: AllocationConfig{
			Strategy:         "strict",
			RefineIterations: 1000,
			RandomIterations: 2000,
			AutoSplit:        true,
		},
		Display: DisplayConfig{
			Slots: 4,
		},
		Sheets: SheetsConfig{
			PupilsTab: "Pupils",
			RoomsTab:  "Rooms",
		},
	}
}

// LoadWithEnv loads room_allocator_config.<env>.yaml, falling back to
// room_allocator_config.yaml. Defaults are returned when neither exists.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path.
// Fields absent from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration struct and the manual room lists
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if !cfg.Allocation.AutoSplit && len(cfg.Allocation.ManualBoys) == 0 && len(cfg.Allocation.ManualGirls) == 0 {
		return fmt.Errorf("config validation failed: autoSplit is off but no manual room capacities are set")
	}

	return nil
}

// RequireSheets checks the settings needed to read the roster from Google Sheets
func (c *Config) RequireSheets() error {
	if c.Sheets.RosterSheetID == "" {
		return fmt.Errorf("sheets.rosterSheetID must be set to read the roster from Google Sheets")
	}
	return nil
}

// RequirePostgres checks the settings needed to use the Postgres roster
func (c *Config) RequirePostgres() error {
	if c.Postgres.ConnString == "" {
		return fmt.Errorf("postgres.connString must be set to use the Postgres roster")
	}
	return nil
}

// findConfigFile searches for the env-specific then the plain config file in
// the current directory and then the home directory
func findConfigFile(env string) (string, error) {
	var names []string
	if env != "" {
		names = append(names, fmt.Sprintf("%s.%s.yaml", configFileBase, env))
	}
	names = append(names, configFileBase+".yaml")

	for _, path := range searchPaths(names) {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", ErrConfigNotFound
}
