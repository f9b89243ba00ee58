package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/internal/config"
	"github.com/jakechorley/trip-rooms/pkg/clients/sheetsclient"
	"github.com/jakechorley/trip-rooms/pkg/core/services"
	"github.com/jakechorley/trip-rooms/pkg/postgres"
	"github.com/jakechorley/trip-rooms/pkg/spreadsheet"
)

// Roster source names accepted by --source
const (
	SourceFiles    = "files"
	SourceSheets   = "sheets"
	SourcePostgres = "postgres"
)

// AppContext holds the application dependencies shared across all commands.
// The Sheets client and the database are connected on first use.
type AppContext struct {
	Cfg    *config.Config
	Env    string
	Logger *zap.Logger
	Ctx    context.Context

	sheetsClient *sheetsclient.Client
	database     *postgres.DB
}

// SheetsClient returns the Google Sheets client, running the OAuth flow on first use
func (app *AppContext) SheetsClient() (*sheetsclient.Client, error) {
	if app.sheetsClient != nil {
		return app.sheetsClient, nil
	}

	app.Logger.Info("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env, app.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully")

	app.sheetsClient = client
	return client, nil
}

// Database returns the Postgres roster database, connecting on first use
func (app *AppContext) Database() (*postgres.DB, error) {
	if app.database != nil {
		return app.database, nil
	}

	if err := app.Cfg.RequirePostgres(); err != nil {
		return nil, err
	}

	app.Logger.Info("Connecting to database")
	db, err := postgres.NewDB(app.Ctx, app.Cfg.Postgres.ConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Logger.Debug("Database connected successfully")

	app.database = db
	return db, nil
}

// SourceOptions selects where the roster is read from
type SourceOptions struct {
	Name string

	// PupilsPath and RoomsPath are only used by the files source
	PupilsPath string
	RoomsPath  string

	// SheetName overrides the configured worksheet of an .xlsx pupils file
	SheetName string
}

// RosterSource returns the roster source selected by opts
func (app *AppContext) RosterSource(opts SourceOptions) (services.RosterSource, error) {
	switch opts.Name {
	case SourceFiles:
		if opts.PupilsPath == "" || opts.RoomsPath == "" {
			return nil, fmt.Errorf("--pupils and --rooms are required with --source %s", SourceFiles)
		}
		rosterCfg := app.Cfg.Roster
		if opts.SheetName != "" {
			rosterCfg.SheetName = opts.SheetName
		}
		return spreadsheet.NewFileSource(opts.PupilsPath, opts.RoomsPath, rosterCfg, app.Logger), nil

	case SourceSheets:
		if err := app.Cfg.RequireSheets(); err != nil {
			return nil, err
		}
		client, err := app.SheetsClient()
		if err != nil {
			return nil, err
		}
		return sheetsclient.NewRosterSource(client, app.Cfg, app.Logger), nil

	case SourcePostgres:
		db, err := app.Database()
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	return nil, fmt.Errorf("unknown roster source %q (want %s, %s or %s)", opts.Name, SourceFiles, SourceSheets, SourcePostgres)
}

// Close releases the database connection, if one was opened
func (app *AppContext) Close() {
	if app.database != nil {
		app.database.Close()
		app.database = nil
	}
}
