package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/trip-rooms/pkg/core/services"
)

// ImportRosterCmd creates the importRoster command
func ImportRosterCmd(app *AppContext) *cobra.Command {
	var (
		sourceName string
		pupilsPath string
		roomsPath  string
		sheetName  string
	)

	cmd := &cobra.Command{
		Use:   "importRoster",
		Short: "Load pupils and rooms into Postgres, replacing the stored roster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourceName == SourcePostgres {
				return fmt.Errorf("cannot import the roster from postgres into itself")
			}

			source, err := app.RosterSource(SourceOptions{
				Name:       sourceName,
				PupilsPath: pupilsPath,
				RoomsPath:  roomsPath,
				SheetName:  sheetName,
			})
			if err != nil {
				return err
			}

			db, err := app.Database()
			if err != nil {
				return err
			}

			result, err := services.ImportRoster(app.Ctx, source, db, app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Roster imported successfully!\n\n")
			fmt.Printf("Pupils: %d (%d boys, %d girls)\n", result.Pupils, result.Boys, result.Girls)
			fmt.Printf("Rooms:  %d\n\n", result.Rooms)

			return nil
		},
	}

	cmd.Flags().StringVar(&sourceName, "source", SourceFiles, "Roster source: files or sheets")
	cmd.Flags().StringVar(&pupilsPath, "pupils", "", "Pupils file (.xlsx or .csv) for --source files")
	cmd.Flags().StringVar(&roomsPath, "rooms", "", "Rooms file (header-less label,capacity .csv) for --source files")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet to read from an .xlsx pupils file")

	return cmd
}
