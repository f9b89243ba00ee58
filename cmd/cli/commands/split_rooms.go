package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/pkg/core/model"
	"github.com/jakechorley/trip-rooms/pkg/core/services"
	"github.com/jakechorley/trip-rooms/pkg/spreadsheet"
)

// SplitRoomsCmd creates the splitRooms command
func SplitRoomsCmd(app *AppContext) *cobra.Command {
	var (
		sourceName string
		pupilsPath string
		roomsPath  string
		boys       int
		girls      int
	)

	cmd := &cobra.Command{
		Use:   "splitRooms",
		Short: "Show how the rooms would be split between boys and girls",
		Long: `Show the automatic split of the rooms list between boys and girls.

Pupil counts are taken from --boys and --girls when both are given,
otherwise they are counted from the roster.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			countsGiven := cmd.Flags().Changed("boys") && cmd.Flags().Changed("girls")

			var source services.RosterSource
			if countsGiven && sourceName == SourceFiles {
				if roomsPath == "" {
					return fmt.Errorf("--rooms is required with --source %s", SourceFiles)
				}
				source = spreadsheet.NewFileSource("", roomsPath, app.Cfg.Roster, app.Logger)
			} else {
				var err error
				source, err = app.RosterSource(SourceOptions{Name: sourceName, PupilsPath: pupilsPath, RoomsPath: roomsPath})
				if err != nil {
					return err
				}
			}

			rooms, err := source.ListRooms(app.Ctx)
			if err != nil {
				return fmt.Errorf("failed to fetch rooms: %w", err)
			}

			if !countsGiven {
				pupils, err := source.ListPupils(app.Ctx)
				if err != nil {
					return fmt.Errorf("failed to fetch pupils: %w", err)
				}
				boys = len(model.FilterByGender(pupils, model.GenderMale))
				girls = len(model.FilterByGender(pupils, model.GenderFemale))
			}

			app.Logger.Debug("splitRooms command", zap.Int("boys", boys), zap.Int("girls", girls), zap.Int("rooms", len(rooms)))

			printSplit(os.Stdout, services.SplitRooms(rooms, boys, girls, app.Logger))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceName, "source", SourceFiles, "Roster source: files, sheets or postgres")
	cmd.Flags().StringVar(&pupilsPath, "pupils", "", "Pupils file (.xlsx or .csv) for --source files")
	cmd.Flags().StringVar(&roomsPath, "rooms", "", "Rooms file (header-less label,capacity .csv) for --source files")
	cmd.Flags().IntVar(&boys, "boys", 0, "Number of boys")
	cmd.Flags().IntVar(&girls, "girls", 0, "Number of girls")

	return cmd
}

func printSplit(w io.Writer, split services.RoomSplit) {
	fmt.Fprintln(w)
	printSplitGroup(w, model.GenderMale.Label(), split.Boys, split.BoysPupils, split.BoysShortfall())
	printSplitGroup(w, model.GenderFemale.Label(), split.Girls, split.GirlsPupils, split.GirlsShortfall())
	fmt.Fprintln(w)
}

func printSplitGroup(w io.Writer, label string, rooms []model.RoomSpec, pupils, shortfall int) {
	fmt.Fprintf(w, "%s: %d pupils, %d beds in %d rooms\n", label, pupils, model.TotalCapacity(rooms), len(rooms))
	for _, r := range rooms {
		fmt.Fprintf(w, "  %-12s %d\n", r.Label, r.Capacity)
	}
	if shortfall > 0 {
		fmt.Fprintf(w, "  %s⚠️  %d %s without a bed%s\n", colorRed, shortfall, label, colorReset)
	}
}
