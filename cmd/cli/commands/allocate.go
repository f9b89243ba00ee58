package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/jakechorley/trip-rooms/internal/config"
	"github.com/jakechorley/trip-rooms/pkg/core/allocator"
	"github.com/jakechorley/trip-rooms/pkg/core/services"
	"github.com/jakechorley/trip-rooms/pkg/roster"
	"github.com/jakechorley/trip-rooms/pkg/spreadsheet"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

type allocateFlags struct {
	source           string
	pupils           string
	sheet            string
	rooms            string
	strategy         string
	iterations       int
	refineIterations int
	seed             int64
	manualBoys       string
	manualGirls      string
	output           string
	publish          bool
	timeout          time.Duration
}

func (f *allocateFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.source, "source", SourceFiles, "Roster source: files, sheets or postgres")
	flags.StringVar(&f.pupils, "pupils", "", "Pupils file (.xlsx or .csv) for --source files")
	flags.StringVar(&f.sheet, "sheet", "", "Worksheet to read from an .xlsx pupils file (defaults to roster.sheetName)")
	flags.StringVar(&f.rooms, "rooms", "", "Rooms file (header-less label,capacity .csv) for --source files")
	flags.StringVar(&f.strategy, "strategy", "", "Allocation strategy: "+strings.Join(allocator.Strategies, ", "))
	flags.IntVar(&f.iterations, "iterations", 0, "Restarts of the random strategy")
	flags.IntVar(&f.refineIterations, "refine-iterations", 0, "Local search moves of the greedy and strict strategies")
	flags.Int64Var(&f.seed, "seed", 0, "Seed for the random strategy")
	flags.StringVar(&f.manualBoys, "manual-boys", "", "Comma-separated boys' room capacities (disables auto split)")
	flags.StringVar(&f.manualGirls, "manual-girls", "", "Comma-separated girls' room capacities (disables auto split)")
	flags.StringVar(&f.output, "output", "", "Export the allocation to an .xlsx or .csv file")
	flags.BoolVar(&f.publish, "publish", false, "Publish the allocation to a new tab of sheets.publishSheetID")
	flags.DurationVar(&f.timeout, "timeout", 0, "Stop allocating after this long (defaults to allocation.timeout)")
}

// options applies the flags that were set on top of the configured defaults
func (f *allocateFlags) options(flags *pflag.FlagSet, cfg *config.Config) (services.AllocateOptions, error) {
	opts := services.AllocateOptionsFromConfig(cfg)

	if flags.Changed("strategy") {
		opts.Strategy = f.strategy
	}
	if flags.Changed("iterations") {
		opts.RandomIterations = f.iterations
	}
	if flags.Changed("refine-iterations") {
		opts.RefineIterations = f.refineIterations
	}
	if flags.Changed("seed") {
		seed := f.seed
		opts.Seed = &seed
	}

	if flags.Changed("manual-boys") || flags.Changed("manual-girls") {
		boys, err := roster.ParseCapacities(f.manualBoys)
		if err != nil {
			return opts, fmt.Errorf("--manual-boys: %w", err)
		}
		girls, err := roster.ParseCapacities(f.manualGirls)
		if err != nil {
			return opts, fmt.Errorf("--manual-girls: %w", err)
		}
		opts.AutoSplit = false
		opts.ManualBoys = boys
		opts.ManualGirls = girls
	}

	return opts, nil
}

// AllocateCmd creates the allocate command
func AllocateCmd(app *AppContext) *cobra.Command {
	f := &allocateFlags{}

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Allocate pupils to rooms from their roommate choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd.Flags(), app.Cfg)
			if err != nil {
				return err
			}

			app.Logger.Debug("allocate command",
				zap.String("source", f.source),
				zap.String("strategy", opts.Strategy),
				zap.Bool("auto_split", opts.AutoSplit))

			if f.publish && app.Cfg.Sheets.PublishSheetID == "" {
				return fmt.Errorf("--publish requires sheets.publishSheetID to be set")
			}

			source, err := app.RosterSource(SourceOptions{
				Name:       f.source,
				PupilsPath: f.pupils,
				RoomsPath:  f.rooms,
				SheetName:  f.sheet,
			})
			if err != nil {
				return err
			}

			timeout := app.Cfg.Allocation.Timeout
			if cmd.Flags().Changed("timeout") {
				timeout = f.timeout
			}

			ctx := app.Ctx
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			report, err := services.AllocateRooms(ctx, source, app.Logger, opts)
			if err != nil {
				return explainAllocationError(err)
			}

			printReport(os.Stdout, report)

			if f.output != "" {
				if err := spreadsheet.Write(f.output, report.Tables()...); err != nil {
					return fmt.Errorf("failed to export allocation: %w", err)
				}
				fmt.Printf("✓ Allocation exported to %s\n", f.output)
			}

			if f.publish {
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				if err := client.PublishAllocation(app.Ctx, app.Cfg.Sheets.PublishSheetID, report.TabTitle(), report.Tables()...); err != nil {
					return fmt.Errorf("failed to publish allocation: %w", err)
				}
				fmt.Printf("✓ Allocation published to tab %q\n", report.TabTitle())
			}

			return nil
		},
	}

	f.register(cmd.Flags())

	return cmd
}

// explainAllocationError adds advice to errors the user can fix by changing the rooms
func explainAllocationError(err error) error {
	switch {
	case errors.Is(err, allocator.ErrCapacityShortfall):
		return fmt.Errorf("%w\nAdd rooms, or set capacities with --manual-boys and --manual-girls", err)
	case errors.Is(err, allocator.ErrNoViableAllocation):
		return fmt.Errorf("%w\nTry more --iterations, or use --strategy strict", err)
	case errors.Is(err, allocator.ErrNoRoomForCapacity):
		return fmt.Errorf("%w\nManual capacities must match rooms in the rooms list", err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("allocation did not finish before the timeout: %w", err)
	}
	return err
}

// statusColor returns the color used for a match status
func statusColor(status allocator.MatchStatus) string {
	switch status {
	case allocator.StatusMutual:
		return colorGreen
	case allocator.StatusOneWay:
		return colorYellow
	}
	return colorRed
}

// printReport prints the allocation table, the per-group summary, unmatched
// pupils and any warnings
func printReport(w io.Writer, report *services.AllocationReport) {
	header := services.DisplayHeader(report.Slots)

	rows := make([][]string, len(report.Display))
	for i, row := range report.Display {
		rows[i] = spreadsheet.Strings(row.Cells())
	}

	// Calculate column widths
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Fprintf(w, "\nFinal Allocation (%s strategy, run %s)\n\n", report.Strategy, report.RunID)

	for i, h := range header {
		fmt.Fprintf(w, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(w)

	total := 0
	for _, width := range widths {
		total += width + 2
	}
	fmt.Fprintln(w, strings.Repeat("-", total))

	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(w, "%-*s  ", widths[i], cell)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	for _, g := range report.Groups {
		counts := g.Counts()
		fmt.Fprintf(w, "%-6s %sMutual: %d%s  %sOne-way: %d%s  %sNo match: %d%s  (%d pupils, %d beds)\n",
			g.Gender.Label(),
			colorGreen, counts.Mutual, colorReset,
			colorYellow, counts.OneWay, colorReset,
			colorRed, counts.NoMatch, colorReset,
			g.Pupils, sum(g.Capacities))
	}

	var unmatched []services.EvaluationRow
	for _, row := range report.Evaluation {
		if row.Status == allocator.StatusNoMatch {
			unmatched = append(unmatched, row)
		}
	}
	if len(unmatched) > 0 {
		fmt.Fprintf(w, "\nPupils without a chosen roommate:\n")
		for _, row := range unmatched {
			fmt.Fprintf(w, "  %s✗%s %s (%s, room %s)\n", statusColor(row.Status), colorReset, row.Pupil, row.Gender, row.RoomLabel)
		}
	}

	if len(report.Warnings) > 0 {
		fmt.Fprintf(w, "\n%s⚠️  Warnings:%s\n", colorYellow, colorReset)
		for _, warning := range report.Warnings {
			fmt.Fprintf(w, "  %s%s%s\n", colorDim, warning, colorReset)
		}
	}

	fmt.Fprintln(w)
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
