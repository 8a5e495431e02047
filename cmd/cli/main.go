package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ferndalepractice/oncall-rota/pkg/core/roster"
	"github.com/ferndalepractice/oncall-rota/pkg/core/services"
	"github.com/ferndalepractice/oncall-rota/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	loader services.RequestLoader
	logger *zap.Logger
	ctx    context.Context
}

var (
	verbose bool
	logDir  string
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oncall",
		Short: "On-call roster generator - one worker per day, one month at a time",
		Long: `Generates a monthly on-call roster from a request file describing the
workers, their caps and targets, day preferences and pinned days. Produces
a full roster when one exists, or a best-effort draft with the days that
need human arbitration.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.InitLogger(verbose, logDir)
			if err != nil {
				return err
			}
			app = &App{
				loader: services.FileLoader{},
				logger: logger,
				ctx:    context.Background(),
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Also write JSON logs to a timestamped file in this directory")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(daysCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve <request.yaml>",
		Short: "Generate the roster for the month described by a request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetString("seed")

			result, err := services.SolveRoster(app.ctx, app.loader, app.logger, args[0], seed)
			if err != nil {
				return err
			}

			printOutcome(result)
			return nil
		},
	}

	cmd.Flags().String("seed", "", "Override the request file's seed to get an alternative roster")

	return cmd
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <request.yaml>",
		Short: "Validate the pinned days of a request without running the solver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.CheckLocks(app.ctx, app.loader, app.logger, args[0])
			if err != nil {
				return err
			}

			if len(result.Conflicts) == 0 {
				fmt.Printf("\n✓ %d pinned day(s), no conflicts\n\n", result.Locks)
				return nil
			}

			fmt.Printf("\n✗ %d conflict(s) among %d pinned day(s):\n\n", len(result.Conflicts), result.Locks)
			printConflicts(result.Conflicts)
			return nil
		},
	}
}

func daysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "days <year> <month>",
		Short: "Show the day layout of a month (weekdays and weekend blocks)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year must be a number: %w", err)
			}
			monthNum, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("month must be a number: %w", err)
			}
			if monthNum < 1 || monthNum > 12 {
				return fmt.Errorf("month must be 1..12, got %d", monthNum)
			}

			month := time.Month(monthNum)
			days := roster.DaysInMonth(year, month)

			fmt.Printf("\n%s %d has %d days:\n\n", month, year, days)
			for day := 1; day <= days; day++ {
				date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
				marker := ""
				switch date.Weekday() {
				case time.Friday, time.Saturday, time.Sunday:
					marker = "  [weekend]"
				}
				fmt.Printf("  %2d. %-9s%s\n", day, date.Weekday(), marker)
			}
			fmt.Println()

			return nil
		},
	}
}

func printOutcome(result *services.SolveRosterResult) {
	outcome := result.Outcome

	switch outcome.Status {
	case roster.StatusInvalidLocks:
		fmt.Printf("\n✗ Pinned days are inconsistent - fix these before solving:\n\n")
		printConflicts(outcome.Conflicts)
		return

	case roster.StatusInfeasible:
		fmt.Printf("\n✗ No full roster found:\n")
		for _, reason := range outcome.Reasons {
			fmt.Printf("  - %s\n", reason)
		}
		if outcome.Proposal != nil {
			printProposal(result, outcome.Proposal)
		}
		return
	}

	switch outcome.Status {
	case roster.StatusScheduled:
		fmt.Printf("\n✓ Roster generated - every worker exactly on target\n\n")
	case roster.StatusScheduledRelaxed:
		fmt.Printf("\n✓ Roster generated - targets relaxed, caps respected\n\n")
	case roster.StatusScheduledDraft:
		fmt.Printf("\n✓ Roster generated by the draft pass - review before publishing\n\n")
	}

	names := workerNames(outcome.Stats)
	for day := 1; day <= result.Days; day++ {
		id := outcome.Assignments[day]
		fmt.Printf("  %2d. %-9s %s\n", day, weekdayOf(result.Year, result.Month, day), names[id])
	}

	fmt.Printf("\nShift totals:\n")
	for _, ws := range outcome.Stats.PerWorker {
		fmt.Printf("  %-20s %2d shift(s), %d weekend\n", ws.Name, ws.Shifts, ws.WeekendShifts)
	}
	if outcome.Stats.SplitWeekends > 0 {
		fmt.Printf("\nSplit weekends (same worker Friday+Sunday): %d\n", outcome.Stats.SplitWeekends)
	}
	if outcome.Seed != "" {
		fmt.Printf("\nSeed: %s\n", outcome.Seed)
	}
	fmt.Println()
}

func printProposal(result *services.SolveRosterResult, prop *roster.Proposal) {
	fmt.Printf("\nBest-effort draft (%d of %d days filled, %d need arbitration):\n\n",
		len(prop.Days), result.Days, len(prop.Open))

	open := make(map[int][]string, len(prop.Open))
	for _, od := range prop.Open {
		open[od.Day] = od.Candidates
	}

	for day := 1; day <= result.Days; day++ {
		id, filled := prop.Days[day]
		candidates, needsArbitration := open[day]

		switch {
		case !filled:
			fmt.Printf("  %2d. %-9s (nobody can legally take this day)\n", day, weekdayOf(result.Year, result.Month, day))
		case needsArbitration:
			fmt.Printf("  %2d. %-9s %s?  candidates: %v\n", day, weekdayOf(result.Year, result.Month, day), id, candidates)
		default:
			fmt.Printf("  %2d. %-9s %s\n", day, weekdayOf(result.Year, result.Month, day), id)
		}
	}
	fmt.Println()
}

func printConflicts(conflicts []roster.LockConflict) {
	for _, c := range conflicts {
		if c.Day > 0 {
			fmt.Printf("  ✗ day %2d [%s] %s\n", c.Day, c.Rule, c.Description)
		} else {
			fmt.Printf("  ✗ [%s] %s\n", c.Rule, c.Description)
		}
	}
	fmt.Println()
}

// workerNames maps worker ids to display names using the stats block.
func workerNames(stats *roster.Stats) map[string]string {
	names := make(map[string]string, len(stats.PerWorker))
	for _, ws := range stats.PerWorker {
		names[ws.ID] = ws.Name
	}
	return names
}

func weekdayOf(year int, month time.Month, day int) time.Weekday {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday()
}
