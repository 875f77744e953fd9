// Command verdantview is the local-first personal finance tracker CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/google/subcommands"

	"github.com/karn30chavda/VerdantView/internal/app"
	"github.com/karn30chavda/VerdantView/internal/storage"
	"github.com/karn30chavda/VerdantView/pkg/logging"
)

var dbPath = flag.String("db", getEnv("DB_PATH", "./data/verdantview.db"), "path to the database file")

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(subcommands.HelpCommand(), "")
	commander.Register(subcommands.FlagsCommand(), "")
	commander.Register(subcommands.CommandsCommand(), "")

	commander.Register(&expenseAddCmd{}, "expenses")
	commander.Register(&expenseListCmd{}, "expenses")
	commander.Register(&categoryAddCmd{}, "categories")
	commander.Register(&categoryListCmd{}, "categories")
	commander.Register(&categoryDeleteCmd{}, "categories")
	commander.Register(&reminderAddCmd{}, "reminders")
	commander.Register(&reminderListCmd{}, "reminders")
	commander.Register(&sweepCmd{}, "reminders")
	commander.Register(&savingsAddCmd{}, "savings")
	commander.Register(&savingsListCmd{}, "savings")
	commander.Register(&settingsShowCmd{}, "settings")
	commander.Register(&settingsSetCmd{}, "settings")
	commander.Register(&tripCreateCmd{}, "trips")
	commander.Register(&tripListCmd{}, "trips")
	commander.Register(&tripStatusCmd{}, "trips")
	commander.Register(&tripDeleteCmd{}, "trips")
	commander.Register(&tripExpenseAddCmd{}, "trips")
	commander.Register(&tripExpenseListCmd{}, "trips")
	commander.Register(&settleCmd{}, "trips")
	commander.Register(&tripExportCmd{}, "data")
	commander.Register(&tripImportCmd{}, "data")
	commander.Register(&exportCmd{}, "data")
	commander.Register(&importCmd{}, "data")
	commander.Register(&wipeCmd{}, "data")
	commander.Register(&orphansCmd{}, "data")
	commander.Register(&summaryCmd{}, "data")

	flag.Parse()

	application := app.New(*dbPath)
	defer application.Close()

	os.Exit(int(commander.Execute(context.Background(), application)))
}

// openStore resolves the shared store handle from the App passed through
// the commander. Failure here means storage is unavailable for the session.
func openStore(ctx context.Context, args []interface{}) (storage.Store, error) {
	a := args[0].(*app.App)
	st, err := a.Store(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: storage unavailable: %v\n", err)
		return nil, err
	}
	return st, nil
}

// parseDate parses a YYYY-MM-DD flag value; empty means now.
func parseDate(value string) (int64, error) {
	if value == "" {
		return time.Now().Unix(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t.Unix(), nil
}

func formatDate(unix int64) string {
	return time.Unix(unix, 0).Format("2006-01-02")
}
