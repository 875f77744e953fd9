package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/karn30chavda/VerdantView/internal/service"
)

type tripExportCmd struct {
	trip int64
	out  string
}

func (*tripExportCmd) Name() string     { return "trip-export" }
func (*tripExportCmd) Synopsis() string { return "export one trip and its expenses to a file" }
func (*tripExportCmd) Usage() string    { return "trip-export -trip <id> -out <file>\n" }

func (c *tripExportCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.trip, "trip", 0, "trip id (required)")
	f.StringVar(&c.out, "out", "", "output file (required)")
}

func (c *tripExportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.out == "" {
		fmt.Fprintln(os.Stderr, "Error: -out is required")
		return subcommands.ExitUsageError
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	doc, err := service.NewTripService(st).ExportTrip(ctx, c.trip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting trip: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeJSON(c.out, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Exported trip %d to %s (%d expenses)\n", c.trip, c.out, len(doc.Expenses))
	return subcommands.ExitSuccess
}

type tripImportCmd struct {
	in   string
	into int64
}

func (*tripImportCmd) Name() string     { return "trip-import" }
func (*tripImportCmd) Synopsis() string { return "import a trip export file" }
func (*tripImportCmd) Usage() string {
	return `trip-import -in <file> [-into <trip-id>]

  Without -into, creates a new trip with a freshly assigned identifier.
  With -into, merges the file's expenses into the existing trip.
  All identifiers in the file are ignored and reassigned.
`
}

func (c *tripImportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "input file (required)")
	f.Int64Var(&c.into, "into", 0, "merge into this existing trip instead of creating a new one")
}

func (c *tripImportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", c.in, err)
		return subcommands.ExitFailure
	}
	doc, err := service.ParseTripExport(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", c.in, err)
		return subcommands.ExitFailure
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}
	svc := service.NewTripService(st)

	if c.into != 0 {
		if err := svc.ImportTripMerge(ctx, c.into, doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error merging trip: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Merged %d expenses into trip %d\n", len(doc.Expenses), c.into)
		return subcommands.ExitSuccess
	}

	trip, err := svc.ImportTripAsNew(ctx, doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing trip: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported trip as %d: %s\n", trip.ID, trip.Name)
	return subcommands.ExitSuccess
}

type exportCmd struct {
	out string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the whole database to a file" }
func (*exportCmd) Usage() string    { return "export -out <file>\n" }

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.out, "out", "", "output file (required)")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.out == "" {
		fmt.Fprintln(os.Stderr, "Error: -out is required")
		return subcommands.ExitUsageError
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	doc, err := service.NewBackupService(st).ExportAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := writeJSON(c.out, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", c.out, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Exported database to %s\n", c.out)
	return subcommands.ExitSuccess
}

type importCmd struct {
	in string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a whole-database export file" }
func (*importCmd) Usage() string {
	return `import -in <file>

  Appends the file's records to the current database. Existing data is never
  replaced; identifiers are reassigned, and each imported trip's expenses are
  rewritten to point at the trip's new identifier.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.in, "in", "", "input file (required)")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.in == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", c.in, err)
		return subcommands.ExitFailure
	}
	doc, err := service.ParseBackup(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", c.in, err)
		return subcommands.ExitFailure
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	if err := service.NewBackupService(st).ImportAll(ctx, doc); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %s\n", c.in)
	return subcommands.ExitSuccess
}

type wipeCmd struct {
	yes bool
}

func (*wipeCmd) Name() string     { return "wipe" }
func (*wipeCmd) Synopsis() string { return "clear all data except trips" }
func (*wipeCmd) Usage() string {
	return `wipe -yes

  Clears expenses, categories, reminders, settings and savings transactions,
  then restores defaults. Trips and trip expenses are preserved.
`
}

func (c *wipeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "confirm the wipe")
}

func (c *wipeCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(os.Stderr, "Refusing to wipe without -yes")
		return subcommands.ExitUsageError
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	if err := service.NewBackupService(st).Wipe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error wiping: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Database wiped (trips preserved)")
	return subcommands.ExitSuccess
}

type orphansCmd struct{}

func (*orphansCmd) Name() string     { return "orphans" }
func (*orphansCmd) Synopsis() string { return "remove trip expenses whose trip was deleted" }
func (*orphansCmd) Usage() string    { return "orphans\n" }
func (*orphansCmd) SetFlags(f *flag.FlagSet) {}

func (c *orphansCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	n, err := service.NewBackupService(st).SweepOrphans(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sweeping orphans: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Removed %d orphaned trip expenses\n", n)
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	month string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show the monthly budget summary" }
func (*summaryCmd) Usage() string    { return "summary [-month YYYY-MM] (default: current month)\n" }

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "month", "", "month to summarize, YYYY-MM")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if c.month != "" {
		t, err := time.ParseInLocation("2006-01", c.month, time.Local)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid month %q (want YYYY-MM)\n", c.month)
			return subcommands.ExitUsageError
		}
		year, month = t.Year(), t.Month()
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	sum, err := service.NewBudgetService(st).MonthSummary(ctx, year, month, time.Local)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing summary: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s %d\n", sum.Month, sum.Year)
	fmt.Printf("income:    %s\n", sum.Income)
	fmt.Printf("expenses:  %s\n", sum.Expenses)
	fmt.Printf("budget:    %s\n", sum.Budget)
	fmt.Printf("remaining: %s\n", sum.Remaining)
	fmt.Printf("savings:   %s%%\n", sum.SavingsRate.Mul(decimal.NewFromInt(100)).Round(1))
	return subcommands.ExitSuccess
}

// writeJSON marshals v with indentation and writes it to path.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
