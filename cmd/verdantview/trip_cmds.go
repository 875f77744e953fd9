package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/service"
)

type tripCreateCmd struct {
	name    string
	members string
}

func (*tripCreateCmd) Name() string     { return "trip-create" }
func (*tripCreateCmd) Synopsis() string { return "create a group trip" }
func (*tripCreateCmd) Usage() string {
	return `trip-create -name <name> -members <a,b,c>

  Creates an active trip with the given comma-separated member roster.
`
}

func (c *tripCreateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "trip name (required)")
	f.StringVar(&c.members, "members", "", "comma-separated member names (required)")
}

func (c *tripCreateCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.members == "" {
		fmt.Fprintln(os.Stderr, "Error: -name and -members are required")
		return subcommands.ExitUsageError
	}

	var members []string
	for _, m := range strings.Split(c.members, ",") {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	trip, err := service.NewTripService(st).CreateTrip(ctx, c.name, members)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating trip: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Created trip %d: %s with %s\n", trip.ID, trip.Name, strings.Join(trip.Members, ", "))
	return subcommands.ExitSuccess
}

type tripListCmd struct{}

func (*tripListCmd) Name() string             { return "trip-list" }
func (*tripListCmd) Synopsis() string         { return "list trips" }
func (*tripListCmd) Usage() string            { return "trip-list\n" }
func (*tripListCmd) SetFlags(f *flag.FlagSet) {}

func (c *tripListCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	trips, err := st.ListTrips(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing trips: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, t := range trips {
		fmt.Printf("%5d  %s  %-9s %s [%s]\n",
			t.ID, formatDate(t.CreatedAt), t.Status, t.Name, strings.Join(t.Members, ", "))
	}
	return subcommands.ExitSuccess
}

type tripStatusCmd struct {
	id     int64
	status string
}

func (*tripStatusCmd) Name() string     { return "trip-status" }
func (*tripStatusCmd) Synopsis() string { return "set a trip's status" }
func (*tripStatusCmd) Usage() string    { return "trip-status -id <id> -status active|completed\n" }

func (c *tripStatusCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "trip id (required)")
	f.StringVar(&c.status, "status", "", "new status: active or completed (required)")
}

func (c *tripStatusCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	if err := service.NewTripService(st).UpdateTripStatus(ctx, c.id, c.status); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating trip status: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Trip %d is now %s\n", c.id, c.status)
	return subcommands.ExitSuccess
}

type tripDeleteCmd struct {
	id int64
}

func (*tripDeleteCmd) Name() string     { return "trip-delete" }
func (*tripDeleteCmd) Synopsis() string { return "delete a trip" }
func (*tripDeleteCmd) Usage() string {
	return `trip-delete -id <id>

  Deletes the trip record and roster. The trip's expenses are not deleted;
  run "orphans" to clean them up.
`
}

func (c *tripDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "trip id (required)")
}

func (c *tripDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	if err := service.NewTripService(st).DeleteTrip(ctx, c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting trip: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted trip %d\n", c.id)
	return subcommands.ExitSuccess
}

type tripExpenseAddCmd struct {
	trip   int64
	payer  string
	amount float64
	desc   string
	date   string
}

func (*tripExpenseAddCmd) Name() string     { return "trip-expense-add" }
func (*tripExpenseAddCmd) Synopsis() string { return "record a spend within a trip" }
func (*tripExpenseAddCmd) Usage() string {
	return `trip-expense-add -trip <id> -payer <name> -amount <amount> [-desc <text>] [-date YYYY-MM-DD]

  Records a trip expense. The payer should be one of the trip's members;
  otherwise the spend is excluded from settlement.
`
}

func (c *tripExpenseAddCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.trip, "trip", 0, "trip id (required)")
	f.StringVar(&c.payer, "payer", "", "payer name (required)")
	f.Float64Var(&c.amount, "amount", 0, "amount (required)")
	f.StringVar(&c.desc, "desc", "", "description")
	f.StringVar(&c.date, "date", "", "date, YYYY-MM-DD (default today)")
}

func (c *tripExpenseAddCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.trip == 0 || c.payer == "" {
		fmt.Fprintln(os.Stderr, "Error: -trip and -payer are required")
		return subcommands.ExitUsageError
	}
	date, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	e := &models.TripExpense{
		TripID:      c.trip,
		PayerName:   c.payer,
		Amount:      c.amount,
		Description: c.desc,
		Date:        date,
	}
	if err := service.NewTripService(st).AddTripExpense(ctx, e); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding trip expense: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added trip expense %d: %s paid %.2f\n", e.ID, e.PayerName, e.Amount)
	return subcommands.ExitSuccess
}

type tripExpenseListCmd struct {
	trip int64
}

func (*tripExpenseListCmd) Name() string     { return "trip-expense-list" }
func (*tripExpenseListCmd) Synopsis() string { return "list a trip's expenses" }
func (*tripExpenseListCmd) Usage() string    { return "trip-expense-list -trip <id>\n" }

func (c *tripExpenseListCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.trip, "trip", 0, "trip id (required)")
}

func (c *tripExpenseListCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	trip, expenses, err := service.NewTripService(st).TripWithExpenses(ctx, c.trip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing trip expenses: %v\n", err)
		return subcommands.ExitFailure
	}
	if trip == nil {
		fmt.Fprintf(os.Stderr, "Error: trip %d not found\n", c.trip)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s [%s]\n", trip.Name, strings.Join(trip.Members, ", "))
	for _, e := range expenses {
		fmt.Printf("%5d  %s  %-12s %9.2f  %s\n",
			e.ID, formatDate(e.Date), e.PayerName, e.Amount, e.Description)
	}
	return subcommands.ExitSuccess
}

type settleCmd struct {
	trip int64
}

func (*settleCmd) Name() string     { return "settle" }
func (*settleCmd) Synopsis() string { return "compute who pays whom to settle a trip" }
func (*settleCmd) Usage() string {
	return `settle -trip <id>

  Computes the minimal point-to-point transfers that equalize each member's
  net contribution.
`
}

func (c *settleCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.trip, "trip", 0, "trip id (required)")
}

func (c *settleCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	transfers, err := service.NewTripService(st).Settle(ctx, c.trip)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error settling trip: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(transfers) == 0 {
		fmt.Println("All settled up.")
		return subcommands.ExitSuccess
	}
	for _, t := range transfers {
		fmt.Printf("%s pays %s %.2f\n", t.From, t.To, t.Amount)
	}
	return subcommands.ExitSuccess
}
