package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/karn30chavda/VerdantView/internal/models"
	"github.com/karn30chavda/VerdantView/internal/service"
)

type expenseAddCmd struct {
	title   string
	amount  float64
	cat     string
	typ     string
	mode    string
	date    string
	notes   string
	exclude bool
}

func (*expenseAddCmd) Name() string     { return "expense-add" }
func (*expenseAddCmd) Synopsis() string { return "record an income or expense entry" }
func (*expenseAddCmd) Usage() string {
	return `expense-add -title <title> -amount <amount> [-category <name>] [-type income|expense] [-mode Cash|Card|Online|Other] [-date YYYY-MM-DD] [-notes <text>] [-exclude]

  Records a new entry. The store assigns the identifier.
`
}

func (c *expenseAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "entry title (required)")
	f.Float64Var(&c.amount, "amount", 0, "entry amount (required, non-negative)")
	f.StringVar(&c.cat, "category", "Other", "category name")
	f.StringVar(&c.typ, "type", models.TypeExpense, "entry type: income or expense")
	f.StringVar(&c.mode, "mode", models.PaymentCash, "payment mode: Cash, Card, Online or Other")
	f.StringVar(&c.date, "date", "", "entry date, YYYY-MM-DD (default today)")
	f.StringVar(&c.notes, "notes", "", "optional notes")
	f.BoolVar(&c.exclude, "exclude", false, "exclude from monthly budget")
}

func (c *expenseAddCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.title == "" || c.amount < 0 {
		fmt.Fprintln(os.Stderr, "Error: -title is required and -amount must be non-negative")
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

	e := &models.Expense{
		Title:             c.title,
		Amount:            c.amount,
		Category:          c.cat,
		Type:              c.typ,
		PaymentMode:       c.mode,
		Date:              date,
		Notes:             c.notes,
		ExcludeFromBudget: c.exclude,
	}
	if err := st.CreateExpense(ctx, e); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding expense: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added entry %d: %s %.2f (%s)\n", e.ID, e.Title, e.Amount, e.Type)
	return subcommands.ExitSuccess
}

type expenseListCmd struct{}

func (*expenseListCmd) Name() string             { return "expense-list" }
func (*expenseListCmd) Synopsis() string         { return "list all entries" }
func (*expenseListCmd) Usage() string            { return "expense-list\n" }
func (*expenseListCmd) SetFlags(f *flag.FlagSet) {}

func (c *expenseListCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	expenses, err := st.ListExpenses(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing expenses: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, e := range expenses {
		fmt.Printf("%5d  %s  %-8s %9.2f  %-14s %s\n",
			e.ID, formatDate(e.Date), e.Type, e.Amount, e.Category, e.Title)
	}
	return subcommands.ExitSuccess
}

type categoryAddCmd struct {
	name string
}

func (*categoryAddCmd) Name() string     { return "category-add" }
func (*categoryAddCmd) Synopsis() string { return "add a category" }
func (*categoryAddCmd) Usage() string    { return "category-add -name <name>\n" }

func (c *categoryAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "category name (required, unique)")
}

func (c *categoryAddCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required")
		return subcommands.ExitUsageError
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	cat := &models.Category{Name: c.name}
	if err := st.CreateCategory(ctx, cat); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding category: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added category %d: %s\n", cat.ID, cat.Name)
	return subcommands.ExitSuccess
}

type categoryListCmd struct{}

func (*categoryListCmd) Name() string             { return "category-list" }
func (*categoryListCmd) Synopsis() string         { return "list categories" }
func (*categoryListCmd) Usage() string            { return "category-list\n" }
func (*categoryListCmd) SetFlags(f *flag.FlagSet) {}

func (c *categoryListCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	categories, err := st.ListCategories(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing categories: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, cat := range categories {
		fmt.Printf("%5d  %s\n", cat.ID, cat.Name)
	}
	return subcommands.ExitSuccess
}

type categoryDeleteCmd struct {
	id int64
}

func (*categoryDeleteCmd) Name() string     { return "category-delete" }
func (*categoryDeleteCmd) Synopsis() string { return "delete a user-created category" }
func (*categoryDeleteCmd) Usage() string {
	return `category-delete -id <id>

  Deletes a category. Default categories are protected and cannot be deleted.
`
}

func (c *categoryDeleteCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "category id (required)")
}

func (c *categoryDeleteCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	if err := st.DeleteCategory(ctx, c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting category: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Deleted category %d\n", c.id)
	return subcommands.ExitSuccess
}

type reminderAddCmd struct {
	title    string
	date     string
	interval int
}

func (*reminderAddCmd) Name() string     { return "reminder-add" }
func (*reminderAddCmd) Synopsis() string { return "add a reminder" }
func (*reminderAddCmd) Usage() string {
	return `reminder-add -title <title> -date YYYY-MM-DD [-every <days>]

  Adds a reminder. With -every the reminder recurs every <days> days and is
  never deleted by the sweeper.
`
}

func (c *reminderAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "title", "", "reminder title (required)")
	f.StringVar(&c.date, "date", "", "due date, YYYY-MM-DD (required)")
	f.IntVar(&c.interval, "every", 0, "recurrence interval in days (0 = one-shot)")
}

func (c *reminderAddCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.title == "" || c.date == "" {
		fmt.Fprintln(os.Stderr, "Error: -title and -date are required")
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

	r := &models.Reminder{
		Title:          c.title,
		Date:           date,
		IsRecurring:    c.interval > 0,
		RepeatInterval: c.interval,
	}
	if err := st.CreateReminder(ctx, r); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding reminder: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added reminder %d: %s due %s\n", r.ID, r.Title, formatDate(r.Date))
	return subcommands.ExitSuccess
}

type reminderListCmd struct{}

func (*reminderListCmd) Name() string             { return "reminder-list" }
func (*reminderListCmd) Synopsis() string         { return "list reminders" }
func (*reminderListCmd) Usage() string            { return "reminder-list\n" }
func (*reminderListCmd) SetFlags(f *flag.FlagSet) {}

func (c *reminderListCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	reminders, err := st.ListReminders(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing reminders: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, r := range reminders {
		recur := "one-shot"
		if r.IsRecurring {
			recur = fmt.Sprintf("every %d days", r.RepeatInterval)
		}
		fmt.Printf("%5d  %s  %-14s %s\n", r.ID, formatDate(r.Date), recur, r.Title)
	}
	return subcommands.ExitSuccess
}

type sweepCmd struct{}

func (*sweepCmd) Name() string     { return "sweep" }
func (*sweepCmd) Synopsis() string { return "retire or advance overdue reminders" }
func (*sweepCmd) Usage() string {
	return `sweep

  Deletes overdue one-shot reminders and advances overdue recurring ones by
  their repeat interval, anchored to the previous due date.
`
}
func (*sweepCmd) SetFlags(f *flag.FlagSet) {}

func (c *sweepCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	advanced, removed, err := service.NewReminderSweeper(st).Sweep(ctx, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sweeping reminders: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sweep done: %d advanced, %d removed\n", advanced, removed)
	return subcommands.ExitSuccess
}

type savingsAddCmd struct {
	amount float64
	typ    string
	date   string
	note   string
}

func (*savingsAddCmd) Name() string     { return "savings-add" }
func (*savingsAddCmd) Synopsis() string { return "record a savings transaction" }
func (*savingsAddCmd) Usage() string {
	return "savings-add -amount <amount> [-type deposit|withdrawal|goal_update] [-date YYYY-MM-DD] [-note <text>]\n"
}

func (c *savingsAddCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "transaction amount (required)")
	f.StringVar(&c.typ, "type", models.SavingsDeposit, "transaction type")
	f.StringVar(&c.date, "date", "", "transaction date, YYYY-MM-DD (default today)")
	f.StringVar(&c.note, "note", "", "optional note")
}

func (c *savingsAddCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	date, err := parseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	tx := &models.SavingsTransaction{
		Amount: c.amount,
		Date:   date,
		Type:   c.typ,
		Note:   c.note,
	}
	if err := st.CreateSavingsTransaction(ctx, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding savings transaction: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Added savings transaction %d: %s %.2f\n", tx.ID, tx.Type, tx.Amount)
	return subcommands.ExitSuccess
}

type savingsListCmd struct{}

func (*savingsListCmd) Name() string             { return "savings-list" }
func (*savingsListCmd) Synopsis() string         { return "list savings transactions" }
func (*savingsListCmd) Usage() string            { return "savings-list\n" }
func (*savingsListCmd) SetFlags(f *flag.FlagSet) {}

func (c *savingsListCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	txs, err := st.ListSavingsTransactions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing savings transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, tx := range txs {
		fmt.Printf("%5d  %s  %-12s %9.2f  %s\n", tx.ID, formatDate(tx.Date), tx.Type, tx.Amount, tx.Note)
	}
	return subcommands.ExitSuccess
}

type settingsShowCmd struct{}

func (*settingsShowCmd) Name() string             { return "settings" }
func (*settingsShowCmd) Synopsis() string         { return "show application settings" }
func (*settingsShowCmd) Usage() string            { return "settings\n" }
func (*settingsShowCmd) SetFlags(f *flag.FlagSet) {}

func (c *settingsShowCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	a, err := st.GetSettings(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	if a == nil {
		fmt.Fprintln(os.Stderr, "Error: settings not initialized")
		return subcommands.ExitFailure
	}

	fmt.Printf("user:            %s\n", a.UserName)
	fmt.Printf("theme:           %s\n", a.Theme)
	fmt.Printf("monthly budget:  %.2f\n", a.MonthlyBudget)
	fmt.Printf("fund goal:       %.2f\n", a.EmergencyFundGoal)
	fmt.Printf("fund current:    %.2f\n", a.EmergencyFundCurrent)
	return subcommands.ExitSuccess
}

type settingsSetCmd struct {
	budget      float64
	fundGoal    float64
	fundCurrent float64
	name        string
	theme       string
}

func (*settingsSetCmd) Name() string     { return "settings-set" }
func (*settingsSetCmd) Synopsis() string { return "update application settings" }
func (*settingsSetCmd) Usage() string {
	return `settings-set [-budget <amount>] [-fund-goal <amount>] [-fund-current <amount>] [-name <name>] [-theme <theme>]

  Updates only the flags given; unset fields keep their stored values.
`
}

func (c *settingsSetCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.budget, "budget", -1, "monthly budget")
	f.Float64Var(&c.fundGoal, "fund-goal", -1, "emergency fund goal")
	f.Float64Var(&c.fundCurrent, "fund-current", -1, "emergency fund current amount")
	f.StringVar(&c.name, "name", "", "user display name")
	f.StringVar(&c.theme, "theme", "", "theme name")
}

func (c *settingsSetCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	patch := &models.SettingsPatch{}
	if c.budget >= 0 {
		patch.MonthlyBudget = &c.budget
	}
	if c.fundGoal >= 0 {
		patch.EmergencyFundGoal = &c.fundGoal
	}
	if c.fundCurrent >= 0 {
		patch.EmergencyFundCurrent = &c.fundCurrent
	}
	if c.name != "" {
		patch.UserName = &c.name
	}
	if c.theme != "" {
		patch.Theme = &c.theme
	}

	st, err := openStore(ctx, args)
	if err != nil {
		return subcommands.ExitFailure
	}

	if err := st.UpdateSettings(ctx, patch); err != nil {
		fmt.Fprintf(os.Stderr, "Error updating settings: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Settings updated")
	return subcommands.ExitSuccess
}
