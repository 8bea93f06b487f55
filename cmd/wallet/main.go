package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/wingwing524/wallet-client/internal/api"
	"github.com/wingwing524/wallet-client/internal/composer"
	"github.com/wingwing524/wallet-client/internal/config"
	"github.com/wingwing524/wallet-client/internal/log"
	"github.com/wingwing524/wallet-client/internal/session"
	"github.com/wingwing524/wallet-client/internal/storage"
)

type flags struct {
	login    string
	password string
	logout   bool

	search string
	list   bool

	addTitle    string
	addAmount   string
	addCategory string
	addNote     string
}

func main() {
	// Load .env for local development (ignore errors when absent)
	_ = godotenv.Load()

	var f flags
	flag.StringVar(&f.login, "login", "", "log in as username or email")
	flag.StringVar(&f.password, "password", "", "password for -login")
	flag.BoolVar(&f.logout, "logout", false, "sign out and clear the stored token")
	flag.StringVar(&f.search, "search", "", "filter the expense list by query")
	flag.BoolVar(&f.list, "list", false, "print the expense list")
	flag.StringVar(&f.addAmount, "amount", "", "amount or formula for -add (e.g. \"12.50+3*2\")")
	flag.StringVar(&f.addTitle, "add", "", "add an expense with this title")
	flag.StringVar(&f.addCategory, "category", "", "category for -add")
	flag.StringVar(&f.addNote, "note", "", "description for -add")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := log.New(log.Config{Level: level, Component: "wallet"})
	log.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, f, logger); err != nil {
		logger.Error("Fatal error", "error", err)
		fmt.Fprintln(os.Stderr, api.UserMessage(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, f flags, logger *log.Logger) error {
	store, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("open local storage: %w", err)
	}
	defer store.Close()

	client := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithCache(cfg.CacheSize, cfg.CacheTTL),
	)

	sess := session.New(client, store)
	if err := sess.Restore(ctx); err != nil {
		logger.Warn("Session restore failed", "error", err)
	}

	if f.login != "" {
		if err := sess.Login(ctx, f.login, f.password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Printf("Logged in as %s\n", sess.User().Username)
	}
	if f.logout {
		if err := sess.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	}

	if sess.State() != session.Authenticated {
		fmt.Println("Not logged in. Run with -login and -password first.")
		return nil
	}

	app := composer.New(client, sess, store)

	switch {
	case f.addTitle != "" || f.addAmount != "":
		return addExpense(ctx, app, f)
	case f.list || f.search != "":
		return listExpenses(ctx, app, f.search)
	default:
		return renderDashboard(ctx, app)
	}
}

func addExpense(ctx context.Context, app *composer.Composer, f flags) error {
	created, err := app.AddExpense(ctx, composer.ExpenseInput{
		Title:       f.addTitle,
		RawAmount:   f.addAmount,
		Category:    f.addCategory,
		Description: f.addNote,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added %s  %s  (%s)\n", created.Date, created.Amount, created.Category)
	return nil
}

func listExpenses(ctx context.Context, app *composer.Composer, query string) error {
	items, err := app.List(ctx, query)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No expenses found.")
		return nil
	}
	for _, it := range items {
		title := it.Title
		if title == "" {
			title = it.Category
		}
		fmt.Printf("%s  %-30s %10s  %s\n", it.Date, title, it.Amount, it.Category)
	}
	return nil
}

func renderDashboard(ctx context.Context, app *composer.Composer) error {
	d, err := app.Dashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("This month: %s of %s (%.0f%%, %s)\n",
		d.Summary.Total.StringFixed(2),
		d.Budget.Budget.StringFixed(2),
		d.Budget.Percent,
		d.Budget.Status)
	if d.Budget.ExceededBy.IsPositive() {
		fmt.Printf("Over budget by %s\n", d.Budget.ExceededBy.StringFixed(2))
	} else {
		fmt.Printf("Remaining: %s\n", d.Budget.Remaining.StringFixed(2))
	}

	if len(d.Summary.TopCategories) > 0 {
		fmt.Println("Top categories:")
		for _, ct := range d.Summary.TopCategories {
			fmt.Printf("  %-20s %10s\n", ct.Category, ct.Amount.StringFixed(2))
		}
	}

	if len(d.Summary.Recent) > 0 {
		fmt.Println("Recent:")
		for _, e := range d.Summary.Recent {
			title := e.Title
			if title == "" {
				title = e.Category
			}
			fmt.Printf("  %s  %-30s %10s\n", e.Date, title, e.Amount)
		}
	}
	return nil
}
