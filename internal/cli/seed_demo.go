package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ruckusreads/ruckus/internal/database"
	"github.com/ruckusreads/ruckus/internal/demo"
)

const DefaultDemoDatabasePath = "./demo/demo.db"

// SeedDemoCommand recreates a demo database from scratch.
type SeedDemoCommand struct {
	DatabasePath string
	UserID       string
}

func NewSeedDemoCommand() *SeedDemoCommand {
	return &SeedDemoCommand{}
}

func (cmd *SeedDemoCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-demo", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", DefaultDemoDatabasePath, "Path to the demo database file (replaced if it exists)")
	fs.StringVar(&cmd.UserID, "user", demo.DefaultUserID, "User id that owns the demo library")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-demo [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create a demo database with public domain books, categories, notes and a club.\n")
		fmt.Fprintf(os.Stderr, "Serve it with DEMO_MODE=true AUTH_DEFAULT_USER_ID=<user> DATABASE_PATH=<db>.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cmd.DatabasePath == "" {
		fs.Usage()
		return fmt.Errorf("database path is required")
	}
	return nil
}

func (cmd *SeedDemoCommand) Run() error {
	log.Printf("Generating demo database at %s...", cmd.DatabasePath)

	if err := os.Remove(cmd.DatabasePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing demo database: %w", err)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("create database: %w", err)
	}
	defer db.Close()

	result, err := demo.Seed(context.Background(), db.DB, cmd.UserID)
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	log.Printf("Demo database generated: %d books, %d library entries, %d categories, %d notes, %d clubs, %d profiles",
		result.Books, result.Entries, result.Categories, result.Notes, result.Clubs, result.Profiles)
	return nil
}
