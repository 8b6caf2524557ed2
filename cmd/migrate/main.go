// ABOUTME: Schema migration utility for the rolodex database
// ABOUTME: Backs up SQLite files, applies the schema and seeds default categories

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/harperreed/rolodex/config"
	"github.com/harperreed/rolodex/db"
	"github.com/harperreed/rolodex/logging"
)

type options struct {
	databaseURL string
	dryRun      bool
	backup      bool
	seed        bool
}

func main() {
	var opts options
	flag.StringVar(&opts.databaseURL, "db", "", "Database URL or SQLite path (default: from config)")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Show what would happen without making changes")
	flag.BoolVar(&opts.backup, "backup", true, "Create backup of a SQLite database before migration")
	flag.BoolVar(&opts.seed, "seed", false, "Create the default categories")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	logger, err := logging.New(logging.Options{Verbose: *verbose})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if opts.databaseURL == "" {
		cfg, err := config.Load("")
		if err != nil {
			logger.Fatal("failed to load config", zap.Error(err))
		}
		opts.databaseURL = cfg.Database.URL
	}

	if err := migrate(context.Background(), opts, os.Stdout, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migration completed successfully")
}

func migrate(ctx context.Context, opts options, out io.Writer, logger *zap.Logger) error {
	if opts.dryRun {
		_, _ = fmt.Fprintln(out, "-- [DRY RUN] statements that would be applied")
		for _, stmt := range db.SchemaStatements() {
			_, _ = fmt.Fprintf(out, "%s;\n", stmt)
		}
		if opts.seed {
			_, _ = fmt.Fprintf(out, "-- [DRY RUN] would seed categories: %v\n", db.DefaultCategories)
		}
		return nil
	}

	if path := db.SQLitePath(opts.databaseURL); path != "" && opts.backup {
		backupPath, err := backupFile(path)
		if err != nil {
			return err
		}
		if backupPath != "" {
			logger.Info("backup created", zap.String("path", backupPath))
		}
	}

	store, err := db.Connect(opts.databaseURL, db.WithLogger(logger.Named("db")))
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	before, err := store.Tables(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current tables: %w", err)
	}
	logger.Info("current tables", zap.Strings("tables", before))

	if err := store.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	if opts.seed {
		n, err := store.SeedCategories(ctx, db.DefaultCategories)
		if err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		logger.Info("seeded categories", zap.Int("created", n))
	}
	return nil
}

// backupFile copies path next to itself with a timestamp suffix.
// A missing file has nothing to back up and returns "".
func backupFile(path string) (string, error) {
	input, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read database: %w", err)
	}

	backupPath := fmt.Sprintf("%s.backup.%s", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, input, 0600); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}
	return backupPath, nil
}
