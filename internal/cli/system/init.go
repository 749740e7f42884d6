package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/storage"
	"github.com/julianstephens/humidor/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing data file before initialization."`
	Source string `help:"Data file or connection string to copy the collection from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := os.MkdirAll(ctx.Config.ConfigDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	release, err := ctx.AcquireWriteLock()
	if err != nil {
		return err
	}
	defer release()

	if c.Force {
		if err := c.removeExisting(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Provider.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized humidor storage at: %s\n", ctx.Provider.GetConfigPath())

	if _, err := os.Stat(ctx.Config.Path()); os.IsNotExist(err) {
		if err := ctx.Config.Save(); err != nil {
			return err
		}
		ctx.Printf("Wrote config to: %s\n", ctx.Config.Path())
	}

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Println("Copy completed successfully!")
	}
	return nil
}

// removeExisting deletes the local data file. Databases on a server are left alone.
func (c *InitCmd) removeExisting(ctx *cli.Context) error {
	dataPath := ctx.Provider.GetConfigPath()
	switch storage.DetectKind(dataPath) {
	case storage.KindSQLite, storage.KindJSON:
	default:
		return fmt.Errorf("--force only applies to local data files, not %s", dataPath)
	}

	if abs, err := filepath.Abs(dataPath); err == nil {
		dataPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dataPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dataPath)
		}
	}

	if _, err := os.Stat(dataPath); err == nil {
		if err := ctx.Provider.Close(); err != nil {
			return fmt.Errorf("failed to close existing data file: %w", err)
		}
		if err := os.Remove(dataPath); err != nil {
			return fmt.Errorf("failed to delete existing data file: %w", err)
		}
		ctx.Printf("Deleted existing data file at: %s\n", dataPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing data file: %w", err)
	}
	return nil
}

// copyData copies the stored payloads key by key, so any medium can be the source.
func (c *InitCmd) copyData(ctx *cli.Context) error {
	source := strings.TrimSpace(c.Source)
	if storage.DetectKind(source) == storage.KindPostgres {
		if ok, err := postgres.ValidateConnString(source); !ok {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return err
		}
	}

	src, err := storage.Open(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source: %w", err)
	}
	defer src.Close()

	for _, key := range constants.AllKeys {
		value, found, err := src.Get(ctx.Ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !found {
			ctx.Printf("  Skipped %s (not set)\n", key)
			continue
		}
		if err := ctx.Provider.Set(ctx.Ctx, key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		ctx.Printf("  Copied %s\n", key)
	}

	ctx.Printf("    %d cigars, %d journal entries\n",
		len(ctx.Store.ListCigars(ctx.Ctx)), len(ctx.Store.ListJournalEntries(ctx.Ctx)))
	return nil
}
