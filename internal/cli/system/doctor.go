package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/humidor/internal/backup"
	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/config"
	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/keyring"
	"github.com/julianstephens/humidor/internal/lockfile"
	"github.com/julianstephens/humidor/internal/models"
	"github.com/julianstephens/humidor/internal/storage"
	"github.com/julianstephens/humidor/internal/validation"
)

// errSkipped marks a check that does not apply to the configured storage.
var errSkipped = errors.New("not applicable")

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Stored payloads", run: checkPayloads, needsDB: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Process lock", run: checkLock, warnOnly: true},
	{name: "Keyring", run: checkKeyring},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkReachable(ctx *cli.Context) error {
	if err := ctx.Provider.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, _, err := ctx.Provider.Get(ctx.Ctx, constants.KeyCigars); err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	return nil
}

func schemaVersions(ctx *cli.Context) (current, latest int, err error) {
	migrator, ok := ctx.Provider.(storage.Migrator)
	if !ok {
		return 0, 0, fmt.Errorf("%w: storage has no schema", errSkipped)
	}
	return migrator.SchemaVersion()
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersions(ctx)
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'humidor migrate')", current, latest)
	}
	return nil
}

// checkPayloads decodes each stored value into its expected shape. Reads
// through the record store would silently treat a bad payload as empty.
func checkPayloads(ctx *cli.Context) error {
	targets := map[string]any{
		constants.KeyCigars:                &[]models.Cigar{},
		constants.KeyJournalEntries:        &[]models.JournalEntry{},
		constants.KeyPremiumMode:           new(bool),
		constants.KeyFreeHumidifierClaimed: new(bool),
	}

	var errs []error
	for _, key := range constants.AllKeys {
		raw, found, err := ctx.Provider.Get(ctx.Ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			continue
		}
		if !found {
			continue
		}
		if err := json.Unmarshal([]byte(raw), targets[key]); err != nil {
			errs = append(errs, fmt.Errorf("%s is malformed: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func checkValidation(ctx *cli.Context) error {
	result := validation.New().Collections(
		ctx.Store.ListCigars(ctx.Ctx),
		ctx.Store.ListJournalEntries(ctx.Ctx),
	)
	if result.HasIssues() {
		return fmt.Errorf("%d problem(s) found, run 'humidor validate' for details", len(result.Issues))
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, backup.ErrUnsupported) {
		return fmt.Errorf("%w: backups only cover local data files", errSkipped)
	}
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s, create one with 'humidor backup create'", mgr.GetBackupDir())
	}
	return nil
}

func checkLock(ctx *cli.Context) error {
	lock, err := lockfile.Acquire(ctx.LockPath())
	if err != nil {
		return err
	}
	return lock.Release()
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Config.DSN != config.PostgresKeyringDSN {
		return fmt.Errorf("%w: DSN is not read from the keyring", errSkipped)
	}
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	_, err := keyring.GetConnectionString()
	return err
}
