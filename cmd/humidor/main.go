package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/cli/account"
	"github.com/julianstephens/humidor/internal/cli/backups"
	"github.com/julianstephens/humidor/internal/cli/cigars"
	"github.com/julianstephens/humidor/internal/cli/discover"
	"github.com/julianstephens/humidor/internal/cli/journal"
	"github.com/julianstephens/humidor/internal/cli/system"
	"github.com/julianstephens/humidor/internal/config"
	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/errors"
	"github.com/julianstephens/humidor/internal/logger"
	"github.com/julianstephens/humidor/internal/storage"
)

var CLI struct {
	Version   kong.VersionFlag
	ConfigDir string `help:"Directory holding config.yaml, logs and the lockfile." type:"path" env:"HUMIDOR_CONFIG_DIR"`
	DSN       string `name:"dsn" help:"Data file path, ':memory:', or PostgreSQL connection string. Use 'postgres' to read the connection string from the OS keyring. Credentials must NOT be embedded in a connection string given here."`
	Debug     bool   `help:"Log debug output to stderr."`
	Yes       bool   `short:"y" help:"Answer yes to every confirmation prompt."`

	Init     system.InitCmd     `cmd:"" help:"Initialize humidor storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored cigars and journal entries for invalid records."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`

	Cigar struct {
		Add    cigars.AddCmd    `cmd:"" help:"Add a cigar to your humidor."`
		List   cigars.ListCmd   `cmd:"" help:"List cigars in your humidor." default:"1"`
		Show   cigars.ShowCmd   `cmd:"" help:"Show a cigar."`
		Edit   cigars.EditCmd   `cmd:"" help:"Edit a cigar."`
		Remove cigars.RemoveCmd `cmd:"" help:"Remove a cigar."`
	} `cmd:"" help:"Manage the cigars in your humidor."`
	Journal struct {
		Add    journal.AddCmd    `cmd:"" help:"Record a tasting."`
		List   journal.ListCmd   `cmd:"" help:"List journal entries." default:"1"`
		Show   journal.ShowCmd   `cmd:"" help:"Show a journal entry."`
		Edit   journal.EditCmd   `cmd:"" help:"Edit a journal entry."`
		Remove journal.RemoveCmd `cmd:"" help:"Remove a journal entry."`
	} `cmd:"" help:"Manage your tasting journal."`

	Premium    account.PremiumCmd    `cmd:"" help:"Manage premium membership."`
	Humidifier account.HumidifierCmd `cmd:"" help:"Claim the free humidifier perk."`
	Discover   struct {
		List discover.ListCmd `cmd:"" help:"Show recommendations." default:"1"`
		Add  discover.AddCmd  `cmd:"" help:"Add a recommendation to your humidor."`
	} `cmd:"" help:"Browse premium recommendations."`
	Summary account.SummaryCmd `cmd:"" help:"Show collection statistics."`
	Clear   account.ClearCmd   `cmd:"" help:"Delete all cigars, journal entries and membership flags."`

	Backup struct {
		Create  backups.CreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.ListCmd    `cmd:"" help:"List available backups."`
		Restore backups.RestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability." default:"1"`
	} `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Track the cigars in your humidor and keep a tasting journal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(config.ResolveDir(CLI.ConfigDir))
	if err != nil {
		errors.Fatal(err)
	}
	cfg.ApplyFlags(CLI.DSN, CLI.Debug)

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir, Level: cfg.LogLevel}); err != nil {
		errors.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	command := strings.Fields(kctx.Command())[0]

	// Keyring commands must work before any connection string is stored
	dsn := constants.MemoryDSN
	if command != "keyring" {
		if dsn, err = cfg.StorageDSN(); err != nil {
			errors.Fatal(err)
		}
	}

	provider, err := storage.Open(dsn)
	if err != nil {
		errors.Fatal(err)
	}

	// init creates the storage and doctor reports on it, so both load it themselves
	if command != "init" && command != "doctor" {
		if err := provider.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	appCtx := cli.NewContext(ctx, provider, cfg)
	appCtx.Yes = CLI.Yes

	runErr := kctx.Run(appCtx)
	if err := provider.Close(); err != nil {
		logger.Warn("failed to close storage", "error", err)
	}
	if runErr != nil {
		errors.Fatal(runErr)
	}
}
