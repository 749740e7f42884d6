package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/humidor/internal/backup"
	"github.com/julianstephens/humidor/internal/config"
	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/lockfile"
	"github.com/julianstephens/humidor/internal/logger"
	"github.com/julianstephens/humidor/internal/storage"
)

type Context struct {
	Ctx      context.Context
	Provider storage.Provider
	Store    *storage.Store
	Config   *config.Config

	// Out and In default to stdout and stdin.
	Out io.Writer
	In  io.Reader

	// Yes answers every confirmation prompt with yes.
	Yes bool

	in *bufio.Reader
}

// NewContext wires a record store over p.
func NewContext(ctx context.Context, p storage.Provider, cfg *config.Config, opts ...storage.Option) *Context {
	return &Context{
		Ctx:      ctx,
		Provider: p,
		Store:    storage.New(p, opts...),
		Config:   cfg,
		Out:      os.Stdout,
		In:       os.Stdin,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on In. Anything but y or yes is a no.
func (c *Context) Confirm(question string) (bool, error) {
	if c.Yes {
		return true, nil
	}
	if c.in == nil {
		c.in = bufio.NewReader(c.In)
	}
	c.Printf("%s [y/N]: ", question)
	response, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// LockPath is the advisory lockfile shared by every humidor process using this config dir.
func (c *Context) LockPath() string {
	return filepath.Join(c.Config.ConfigDir, constants.LockfileName)
}

// AcquireWriteLock holds the process lock for the duration of a mutating command.
func (c *Context) AcquireWriteLock() (release func(), err error) {
	lock, err := lockfile.Acquire(c.LockPath())
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release lock", "error", err)
		}
	}, nil
}

// BackupManager returns the backup manager for the current data file.
func (c *Context) BackupManager() (*backup.Manager, error) {
	return backup.NewManager(c.Provider.GetConfigPath(), c.Config.Backups.Max)
}

// PerformAutomaticBackup creates a backup when enabled, logging instead of failing.
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.Backups.Auto {
		return
	}
	mgr, err := c.BackupManager()
	if err != nil {
		logger.Debug("Automatic backup skipped", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
