// Package lockfile provides the advisory lock that keeps two humidor
// processes from interleaving read-modify-write cycles on the same data.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/humidor/internal/logger"
)

var findProcessFunc = ps.FindProcess

// ErrLocked is matched by the error returned when another live process owns the lock.
var ErrLocked = errors.New("humidor data is locked by another process")

// HeldError names the process holding the lock.
type HeldError struct {
	PID        int
	Executable string
}

func (e *HeldError) Error() string {
	return fmt.Sprintf("%v (pid %d, %s)", ErrLocked, e.PID, e.Executable)
}

func (e *HeldError) Is(target error) bool {
	return target == ErrLocked
}

// Lock is a held lockfile.
type Lock struct {
	path    string
	content string
}

// Acquire takes the lock at path. A lockfile whose owner is no longer running
// (or whose PID now belongs to a different program) is stale and taken over.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	content := fmt.Sprintf("%d|%s", os.Getpid(), selfExecutable())
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err == nil {
			_, werr := f.WriteString(content)
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Lock acquired", "path", path)
			return &Lock{path: path, content: content}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		held, err := owner(path)
		if err != nil {
			return nil, err
		}
		if held != nil {
			return nil, held
		}

		logger.Warn("Removing stale lockfile", "path", path)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("failed to acquire lock at %s", path)
}

// owner returns the live holder of the lock at path, or nil when the lock is stale.
func owner(path string) (*HeldError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	pidStr, exe, _ := strings.Cut(strings.TrimSpace(string(data)), "|")
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		// Unparseable content is treated as stale
		return nil, nil
	}

	proc, err := findProcessFunc(pid)
	if err != nil || proc == nil {
		return nil, nil
	}
	if exe != "" && proc.Executable() != exe {
		return nil, nil
	}
	return &HeldError{PID: pid, Executable: proc.Executable()}, nil
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lockfile: %w", err)
	}
	if string(data) != l.content {
		logger.Warn("Lockfile was taken over, leaving it in place", "path", l.path)
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	logger.Debug("Lock released", "path", l.path)
	return nil
}

// Path returns the lockfile location.
func (l *Lock) Path() string {
	return l.path
}

func selfExecutable() string {
	if proc, err := findProcessFunc(os.Getpid()); err == nil && proc != nil {
		return proc.Executable()
	}
	return filepath.Base(os.Args[0])
}
