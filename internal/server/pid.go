package server

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/adrg/xdg"
)

// PIDFileName is the file 'chronos serve' records its process id in.
const PIDFileName = "chronos-serve.pid"

// Errors
var (
	ErrNotRunning     = fmt.Errorf("server is not running")
	ErrAlreadyRunning = fmt.Errorf("server is already running")
)

// PIDFile guards against two servers sharing one record store.
type PIDFile struct {
	path string
}

// NewPIDFile returns the PID file at path, or the XDG state location when
// path is empty.
func NewPIDFile(path string) *PIDFile {
	if path == "" {
		path = filepath.Join(xdg.StateHome, "chronos", PIDFileName)
	}
	return &PIDFile{path: path}
}

// Acquire records the current process. It fails with ErrAlreadyRunning when
// a live process already holds the file.
func (p *PIDFile) Acquire() error {
	if pid := p.RunningPID(); pid > 0 && pid != os.Getpid() {
		return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0755); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}
	if err := os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Read returns the recorded process id.
func (p *PIDFile) Read() (int, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrNotRunning
		}
		return 0, fmt.Errorf("failed to read PID file: %w", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid PID in file: %w", err)
	}
	return pid, nil
}

// RunningPID returns the recorded pid if that process is alive, or 0.
func (p *PIDFile) RunningPID() int {
	pid, err := p.Read()
	if err != nil || !processAlive(pid) {
		return 0
	}
	return pid
}

// Release removes the file.
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// Path returns the PID file path.
func (p *PIDFile) Path() string {
	return p.path
}

func processAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// FindProcess always succeeds on Unix; signal 0 probes for existence.
	return process.Signal(syscall.Signal(0)) == nil
}
