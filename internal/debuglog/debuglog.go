// ABOUTME: Opt-in file logger gated on BIBLIOTECA_DEBUG
// ABOUTME: Keeps fetch failures off the terminal while the TUI owns the screen

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar enables the debug log when set to any non-empty value.
const EnvVar = "BIBLIOTECA_DEBUG"

var (
	mu      sync.Mutex
	logFile *os.File
)

// Init opens debug.log inside configDir when EnvVar is set in the
// environment. Returns whether logging is active; an active logger is
// paired with Close. All logging functions are no-ops while inactive.
func Init(configDir string) bool {
	if os.Getenv(EnvVar) == "" || configDir == "" {
		return false
	}

	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return false
	}
	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return false
	}
	logFile = f
	return true
}

// Close closes the log file and deactivates logging.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Log writes a timestamped line to the debug log.
func Log(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, msg)
}

// Fetch records a failed list fetch together with the sequence number
// that requested it, so a discarded stale response can be told apart
// from the fetch the user is actually looking at.
func Fetch(list string, seq uint64, err error) {
	if err == nil {
		return
	}
	Log("fetch %s#%d: %v", list, seq, err)
}
