package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/vk/bitconf/internal/backend"
	"github.com/vk/bitconf/internal/source"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance backed by a source.Loader and the
// given runtime (a fresh Recorder when nil). It returns the app together with
// its output and log buffers.
func SetupAppTest(t *testing.T, cfg *Config, runtime backend.Runtime) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	testApp := NewApp(outBuffer, logBuffer, cfg, source.NewLoader(), runtime)

	t.Cleanup(func() {
		if os.Getenv("BITCONF_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
