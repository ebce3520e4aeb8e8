package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/bitconf/internal/app"
	"github.com/vk/bitconf/internal/backend"
	"github.com/vk/bitconf/internal/source"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	LogOutput string
	Output    string
	Scene     app.Scene
	Err       error
	Recorder  *backend.Recorder
}

// Options tweaks a harness run. The zero value runs with default sections.
type Options struct {
	Config   app.Config
	Failures map[string]error // backend operation -> injected error
}

// RunIntegrationTest writes files (relative path -> content) into a fresh
// directory, then loads that directory as a single config path and runs one
// pass against a Recorder.
func RunIntegrationTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, opts)
}

// RunIntegrationTestWithContext is RunIntegrationTest with a caller context.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	// 1. Write every file below a temporary root directory.
	tmpDir := t.TempDir()
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(files[name]), 0o644))
	}

	// 2. Configure the app to read the whole directory.
	cfg := opts.Config
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{tmpDir}
	} else {
		for i, p := range cfg.Paths {
			cfg.Paths[i] = filepath.Join(tmpDir, p)
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if cfg.MaxInvalidNames == 0 {
		cfg.MaxInvalidNames = 32
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	// 3. Run a single pass against a recorder.
	outBuffer := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	recorder := backend.NewRecorder(outBuffer, backend.Format(appConfig.Output))
	for op, failure := range opts.Failures {
		recorder.FailOn(op, failure)
	}
	testApp := app.NewApp(outBuffer, logBuffer, appConfig, source.NewLoader(), recorder)

	scene, runErr := testApp.RunOnce(ctx)

	t.Cleanup(func() {
		if os.Getenv("BITCONF_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Output:    outBuffer.String(),
		Scene:     scene,
		Err:       runErr,
		Recorder:  recorder,
	}
}
