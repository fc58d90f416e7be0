// Package testutil provides the shared harness for registry-pipeline tests:
// write documents to a temp dir, run the app over them, capture the logs.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/taskgridgo/internal/app"
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

// HarnessResult holds the outcomes of a registry test run.
type HarnessResult struct {
	LogOutput string
	Err       error
	App       *app.App
}

// RunRegistryTest writes the given files into a temporary directory, points
// the app at it, and runs the full load/build pipeline. Files under "vars/"
// are passed as --vars files, in lexical order, instead of being discovered
// as task documents.
func RunRegistryTest(t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()
	return RunRegistryTestWithContext(context.Background(), t, files)
}

// RunRegistryTestWithContext is RunRegistryTest with a caller-provided context.
func RunRegistryTestWithContext(ctx context.Context, t *testing.T, files map[string]string) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	docsDir := filepath.Join(tmpDir, "docs")
	require.NoError(t, os.Mkdir(docsDir, 0755))

	var varsFiles []string
	for name, content := range files {
		var filePath string
		if strings.HasPrefix(name, "vars/") {
			filePath = filepath.Join(tmpDir, name)
			varsFiles = append(varsFiles, filePath)
		} else {
			filePath = filepath.Join(docsDir, name)
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
	sort.Strings(varsFiles)

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: docsDir,
		VarsFiles:  varsFiles,
		LogLevel:   "debug",
		LogFormat:  "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, cfg)
	runErr := testApp.Run(ctx)

	if os.Getenv("TGGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
