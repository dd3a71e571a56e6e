package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crosswatch-systems/crosswatch/internal/models"
)

func TestCommandsRegistered(t *testing.T) {
	expected := map[string]bool{
		"serve":   false,
		"analyze": false,
		"seed":    false,
	}

	for _, cmd := range rootCmd.Commands() {
		name := strings.Fields(cmd.Use)[0]
		if _, ok := expected[name]; ok {
			expected[name] = true
		}
	}

	for name, found := range expected {
		assert.True(t, found, "expected command %q to be registered", name)
	}
}

func TestSeedThenAnalyze(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "snapshot.json")

	seedCount = 30
	seedValue = 42
	seedOutput = snapshot
	require.NoError(t, runSeed())

	data, err := os.ReadFile(snapshot)
	require.NoError(t, err)
	var stories []models.Event
	require.NoError(t, json.Unmarshal(data, &stories))
	assert.Len(t, stories, 30)

	analyzeOutput = "markdown"
	require.NoError(t, runAnalyze(snapshot))
}

func TestAnalyze_BadInput(t *testing.T) {
	require.Error(t, runAnalyze(filepath.Join(t.TempDir(), "missing.json")))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))
	analyzeOutput = "table"
	require.Error(t, runAnalyze(bad))
}
