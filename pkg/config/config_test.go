package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadSeedConfig(t *testing.T) {
	path := writeSeedFile(t, `
users:
  - id: u1
    name: Ana
    role: Quality Manager
  - id: u2
    name: Bruno
    role: Auditor
templates:
  - index: 0
    created_by: system
    activate: true
`)

	config, err := LoadSeedConfig(path)
	require.NoError(t, err)

	require.Len(t, config.Users, 2)
	assert.Equal(t, "Quality Manager", config.Users[0].Role)

	require.Len(t, config.Templates, 1)
	assert.Equal(t, 0, config.Templates[0].Index)
	assert.True(t, config.Templates[0].Activate)

	users := config.DirectoryUsers()
	require.Len(t, users, 2)
	assert.Equal(t, "u1", users[0].ID)
}

func TestLoadSeedConfig_MissingUserID(t *testing.T) {
	path := writeSeedFile(t, `
users:
  - name: Nameless
    role: Viewer
`)

	_, err := LoadSeedConfig(path)
	assert.Error(t, err)
}

func TestLoadSeedConfig_MissingFile(t *testing.T) {
	_, err := LoadSeedConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSeedConfig_InvalidYAML(t *testing.T) {
	path := writeSeedFile(t, "users: [unclosed")

	_, err := LoadSeedConfig(path)
	assert.Error(t, err)
}
