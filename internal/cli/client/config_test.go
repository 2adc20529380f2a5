package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempConfig points the global config at dir for the duration of the test.
func useTempConfig(t *testing.T, dir string) string {
	t.Helper()
	configPath := filepath.Join(dir, "config.json")

	oldGetConfigDir := getConfigDirFunc
	oldGetConfigPath := getConfigPathFunc
	getConfigDirFunc = func() (string, error) {
		return dir, nil
	}
	getConfigPathFunc = func() (string, error) {
		return configPath, nil
	}
	t.Cleanup(func() {
		getConfigDirFunc = oldGetConfigDir
		getConfigPathFunc = oldGetConfigPath
	})

	return configPath
}

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir))
	assert.True(t, strings.HasSuffix(dir, "docsum"))
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasSuffix(path, "config.json"))
}

func TestLoadGlobalConfig_FileNotExists(t *testing.T) {
	useTempConfig(t, t.TempDir())

	config, err := LoadGlobalConfig()
	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestLoadGlobalConfig_InvalidJSON(t *testing.T) {
	configPath := useTempConfig(t, t.TempDir())
	require.NoError(t, os.WriteFile(configPath, []byte("{invalid json}"), 0600))

	config, err := LoadGlobalConfig()
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveGlobalConfig_CreatesDirectory(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "docsum")
	configPath := useTempConfig(t, configDir)

	err := SaveGlobalConfig(&GlobalConfig{APIURL: "http://localhost:3000"})
	require.NoError(t, err)

	assert.DirExists(t, configDir)
	assert.FileExists(t, configPath)

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	var loaded GlobalConfig
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, "http://localhost:3000", loaded.APIURL)
}

func TestSaveGlobalConfig_NilConfig(t *testing.T) {
	err := SaveGlobalConfig(nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config cannot be nil")
}

func TestDeleteGlobalConfig(t *testing.T) {
	configPath := useTempConfig(t, t.TempDir())
	require.NoError(t, os.WriteFile(configPath, []byte("{}"), 0600))

	require.NoError(t, DeleteGlobalConfig())
	assert.NoFileExists(t, configPath)

	// Deleting again is not an error.
	require.NoError(t, DeleteGlobalConfig())
}

func TestResolveAPIURL(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		env        string
		saved      string
		wantSource URLSource
		wantURL    string
	}{
		{"flag wins", "http://flag:1", "http://env:2", "http://saved:3", SourceFlag, "http://flag:1"},
		{"env over saved", "", "http://env:2", "http://saved:3", SourceEnv, "http://env:2"},
		{"saved config", "", "", "http://saved:3", SourceGlobalConfig, "http://saved:3"},
		{"default", "", "", "", SourceDefault, defaultAPIURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useTempConfig(t, t.TempDir())
			t.Setenv(envAPIURL, tt.env)
			if tt.saved != "" {
				require.NoError(t, SaveGlobalConfig(&GlobalConfig{APIURL: tt.saved}))
			}

			source, url, err := ResolveAPIURL(tt.flag)

			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, source)
			assert.Equal(t, tt.wantURL, url)
		})
	}
}
