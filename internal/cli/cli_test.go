package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chefwho/internal/service/chef"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"CHEFWHO_DB", "CHEFWHO_PROVIDER", "DATABASE_URL", "REDIS_ADDR", "OPENROUTER_API_KEY"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.json")
	body := `{
		"basic_config": {"database": "sqlite3", "log_level": "error"},
		"providers": {"openai": {"base_url": "http://127.0.0.1:1/v1", "model": "test", "api_key": "test"}},
		"databases": {"sqlite3": {"dsn": "chef.db"}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestMigrateAddAndSuggestWithoutItems(t *testing.T) {
	path := writeConfig(t)

	out, err := runCLI(t, "--config", path, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "migrated sqlite3")

	out, err = runCLI(t, "--config", path, "add-item", "--user-id", "u-1", "--name", "Basil", "--days-left", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "added Basil for u-1")

	out, err = runCLI(t, "--config", path, "suggest", "--user-id", "u-2")
	require.NoError(t, err)
	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "u-2", resp["user_id"])
	assert.Equal(t, chef.NoItemMessage, resp["chefwho_says"])
	assert.NotContains(t, resp, "name_used")
}

func TestSuggestRequiresUserID(t *testing.T) {
	path := writeConfig(t)
	suggestUserID = ""
	_, err := runCLI(t, "--config", path, "suggest")
	require.Error(t, err)
}

func TestStartupFailsWithoutStore(t *testing.T) {
	for _, key := range []string{"CHEFWHO_DB", "DATABASE_URL"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"basic_config": {"database": "sqlite3"}}`), 0o600))

	_, err := runCLI(t, "--config", path, "migrate")
	require.Error(t, err)
}

func TestWatchRequiresRedis(t *testing.T) {
	path := writeConfig(t)
	_, err := runCLI(t, "--config", path, "watch")
	require.ErrorContains(t, err, "redis is not enabled")
}
