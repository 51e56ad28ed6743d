package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir string, name string, data string) string {
	f := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(f, []byte(data), 0644))
	return f
}

func TestParseFormats(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "c.json", `{"url":"http://localhost:8080","username":"alice","password":"pw","folder":"/shop","thread":2,"log_info":{"level":"debug"}}`),
		writeFile(t, dir, "c.toml", "url = \"http://localhost:8080\"\nusername = \"alice\"\npassword = \"pw\"\nfolder = \"/shop\"\nthread = 2\n[log_info]\nlevel = \"debug\"\n"),
		writeFile(t, dir, "c.yaml", "url: http://localhost:8080\nusername: alice\npassword: pw\nfolder: /shop\nthread: 2\nlog_info:\n  level: debug\n"),
	}
	for _, f := range files {
		c, err := Parse(f)
		require.NoError(t, err, f)
		assert.Equal(t, "http://localhost:8080", c.URL)
		assert.Equal(t, "alice", c.Username)
		assert.Equal(t, "pw", c.Password)
		assert.Equal(t, "/shop", c.Folder)
		assert.Equal(t, 2, c.Thread)
		assert.Equal(t, "debug", c.LogInfo.Level)
		// 未配置的字段保持默认值
		assert.Equal(t, int64(600), c.Timeout)
		assert.Equal(t, 3, c.Retry)
		assert.True(t, c.Snapshot)
		assert.True(t, c.Verify)
		assert.True(t, c.LogInfo.Console)
	}
}

func TestParseInvalid(t *testing.T) {
	dir := t.TempDir()
	_, err := Parse(writeFile(t, dir, "bad.json", `{"url":`))
	assert.Error(t, err)
	_, err = Parse(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvUsername, "")
	dir := t.TempDir()
	good := writeFile(t, dir, "good.json", `{"url":"http://localhost:8080","username":"alice"}`)
	c, err := Load("", filepath.Join(dir, "missing.json"), good)
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Username)

	_, err = Load(filepath.Join(dir, "missing.json"), good)
	assert.Error(t, err)

	noUser := writeFile(t, dir, "nouser.json", `{"url":"http://localhost:8080"}`)
	c, err = Load(noUser)
	require.NoError(t, err)
	assert.Error(t, c.ValidateRemote())

	badLevel := writeFile(t, dir, "badlevel.json", `{"url":"http://localhost:8080","username":"alice","log_info":{"level":"error"}}`)
	_, err = Load(badLevel)
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvURL, "https://cloud.example.com")
	t.Setenv(EnvUsername, "bob")
	t.Setenv(EnvPassword, "env-pw")
	t.Setenv(EnvFolder, "/env")
	c, err := Load("", filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "https://cloud.example.com", c.URL)
	assert.Equal(t, "bob", c.Username)
	assert.Equal(t, "env-pw", c.Password)
	assert.Equal(t, "/env", c.Folder)
}

func TestLoadEnvEmptyPassword(t *testing.T) {
	t.Setenv(EnvURL, "")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")
	f := writeFile(t, t.TempDir(), "c.json", `{"url":"http://localhost:8080","username":"alice","password":"file-pw"}`)
	c, err := Load(f)
	require.NoError(t, err)
	assert.Equal(t, "file-pw", c.Password)
}

func TestValidate(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Validate())
	assert.Error(t, c.ValidateRemote())
	c.URL = "http://localhost"
	assert.Error(t, c.ValidateRemote())
	c.Username = "alice"
	assert.NoError(t, c.ValidateRemote())

	for _, lv := range []string{"", "debug", "INFO", "warn"} {
		c.LogInfo.Level = lv
		assert.NoError(t, c.Validate(), lv)
	}
	for _, lv := range []string{"error", "trace", "verbose"} {
		c.LogInfo.Level = lv
		assert.Error(t, c.Validate(), lv)
	}
	c.LogInfo.Level = "info"
	c.Thread = 0
	assert.Error(t, c.Validate())
}
