package testutil

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/tmdbkit/internal/config"
)

func TestTestEnv_Path(t *testing.T) {
	env := NewTestEnv(t)

	path := env.Path("subdir", "file.txt")
	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasPrefix(path, env.RootDir()))
	assert.Equal(t, env.RootDir(), env.Path())
}

func TestTestEnv_WriteReadFile(t *testing.T) {
	env := NewTestEnv(t)

	content := []byte("test content")
	abs := env.WriteFile("nested/test.txt", content)

	assert.Equal(t, env.Path("nested", "test.txt"), abs)
	assert.Equal(t, content, env.ReadFile("nested/test.txt"))
	assert.True(t, env.FileExists("nested/test.txt"))
	assert.False(t, env.FileExists("missing.txt"))
}

func TestTestEnv_WriteConfig(t *testing.T) {
	env := NewTestEnv(t)

	cfg := env.WriteConfig("tmdb:\n  language: fi-FI\n")
	assert.Equal(t, "config.yaml", filepath.Base(cfg))
	assert.Contains(t, string(env.ReadFile("config.yaml")), "fi-FI")
}

func TestTestEnv_Chdir(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)

	var root string
	t.Run("inner", func(t *testing.T) {
		env := NewTestEnv(t)
		env.Chdir()
		root = env.RootDir()

		wd, err := os.Getwd()
		require.NoError(t, err)
		// the temp dir may sit behind a symlink, compare resolved paths
		want, _ := filepath.EvalSymlinks(root)
		got, _ := filepath.EvalSymlinks(wd)
		assert.Equal(t, want, got)
	})

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, orig, wd)
	assert.NotEmpty(t, root)
}

func TestTestEnv_String(t *testing.T) {
	env := NewTestEnv(t)

	str := env.String()
	assert.Contains(t, str, "TestEnv")
	assert.Contains(t, str, env.RootDir())
}

// Server tests

func TestServer_RoutesAndRecords(t *testing.T) {
	srv := NewServer(t)
	srv.Handle(http.MethodGet, "/movie/{id:[0-9]+}", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, `{"id":`+Vars(r)["id"]+`}`)
	})

	resp, err := srv.Client().Get(srv.BaseURL() + "/movie/550?api_key=k")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":550}`, string(body))
	assert.Equal(t, 1, srv.Hits("/movie/550"))
	assert.Equal(t, "k", srv.Last().Query.Get("api_key"))
}

func TestServer_NotFoundBody(t *testing.T) {
	srv := NewServer(t)

	resp, err := srv.Client().Post(srv.BaseURL()+"/nowhere", "application/json", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), `"status_code":34`)
	assert.Equal(t, `{"a":1}`, string(srv.Last().Body))
}

// Config management tests

func TestSetTestConfig(t *testing.T) {
	origKey := config.APIKey
	origURL := config.BaseURL

	t.Run("inner", func(t *testing.T) {
		srv := NewServer(t)
		SetTestConfig(t, srv)

		assert.Equal(t, "test-tmdb-key", config.APIKey)
		assert.Equal(t, srv.BaseURL(), config.BaseURL)
		assert.Equal(t, "json", config.OutputFormat)
	})

	assert.Equal(t, origKey, config.APIKey)
	assert.Equal(t, origURL, config.BaseURL)
}

func TestSaveRestoreConfigState(t *testing.T) {
	ResetConfig(t)

	config.APIKey = "saved"
	config.MaxThrottleRetries = 3
	state := SaveConfigState()

	config.APIKey = "modified"
	config.MaxThrottleRetries = 0

	RestoreConfigState(state)

	assert.Equal(t, "saved", config.APIKey)
	assert.Equal(t, 3, config.MaxThrottleRetries)
}
