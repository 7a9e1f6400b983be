package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inovacc/repofinder/internal/core"
	"github.com/inovacc/repofinder/internal/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHubServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name": "hello-world", "html_url": "https://github.com/octocat/hello-world"},
			{"name": "spoon-knife", "html_url": "https://github.com/octocat/spoon-knife"}
		]`))
	})
	mux.HandleFunc("/users/nobody/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("REPOFINDER_API_URL", srv.URL+"/")
	t.Setenv("REPOFINDER_DATA_DIR", t.TempDir())
	t.Setenv("REPOFINDER_LOG_LEVEL", "")

	return srv
}

func runTestSearch(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	c := &cobra.Command{Use: "search", Args: cobra.MaximumNArgs(1), RunE: runSearch, SilenceUsage: true, SilenceErrors: true}
	addSearchFlags(c)
	c.Flags().Bool("log-json", false, "")
	c.Flags().Bool("verbose", false, "")

	var out, errOut bytes.Buffer

	c.SetOut(&out)
	c.SetErr(&errOut)
	c.SetArgs(append([]string{"--plain"}, args...))

	err := c.Execute()

	return out.String(), errOut.String(), err
}

func TestSearch_PlainTable(t *testing.T) {
	newGitHubServer(t)

	out, errOut, err := runTestSearch(t, "octocat")
	require.NoError(t, err)

	assert.Contains(t, out, "hello-world")
	assert.Contains(t, out, "https://github.com/octocat/spoon-knife")
	assert.Contains(t, out, "Total: 2 repositories")
	assert.NotContains(t, errOut, "Oops")
}

func TestSearch_SavedUsernameIsReused(t *testing.T) {
	newGitHubServer(t)

	_, _, err := runTestSearch(t, "octocat")
	require.NoError(t, err)

	out, _, err := runTestSearch(t, "--json")
	require.NoError(t, err)

	var got model.RepositoryList
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, []string{"hello-world", "spoon-knife"}, got.Names())
}

func TestSearch_NothingSaved(t *testing.T) {
	newGitHubServer(t)

	_, _, err := runTestSearch(t)
	require.ErrorIs(t, err, errNoUsername)
}

func TestSearch_BlankUsername(t *testing.T) {
	newGitHubServer(t)

	_, errOut, err := runTestSearch(t, "   ")

	var validationErr *core.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, alreadyReported(err))
	assert.Contains(t, errOut, core.MessageUsernameRequired)
}

func TestSearch_UnknownUser(t *testing.T) {
	newGitHubServer(t)

	out, errOut, err := runTestSearch(t, "ghost")

	var fetchErr *core.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, core.KindStatus, fetchErr.Kind)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Oops:")
}

func TestSearch_EmptyUser(t *testing.T) {
	newGitHubServer(t)

	t.Run("empty is an error by default", func(t *testing.T) {
		_, errOut, err := runTestSearch(t, "nobody")

		var fetchErr *core.FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, core.KindEmptyBody, fetchErr.Kind)
		assert.Contains(t, errOut, core.MessageFetchFailed)
	})

	t.Run("allow empty", func(t *testing.T) {
		out, errOut, err := runTestSearch(t, "nobody", "--allow-empty")
		require.NoError(t, err)
		assert.Contains(t, out, "No repositories to show.")
		assert.Contains(t, errOut, core.MessageNoRepositories)
	})
}

func TestExtractSearchFlags(t *testing.T) {
	c := &cobra.Command{Use: "search"}
	addSearchFlags(c)
	require.NoError(t, c.Flags().Set("json", "true"))

	flags := extractSearchFlags(c)
	assert.True(t, flags.JSON)
	assert.True(t, flags.Plain, "json implies plain")
	assert.False(t, flags.AllowEmpty)
}
