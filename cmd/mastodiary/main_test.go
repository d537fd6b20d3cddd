package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "mastodiary/pkg/errors"
	"mastodiary/pkg/ui"
)

const testTemplate = "<html><body>{{posts}}</body></html>\n"

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := run(context.Background(), args, ui.NewPrinter(&out, &errOut))
	return code, out.String(), errOut.String()
}

func newMastodonServer(t *testing.T) (*httptest.Server, *int32) {
	t.Helper()
	var requests int32

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/accounts/lookup", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Query().Get("acct") != "alice" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, `{"id":"7","username":"alice"}`)
	})
	mux.HandleFunc("/api/v1/accounts/7/statuses", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		if r.URL.Query().Get("max_id") != "" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprint(w, `[{"id":"12","created_at":"2024-05-04T18:00:00.000Z","content":"<p>#Diary Hello,,, world!!</p>"}]`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	t.Setenv("MASTODIARY_API_BASE_URL", server.URL)
	return server, &requests
}

func writeTemplate(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "diary.html")
	require.NoError(t, os.WriteFile(path, []byte(testTemplate), 0644))
	return path
}

func TestRunFlagMode(t *testing.T) {
	_, requests := newMastodonServer(t)
	dir := t.TempDir()
	templatePath := writeTemplate(t, dir)
	outputPath := filepath.Join(dir, "posts.html")

	code, stdout, stderr := runCLI(t,
		"https://example.social/@alice",
		"-o", outputPath,
		"-t", templatePath,
		"-z", "America/New_York",
		"--log-level", "disabled",
	)

	require.Equal(t, errs.ExitSuccess, code, stderr)
	assert.Equal(t, "Posts written to "+outputPath+"\n", stdout)
	assert.Empty(t, stderr)
	assert.Equal(t, int32(3), atomic.LoadInt32(requests))

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t,
		"<html><body><p><strong>04/05/2024</strong></p>\n"+
			"<article><p class='post-time'>02:00 PM</p><p>Hello world</p></article></body></html>\n",
		string(data))
}

func TestRunFileMode(t *testing.T) {
	newMastodonServer(t)
	dir := t.TempDir()
	templatePath := writeTemplate(t, dir)
	outputPath := filepath.Join(dir, "out.html")
	configPath := filepath.Join(dir, "config.json")

	cfg := fmt.Sprintf(`{"mastodon_url": %q, "output_file": %q, "template_file": %q}`,
		"https://example.social/@alice", outputPath, templatePath)
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0644))

	code, stdout, stderr := runCLI(t, "--config", configPath, "--log-level", "disabled")
	require.Equal(t, errs.ExitSuccess, code, stderr)
	assert.Equal(t, "Posts written to "+outputPath+"\n", stdout)
	assert.FileExists(t, outputPath)
}

func TestRunFileModeWarnsAboutIgnoredFlags(t *testing.T) {
	newMastodonServer(t)
	dir := t.TempDir()
	templatePath := writeTemplate(t, dir)
	configPath := filepath.Join(dir, "config.json")

	cfg := fmt.Sprintf(`{"mastodon_url": "https://example.social/@alice", "output_file": %q, "template_file": %q}`,
		filepath.Join(dir, "out.html"), templatePath)
	require.NoError(t, os.WriteFile(configPath, []byte(cfg), 0644))

	code, _, stderr := runCLI(t, "-c", configPath, "-z", "Asia/Tokyo", "--log-level", "disabled")
	require.Equal(t, errs.ExitSuccess, code, stderr)
	assert.Contains(t, stderr, "--timezone is ignored")
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	templatePath := writeTemplate(t, dir)

	tests := []struct {
		name     string
		args     []string
		code     int
		contains string
	}{
		{
			name:     "missing config file",
			args:     []string{"--config", filepath.Join(dir, "missing.json")},
			code:     errs.ExitUserError,
			contains: "Error loading configuration:",
		},
		{
			name:     "invalid timezone",
			args:     []string{"https://example.social/@alice", "-t", templatePath, "-z", "Not/AZone"},
			code:     errs.ExitUserError,
			contains: "Error loading timezone:",
		},
		{
			name:     "invalid profile URL",
			args:     []string{"https://example.social/", "-t", templatePath},
			code:     errs.ExitUserError,
			contains: "Error parsing profile URL:",
		},
		{
			name:     "unknown user",
			args:     []string{"https://example.social/@bob", "-t", templatePath, "-o", filepath.Join(dir, "x.html")},
			code:     errs.ExitUserError,
			contains: "Error looking up user:",
		},
		{
			name:     "missing template",
			args:     []string{"https://example.social/@alice", "-t", filepath.Join(dir, "nope.html")},
			code:     errs.ExitUserError,
			contains: "Error reading template:",
		},
		{
			name:     "too many arguments",
			args:     []string{"https://a.social/@x", "https://b.social/@y"},
			code:     errs.ExitUserError,
			contains: "Error running:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newMastodonServer(t)
			args := append(tt.args, "--log-level", "disabled")

			code, stdout, stderr := runCLI(t, args...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.contains)
		})
	}
}

func TestRunNetworkErrorExitCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	t.Setenv("MASTODIARY_API_BASE_URL", server.URL)

	dir := t.TempDir()
	outputPath := filepath.Join(dir, "posts.html")
	code, _, stderr := runCLI(t, "https://example.social/@alice",
		"-t", writeTemplate(t, dir), "-o", outputPath, "--log-level", "disabled")

	assert.Equal(t, errs.ExitSystemError, code)
	assert.Contains(t, stderr, "Error fetching posts:")
	assert.NoFileExists(t, outputPath)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	code, stdout, stderr := runCLI(t, "config", "init", "--config", path)
	require.Equal(t, errs.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Configuration file created: "+path)
	assert.FileExists(t, path)

	code, _, stderr = runCLI(t, "config", "init", "--config", path)
	assert.Equal(t, errs.ExitUserError, code)
	assert.Contains(t, stderr, "already exists")
}

func TestConfigInitOutputIsLoadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	code, _, stderr := runCLI(t, "config", "init", "-c", path)
	require.Equal(t, errs.ExitSuccess, code, stderr)

	code, stdout, stderr := runCLI(t, "config", "show", "-c", path, "--log-level", "disabled")
	require.Equal(t, errs.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "mastodon_url: https://mastodon.social/@yourname")
	assert.Contains(t, stdout, "timeout: 30s")
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	templatePath := writeTemplate(t, dir)
	path := filepath.Join(dir, "config.json")

	cfg := fmt.Sprintf(`{"mastodon_url": "https://example.social/@alice", "template_file": %q, "timezone": "Europe/Paris"}`, templatePath)
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	code, stdout, stderr := runCLI(t, "config", "validate", "-c", path, "--log-level", "disabled")
	require.Equal(t, errs.ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Configuration is valid")
	assert.Contains(t, stdout, "Server: example.social")
	assert.Contains(t, stdout, "User: alice")
}

func TestConfigValidateBadTemplate(t *testing.T) {
	dir := t.TempDir()
	templatePath := filepath.Join(dir, "diary.html")
	require.NoError(t, os.WriteFile(templatePath, []byte("<html></html>"), 0644))
	path := filepath.Join(dir, "config.json")

	cfg := fmt.Sprintf(`{"mastodon_url": "https://example.social/@alice", "template_file": %q}`, templatePath)
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))

	code, _, stderr := runCLI(t, "config", "validate", "-c", path, "--log-level", "disabled")
	assert.Equal(t, errs.ExitUserError, code)
	assert.Contains(t, stderr, "Error reading template:")
}
