package youtube

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeYtdlp writes a shell script standing in for yt-dlp. Each call appends
// its arguments to the returned log. The first failFirst calls exit 1; later
// calls print a single info line reporting <dir>/temp_Hello.webm.
func fakeYtdlp(t *testing.T, dir string, failFirst int, printInfo bool) (path, logPath string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yt-dlp is a shell script")
	}

	bin := t.TempDir()
	logPath = filepath.Join(bin, "args.log")
	calls := filepath.Join(bin, "calls")

	script := "#!/bin/sh\n" +
		"echo \"$*\" >> " + logPath + "\n" +
		"echo x >> " + calls + "\n" +
		"n=$(wc -l < " + calls + ")\n" +
		"if [ $n -le " + strconv.Itoa(failFirst) + " ]; then\n" +
		"  echo 'ERROR: Requested format is not available' >&2\n" +
		"  exit 1\n" +
		"fi\n"
	if printInfo {
		script += "echo '{\"_type\":\"video\",\"id\":\"abc123\",\"title\":\"Hello\",\"filename\":\"" +
			filepath.Join(dir, "temp_Hello.webm") + "\"}'\n"
	}

	path = filepath.Join(bin, "yt-dlp")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path, logPath
}

func readArgs(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestYtdlpEngine_FallbackArgsAndMP4Path(t *testing.T) {
	dir := t.TempDir()
	bin, logPath := fakeYtdlp(t, dir, 1, true)

	var retried error
	d := NewDownloader(NewYtdlpEngine(bin), dir)
	d.OnRetry = func(err error) { retried = err }

	result, err := d.Download(context.Background(), testRef)
	require.NoError(t, err)

	calls := readArgs(t, logPath)
	require.Len(t, calls, 2)
	assert.Contains(t, calls[0], "--format "+PrimaryFormat)
	assert.Contains(t, calls[1], "--format "+FallbackFormat)
	for _, args := range calls {
		assert.Contains(t, args, "--output "+filepath.Join(dir, "temp_%(title)s.%(ext)s"))
		assert.Contains(t, args, "--merge-output-format mp4")
		assert.Contains(t, args, "--recode-video mp4")
		assert.Contains(t, args, "--print-json")
		assert.True(t, strings.HasSuffix(args, "https://www.youtube.com/watch?v=abc123"), args)
	}

	require.Error(t, retried)
	assert.Equal(t, filepath.Join(dir, "temp_Hello.mp4"), result.Path)
	assert.Equal(t, "Hello", result.Title)
	assert.Equal(t, "Hello", result.Info["title"])
	assert.Equal(t, FallbackFormat, result.Info["format"])
}

func TestYtdlpEngine_BothAttemptsFail(t *testing.T) {
	dir := t.TempDir()
	bin, logPath := fakeYtdlp(t, dir, 2, true)

	_, err := NewDownloader(NewYtdlpEngine(bin), dir).Download(context.Background(), testRef)

	var dlErr *DownloadError
	require.ErrorAs(t, err, &dlErr)
	assert.Equal(t, 2, dlErr.Attempts)
	assert.Len(t, readArgs(t, logPath), 2)
}

func TestYtdlpEngine_NoInfoReported(t *testing.T) {
	dir := t.TempDir()
	bin, _ := fakeYtdlp(t, dir, 0, false)

	_, err := NewYtdlpEngine(bin).Fetch(context.Background(), FetchRequest{
		URL:       testRef.WatchURL(),
		VideoID:   testRef.VideoID,
		Format:    PrimaryFormat,
		OutputDir: dir,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no file reported for abc123")
}

func TestNativeTarget(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		attempt int
		wantExt string
	}{
		{"primary asks for mp4", 0, "mp4"},
		{"fallback takes any container", 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ext := nativeTarget(FetchRequest{VideoID: "abc123", OutputDir: dir, Attempt: tt.attempt})
			assert.Equal(t, filepath.Join(dir, "temp_abc123.mp4"), path)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}
