package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return executeWithInput(t, strings.NewReader(stdin), args...)
}

func executeWithInput(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func emptyConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "tagsort.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	return path
}

func TestRootCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.txt")
	stdin := strings.Join([]string{
		"red fur, ((blue eyes)), happy",
		"",
		"red fur, ((blue eyes))",
		"happy",
	}, "\n") + "\n"

	out, err := execute(t, stdin,
		"--config", emptyConfig(t, dir),
		"--prompt-file", filepath.Join(dir, "absent.txt"),
		"--categories", "subject,mood",
		"--no-color",
		output,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "red fur, ((blue eyes)), happy", string(data))
	assert.Contains(t, out, "(Use Ctrl+C to quit, Tab to autocomplete)")
	assert.Contains(t, out, "subject? mood? ")
	assert.Contains(t, out, "Wrote 3 tokens to "+output)
}

func TestRootCommandSkipsEveryCategory(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.txt")
	promptFile := filepath.Join(dir, "prompt.txt")
	require.NoError(t, os.WriteFile(promptFile, []byte("a, b, c\n"), 0o644))

	_, err := execute(t, "\n\n\n\n\n\n",
		"--config", emptyConfig(t, dir),
		"--prompt-file", promptFile,
		"--no-color",
		output,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "a, b, c", string(data))
}

func TestRootCommandCategoriesFileAndDebugLog(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.txt")
	categories := filepath.Join(dir, "categories.txt")
	logFile := filepath.Join(dir, "debug.log")
	require.NoError(t, os.WriteFile(categories, []byte("scene\nsubject\n"), 0o644))

	out, err := execute(t, "girl, forest\ny\nforest\n",
		"--config", emptyConfig(t, dir),
		"--prompt-file", filepath.Join(dir, "absent.txt"),
		"-c", categories,
		"--debug",
		"--log-file", logFile,
		"--no-color",
		output,
	)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "forest, girl", string(data))
	assert.Contains(t, out, "scene? subject? ")

	logData, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "component=session")
}

func TestRootCommandReportsInputFailures(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.txt")

	out, err := executeWithInput(t, iotest.ErrReader(errors.New("stdin closed")),
		"--config", emptyConfig(t, dir),
		"--prompt-file", filepath.Join(dir, "absent.txt"),
		"--no-color",
		output,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: reading prompt failed: stdin closed")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestRootCommandRequiresOutputPath(t *testing.T) {
	_, err := execute(t, "")
	assert.Error(t, err)
}

func TestRootCommandUnknownPreset(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "",
		"--config", emptyConfig(t, dir),
		"--preset", "bogus",
		filepath.Join(dir, "out.txt"),
	)
	assert.ErrorContains(t, err, "unknown category preset")
}

func TestSplitCommand(t *testing.T) {
	out, err := execute(t, "a, b(c, d), [e, f], a, BREAK, BREAK", "split")
	require.NoError(t, err)
	assert.Equal(t, "a\nb(c, d)\n[e, f]\na\nBREAK\nBREAK\n", out)

	out, err = execute(t, "a, b(c, d), a, BREAK, BREAK", "split", "--dedup", "--join")
	require.NoError(t, err)
	assert.Equal(t, "a, b(c, d), BREAK, BREAK\n", out)
}

func TestSplitCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("x,y"), 0o644))

	out, err := execute(t, "", "split", path)
	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", out)

	_, err = execute(t, "", "split", path+".missing")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "tagsort dev"))
}
