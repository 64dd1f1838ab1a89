package main

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"dicesim/internal/assets"
	"dicesim/internal/dice"
	"dicesim/internal/ui"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder stands in for the window and keeps the options it was given.
type recorder struct {
	called bool
	opts   ui.Options
}

func (r *recorder) launch(_ context.Context, opts ui.Options) error {
	r.called = true
	r.opts = opts
	return nil
}

// executeCommandC runs root with args and stdin, capturing stdout and stderr.
func executeCommandC(root *cobra.Command, stdin string, args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootHelp(t *testing.T) {
	r := &recorder{}
	stdout, stderr, err := executeCommandC(NewRootCmd(r.launch), "", "--help")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "--count")
	assert.False(t, r.called)
}

func TestFlagsResolveConfig(t *testing.T) {
	r := &recorder{}
	stdout, _, err := executeCommandC(NewRootCmd(r.launch), "", "--type", "w", "--count", "10", "--log-level", "error")
	require.NoError(t, err)
	require.True(t, r.called)

	assert.Equal(t, dice.FaceSetW, r.opts.Config.FaceSet())
	assert.Equal(t, 5, r.opts.Config.Count())
	assert.NotContains(t, stdout, "Enter")
	assert.Nil(t, r.opts.OutcomeSource)
}

func TestPromptsForMissingValues(t *testing.T) {
	r := &recorder{}
	stdout, _, err := executeCommandC(NewRootCmd(r.launch), "q\nabc\n", "--log-level", "error")
	require.NoError(t, err)
	require.True(t, r.called)

	assert.Contains(t, stdout, "Enter dice type (Q or W): ")
	assert.Contains(t, stdout, "Enter number of dice (1-5): ")
	assert.Equal(t, dice.FaceSetQ, r.opts.Config.FaceSet())
	assert.Equal(t, 1, r.opts.Config.Count())
}

func TestNoPromptUsesDefaults(t *testing.T) {
	r := &recorder{}
	stdout, _, err := executeCommandC(NewRootCmd(r.launch), "W\n4\n", "--no-prompt", "--log-level", "error")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Equal(t, dice.FaceSetQ, r.opts.Config.FaceSet())
	assert.Equal(t, 1, r.opts.Config.Count())
}

func TestEnvironmentSettings(t *testing.T) {
	t.Setenv("DICESIM_FACE_SET", "W")
	t.Setenv("DICESIM_COUNT", "2")
	t.Setenv("DICESIM_HISTORY_SIZE", "4")

	r := &recorder{}
	_, _, err := executeCommandC(NewRootCmd(r.launch), "", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, dice.FaceSetW, r.opts.Config.FaceSet())
	assert.Equal(t, 2, r.opts.Config.Count())
	assert.Equal(t, 4, r.opts.HistorySize)
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("DICESIM_COUNT", "2")

	r := &recorder{}
	_, _, err := executeCommandC(NewRootCmd(r.launch), "", "-t", "q", "-n", "3", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, 3, r.opts.Config.Count())
}

func TestSeedSetsSources(t *testing.T) {
	r := &recorder{}
	_, _, err := executeCommandC(NewRootCmd(r.launch), "", "-t", "q", "-n", "1", "--seed", "42", "--log-level", "error")
	require.NoError(t, err)
	assert.NotNil(t, r.opts.OutcomeSource)
	assert.NotNil(t, r.opts.FlickerSource)
}

func TestResultsGoToStdout(t *testing.T) {
	r := &recorder{}
	root := NewRootCmd(r.launch)
	_, _, err := executeCommandC(root, "", "-t", "q", "-n", "1", "--log-level", "error")
	require.NoError(t, err)
	assert.Same(t, root.OutOrStdout(), r.opts.Results)
	assert.Equal(t, "embedded", r.opts.Assets.(*assets.Library).Source())
}

func TestMissingAssetsIsFatal(t *testing.T) {
	r := &recorder{}
	dir := filepath.Join(t.TempDir(), "nothing-here")
	_, _, err := executeCommandC(NewRootCmd(r.launch), "", "-t", "q", "-n", "1", "--assets", dir, "--log-level", "error")
	require.Error(t, err)
	assert.False(t, r.called, "the window must not open without assets")

	var le *assets.LoadError
	assert.True(t, errors.As(err, &le))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestNegativeHistoryRejected(t *testing.T) {
	r := &recorder{}
	_, _, err := executeCommandC(NewRootCmd(r.launch), "", "--history", "-1", "--no-prompt")
	assert.Error(t, err)
	assert.False(t, r.called)
}

func TestLaunchErrorPropagates(t *testing.T) {
	boom := errors.New("no display")
	root := NewRootCmd(func(context.Context, ui.Options) error { return boom })
	_, _, err := executeCommandC(root, "", "--no-prompt", "--log-level", "error")
	assert.ErrorIs(t, err, boom)
}

func TestRejectsPositionalArgs(t *testing.T) {
	r := &recorder{}
	_, _, err := executeCommandC(NewRootCmd(r.launch), "", "extra")
	assert.Error(t, err)
}
