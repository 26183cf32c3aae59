package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-cricket-metrics/internal/model"
)

func TestShellSelectionCommands(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newShellSession(testDataset(), &out, &errOut)

	assert.False(t, s.exec("season 2024"))
	assert.Equal(t, []string{"2024"}, s.seasons)
	assert.Contains(t, out.String(), "Seasons: 2024")

	assert.False(t, s.exec("phase pp death"))
	assert.Equal(t, []model.Phase{model.PhasePowerplay, model.PhaseDeath}, s.phases)

	assert.False(t, s.exec("phase none"))
	assert.True(t, s.filter().Empty())

	assert.False(t, s.exec("reset"))
	assert.Equal(t, []string{"2023", "2024"}, s.seasons)
	assert.Equal(t, model.AllPhases, s.phases)
	assert.Empty(t, errOut.String())
}

func TestShellShow(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newShellSession(testDataset(), &out, &errOut)

	s.exec("season 2023")
	out.Reset()
	s.exec("show bowler")
	got := out.String()
	assert.Contains(t, got, "--- Bowling ---")
	assert.NotContains(t, got, "--- Batting ---")
	assert.Contains(t, got, "X")
	assert.NotContains(t, got, " Y ")
}

func TestShellErrorsKeepSelection(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newShellSession(testDataset(), &out, &errOut)

	s.exec("season 1999")
	s.exec("phase powerplays")
	s.exec("top -3")
	s.exec("frobnicate")
	assert.Equal(t, []string{"2023", "2024"}, s.seasons)
	assert.Equal(t, model.AllPhases, s.phases)
	assert.Equal(t, 0, s.top)

	e := errOut.String()
	assert.Contains(t, e, "unknown season")
	assert.Contains(t, e, "unknown phase")
	assert.Contains(t, e, "invalid row count")
	assert.Contains(t, e, "unknown command")
}

func TestShellRunStopsOnExit(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newShellSession(testDataset(), &out, &errOut)

	in := strings.NewReader("top 1\n\nexit\nseason none\n")
	require.NoError(t, s.run(in))
	assert.Equal(t, 1, s.top)
	// Commands after exit are never read.
	assert.Equal(t, []string{"2023", "2024"}, s.seasons)
}

func TestShellRunEOF(t *testing.T) {
	var out, errOut bytes.Buffer
	s := newShellSession(testDataset(), &out, &errOut)
	require.NoError(t, s.run(strings.NewReader("help\n")))
	assert.Contains(t, out.String(), "select match phases")
}
