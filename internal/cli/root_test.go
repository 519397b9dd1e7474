package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "ecda", cmd.Use)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"run", "check", "capacity", "runs", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmdPersistentFlags(t *testing.T) {
	cmd := NewRootCmd()

	for _, flag := range []string{
		"config", "data-dir", "schedule-path", "state-path",
		"reference-year", "horizon-year", "children-per-unit",
		"eligibility-delay-years", "attrition-rate", "min-historical-points",
		"trend-model", "fallback-policy", "precision", "places-per-centre",
		"verbose", "output",
	} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCmdVersion(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "ecda")
}
