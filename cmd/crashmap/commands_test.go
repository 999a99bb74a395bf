package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/crash-map/internal/config"
	"github.com/couchcryptid/crash-map/internal/observability"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	c, err := config.Load()
	require.NoError(t, err)
	return c
}

// execute runs the root command with args against the bundled sample dataset.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("DATASET_PATH", "")
	newMetrics = observability.NewMetricsForTesting
	t.Cleanup(func() { newMetrics = observability.NewMetrics })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRank(t *testing.T) {
	out, err := execute(t, "rank", "--years", "2011")
	require.NoError(t, err)

	assert.Contains(t, out, "Downtown")
	assert.NotContains(t, out, "Deanwood")
	assert.NotContains(t, out, "Anacostia")
}

func TestRank_UnknownYear(t *testing.T) {
	_, err := execute(t, "rank", "--years", "1999")
	assert.Error(t, err)
}

func TestCounty(t *testing.T) {
	out, err := execute(t, "county", "4", "--years", "2010,2011,2012,2013,2014")
	require.NoError(t, err)

	assert.Contains(t, out, "Brightwood County")
	assert.Contains(t, out, "1516")
}

func TestCounty_Unknown(t *testing.T) {
	_, err := execute(t, "county", "99", "--years", "2010")
	assert.Error(t, err)
}

func TestLocateCommand_NegativeLongitude(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bare", []string{"locate", "-77.03", "38.925"}},
		{"after separator", []string{"locate", "--", "-77.03", "38.925"}},
		{"with dataset flag", []string{"locate", "--dataset=", "-77.03", "38.925"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, "1\tColumbia Heights\n", out)
		})
	}
}

func TestLocateCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"one coordinate", []string{"locate", "-77.03"}},
		{"not a number", []string{"locate", "west", "38.9"}},
		{"outside every county", []string{"locate", "-70", "40"}},
		{"dataset without value", []string{"locate", "-77.03", "38.925", "--dataset"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRender_MapPNGRejected(t *testing.T) {
	_, err := execute(t, "render", "map", "--format", "png", "--out", "-", "--selected", "", "--years", "2010,2011,2012,2013,2014", "--width", "0", "--height", "400")
	assert.Error(t, err)
}

func TestRender_ChartSVG(t *testing.T) {
	out, err := execute(t, "render", "chart", "--format", "svg", "--out", "-", "--selected", "2", "--years", "2012", "--width", "0", "--height", "400")
	require.NoError(t, err)
	assert.Contains(t, out, `id="barChartSvg"`)
}

func TestRender_RejectsOversizedImage(t *testing.T) {
	tests := []struct {
		name   string
		width  string
		height string
	}{
		{"width", "50000", "400"},
		{"height", "0", "50000"},
		{"zero height", "0", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "render", "chart", "--format", "png", "--out", "-", "--selected", "", "--years", "2012",
				"--width", tt.width, "--height", tt.height)
			assert.Error(t, err)
		})
	}
}
