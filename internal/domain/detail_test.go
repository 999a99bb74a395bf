package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountyDetail(t *testing.T) {
	ix := mustIndex(ward("6", "Capitol Hill", map[string]int{"2010": 12, "2012": 3, "2014": 8}))

	d, err := CountyDetail(ix, "6", NewYearSet("2010", "2011", "2014"))
	require.NoError(t, err)

	assert.Equal(t, "Capitol Hill County", d.Label)
	assert.Equal(t, []YearCount{
		{Year: "2010", Count: 12, Selected: true},
		{Year: "2011", Count: 0, Selected: true},
		{Year: "2012", Count: 3, Selected: false},
		{Year: "2013", Count: 0, Selected: false},
		{Year: "2014", Count: 8, Selected: true},
	}, d.Years)
	assert.Equal(t, 20, d.Total)
}

func TestCountyDetail_Unknown(t *testing.T) {
	_, err := CountyDetail(scenarioIndex(), "404", AllYears())
	assert.ErrorIs(t, err, ErrUnknownFeature)
}
