package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewYearSet(t *testing.T) {
	s := NewYearSet("2012", " 2010", "2012", "", "2011")
	assert.Equal(t, YearSet{"2010", "2011", "2012"}, s)
	assert.Equal(t, "2010,2011,2012", s.String())
	assert.True(t, s.Contains("2011"))
	assert.False(t, s.Contains("2014"))
}

func TestAllYears(t *testing.T) {
	assert.Equal(t, YearSet{"2010", "2011", "2012", "2013", "2014"}, AllYears())
}

func TestYearSet_Toggle(t *testing.T) {
	s := NewYearSet("2010", "2012")

	added := s.Toggle("2011")
	assert.Equal(t, YearSet{"2010", "2011", "2012"}, added)

	removed := added.Toggle("2010")
	assert.Equal(t, YearSet{"2011", "2012"}, removed)

	// Original sets are untouched.
	assert.Equal(t, YearSet{"2010", "2012"}, s)
	assert.Equal(t, YearSet{"2010", "2011", "2012"}, added)

	var empty YearSet
	assert.Equal(t, YearSet{"2014"}, empty.Toggle("2014"))
}
