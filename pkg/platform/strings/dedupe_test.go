package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil slice", nil, nil},
		{"empty slice", []string{}, []string{}},
		{"trims and drops blanks", []string{"  3 ", "", "  ", "5"}, []string{"3", "5"}},
		{"keeps first occurrence order", []string{"5", "3", "5", " 3"}, []string{"5", "3"}},
		{"case sensitive", []string{"Lobby", "lobby"}, []string{"Lobby", "lobby"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestDedupeAndTrimLower(t *testing.T) {
	assert.Equal(t, []string{"lobby", "3rd floor"}, DedupeAndTrimLower([]string{" Lobby", "lobby", "3rd Floor"}))
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , ,"))
	assert.Equal(t, []string{"checked_in", "pre_registered"}, SplitList("checked_in, pre_registered,checked_in"))
}
