package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"frontdesk/internal/lobby/models"
	id "frontdesk/pkg/domain"
)

func TestVerify(t *testing.T) {
	v := &models.Visitor{
		ID:          id.NewVisitorID(),
		VisitorCode: "VIS-7KQ2M9XA",
		GuestCode:   "AB12CD",
	}

	tests := []struct {
		name string
		code string
		want bool
	}{
		{"guest code exact", "AB12CD", true},
		{"guest code is case-insensitive", "ab12cd", true},
		{"guest code with surrounding spaces", "  ab12cd ", true},
		{"truncated guest code", "AB12C", false},
		{"visitor code exact", "VIS-7KQ2M9XA", true},
		{"visitor code is case-sensitive", "vis-7kq2m9xa", false},
		{"internal id", v.ID.String(), true},
		{"empty", "", false},
		{"whitespace only", "   \t", false},
		{"unrelated", "ZZ99ZZ", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(v, tt.code))
		})
	}
}

func TestVerifyWithoutGuestCode(t *testing.T) {
	v := &models.Visitor{ID: id.NewVisitorID(), VisitorCode: "VIS-0000AAAA"}

	assert.False(t, Verify(v, ""), "an empty supplied code never matches an empty guest code")
	assert.True(t, Verify(v, "VIS-0000AAAA"))
	assert.False(t, Verify(nil, "VIS-0000AAAA"))
}

func TestBlank(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank(" \n"))
	assert.False(t, Blank("x"))
}
