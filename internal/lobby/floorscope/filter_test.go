package floorscope

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk/internal/lobby/models"
	id "frontdesk/pkg/domain"
)

type countingRecorder struct{ n int }

func (c *countingRecorder) IncFloorFallback() { c.n++ }

func intPtr(n int) *int { return &n }

func visitor(name string, floor *int, floorName string) *models.Visitor {
	return &models.Visitor{ID: id.NewVisitorID(), Name: name, FloorNumber: floor, FloorName: floorName}
}

func names(vs []*models.Visitor) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Name)
	}
	return out
}

func TestApply(t *testing.T) {
	a := visitor("A", intPtr(3), "")
	b := visitor("B", intPtr(5), "")
	c := visitor("C", nil, "")
	all := []*models.Visitor{a, b, c}

	t.Run("unresolvable floors are visible and audited", func(t *testing.T) {
		var buf bytes.Buffer
		rec := &countingRecorder{}
		f := New(
			WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
			WithMetrics(rec),
		)

		got := f.Apply(context.Background(), all, models.OperatorScope{OperatorID: "op-1", AssignedFloors: []string{"3"}})

		assert.Equal(t, []string{"A", "C"}, names(got))
		assert.Equal(t, 1, rec.n)
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), c.ID.String())
	})

	t.Run("empty scope sees everything", func(t *testing.T) {
		rec := &countingRecorder{}
		got := New(WithMetrics(rec)).Apply(context.Background(), all, models.OperatorScope{})
		assert.Equal(t, []string{"A", "B", "C"}, names(got))
		assert.Zero(t, rec.n)
	})

	t.Run("floor names resolve when the number is missing", func(t *testing.T) {
		vs := []*models.Visitor{
			visitor("third", nil, "3rd Floor"),
			visitor("ground", nil, "Ground Floor"),
			visitor("fifth", nil, "5th Floor"),
		}
		got := New().Apply(context.Background(), vs, models.OperatorScope{AssignedFloors: []string{"0", " 3 "}})
		assert.Equal(t, []string{"third", "ground"}, names(got))
	})

	t.Run("numeric floor wins over the name", func(t *testing.T) {
		vs := []*models.Visitor{visitor("mixed", intPtr(5), "3rd Floor")}
		got := New().Apply(context.Background(), vs, models.OperatorScope{AssignedFloors: []string{"3"}})
		assert.Empty(t, got)
	})

	t.Run("invalid scope entries are ignored", func(t *testing.T) {
		got := New().Apply(context.Background(), all, models.OperatorScope{AssignedFloors: []string{"penthouse", "5"}})
		assert.Equal(t, []string{"B", "C"}, names(got))
	})
}

func TestParseFloorName(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"Ground Floor", 0, true},
		{"ground", 0, true},
		{"1st Floor", 1, true},
		{"2nd floor", 2, true},
		{"3rd Floor", 3, true},
		{"11th Floor", 11, true},
		{"21st  Floor", 21, true},
		{"Floor 7", 7, true},
		{"12", 12, true},
		{"", 0, false},
		{"Mezzanine", 0, false},
		{"-1", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloorName(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
