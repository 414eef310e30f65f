// Package floorscope restricts visitor listings to the floors a receptionist
// covers.
package floorscope

import (
	"regexp"
	"strconv"
	"strings"

	"frontdesk/internal/lobby/models"
)

var (
	ordinalFloor = regexp.MustCompile(`^(\d+)(?:st|nd|rd|th)?(?:\s+floor)?$`)
	floorPrefix  = regexp.MustCompile(`^(?:floor|level|l)\s*(\d+)$`)
)

// ParseFloorName maps display names to floor numbers: "Ground Floor" is 0,
// "3rd Floor", "Floor 3" and "3" are 3.
func ParseFloorName(name string) (int, bool) {
	n := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if n == "" {
		return 0, false
	}
	switch n {
	case "ground", "ground floor", "g", "lobby":
		return 0, true
	}
	if m := ordinalFloor.FindStringSubmatch(n); m != nil {
		return atoi(m[1])
	}
	if m := floorPrefix.FindStringSubmatch(n); m != nil {
		return atoi(m[1])
	}
	return 0, false
}

// ResolveFloor prefers the numeric floor and falls back to the floor name.
func ResolveFloor(v *models.Visitor) (int, bool) {
	if v.FloorNumber != nil {
		return *v.FloorNumber, true
	}
	return ParseFloorName(v.FloorName)
}

// NormalizeScope converts operator floor identifiers into floor numbers.
// Entries that name no floor are dropped.
func NormalizeScope(floors []string) map[int]struct{} {
	out := make(map[int]struct{}, len(floors))
	for _, f := range floors {
		if n, ok := ParseFloorName(f); ok {
			out[n] = struct{}{}
		}
	}
	return out
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
