// Package identity matches the code an operator types at the desk against
// the identifiers issued to a visitor.
package identity

import (
	"strings"

	"frontdesk/internal/lobby/models"
)

// Blank reports whether a supplied code can be rejected without looking the
// visitor up.
func Blank(code string) bool {
	return strings.TrimSpace(code) == ""
}

// Verify reports whether code identifies v. Any one of these matches:
//   - the guest code, case-insensitively
//   - the public visitor code, exactly
//   - the internal id, exactly
//
// Surrounding whitespace is trimmed from code first.
func Verify(v *models.Visitor, code string) bool {
	if v == nil || Blank(code) {
		return false
	}
	code = strings.TrimSpace(code)
	if v.GuestCode != "" && strings.EqualFold(v.GuestCode, code) {
		return true
	}
	if v.VisitorCode != "" && v.VisitorCode == code {
		return true
	}
	return v.ID.String() == code
}
