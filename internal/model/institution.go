package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownInstitution is returned when a token names no supported institution.
var ErrUnknownInstitution = errors.New("unknown institution")

// InstitutionToken is the wire discriminator for an admission target.
type InstitutionToken string

const (
	InstitutionAmity   InstitutionToken = "amity"
	InstitutionManipal InstitutionToken = "manipal"
)

// Institution is one of the fixed admission targets together with its
// display identity and course catalog.
type Institution struct {
	Token   InstitutionToken
	Name    string
	Accent  string
	Courses []string
}

var (
	Amity = Institution{
		Token:  InstitutionAmity,
		Name:   "Amity University",
		Accent: "primary",
		Courses: []string{
			"Bachelor of Engineering",
			"Master of Business Administration",
			"Bachelor of Science",
			"Master of Science",
		},
	}

	Manipal = Institution{
		Token:  InstitutionManipal,
		Name:   "Manipal University",
		Accent: "accent",
		Courses: []string{
			"Bachelor of Technology",
			"Master of Technology",
			"Doctor of Philosophy",
			"Bachelor of Commerce",
		},
	}
)

// Institutions lists every supported institution in display order.
func Institutions() []Institution {
	return []Institution{Amity, Manipal}
}

// ParseInstitution resolves a wire token (case-insensitive) to its Institution.
func ParseInstitution(token string) (Institution, error) {
	switch InstitutionToken(strings.ToLower(strings.TrimSpace(token))) {
	case InstitutionAmity:
		return Amity, nil
	case InstitutionManipal:
		return Manipal, nil
	default:
		return Institution{}, fmt.Errorf("%w: %q", ErrUnknownInstitution, token)
	}
}

// HasCourse reports whether course belongs to this institution's catalog.
func (i Institution) HasCourse(course string) bool {
	for _, c := range i.Courses {
		if c == course {
			return true
		}
	}
	return false
}

// HomePath is the institution's landing page path.
func (i Institution) HomePath() string {
	return "/" + string(i.Token)
}

// ApplyPath is the path of the institution's application form.
func (i Institution) ApplyPath() string {
	return i.HomePath() + "/apply"
}
