package models

import "strings"

// Grade is a letter grade summarizing product quality, A (best) to E (worst).
type Grade string

const (
	GradeA       Grade = "A"
	GradeB       Grade = "B"
	GradeC       Grade = "C"
	GradeD       Grade = "D"
	GradeE       Grade = "E"
	GradeUnknown Grade = ""
)

func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC, GradeD, GradeE:
		return true
	}
	return false
}

// GradeFromString normalizes an externally supplied grade string.
// Open Food Facts reports grades in lowercase ("a".."e"); anything
// unrecognized maps to GradeUnknown.
func GradeFromString(s string) Grade {
	g := Grade(strings.ToUpper(strings.TrimSpace(s)))
	if g.Valid() {
		return g
	}
	return GradeUnknown
}
