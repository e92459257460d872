package domain

import (
	"fmt"
	"regexp"
)

// Project ids are human-readable: "HC-<year>-<seq>", seq zero-padded to three
// digits and starting at 1 per calendar year. Sequences are never reused;
// gaps from deletions or aborted creations are not backfilled.

// FormatProjectID renders the id for a given year and sequence number.
func FormatProjectID(year, seq int) string {
	return fmt.Sprintf("HC-%d-%03d", year, seq)
}

// SequencePattern returns the Postgres-compatible regex matching every id
// allocated for the given year. Sequences past 999 grow beyond three digits.
func SequencePattern(year int) string {
	return fmt.Sprintf("^HC-%d-[0-9]{3,}$", year)
}

var projectIDRe = regexp.MustCompile(`^HC-[0-9]{4}-[0-9]{3,}$`)

// ValidProjectID reports whether id matches the allocated-id format. Admin
// upserts may use free-form ids, so this is informational, not a gate.
func ValidProjectID(id string) bool {
	return projectIDRe.MatchString(id)
}
