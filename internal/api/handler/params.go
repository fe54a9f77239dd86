package handler

import (
	"fmt"
	"regexp"
	"strconv"
)

// Query parameter validation. Every identifier arriving from the client is
// validated before it reaches a prepared statement; the statements take
// typed arguments, so this is about clear 400s rather than injection.

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// parseClubParam validates a required club id: a positive integer string.
func parseClubParam(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("club is required")
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("club must be a positive integer")
	}
	return id, nil
}

// parseYearParam validates an optional year: exactly four digits within
// 1900–2100. "" and "all" mean unrestricted.
func parseYearParam(s string) (*int, error) {
	if s == "" || s == "all" {
		return nil, nil
	}
	if !yearPattern.MatchString(s) {
		return nil, fmt.Errorf("year must be a four-digit year")
	}
	y, _ := strconv.Atoi(s)
	if y < 1900 || y > 2100 {
		return nil, fmt.Errorf("year must be between 1900 and 2100")
	}
	return &y, nil
}

// parsePersonParam validates an optional person id: a positive integer.
// "" and "all" mean unrestricted.
func parsePersonParam(s string) (*int, error) {
	if s == "" || s == "all" {
		return nil, nil
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("person must be a positive integer")
	}
	return &id, nil
}

// parseOptionalInt parses a plain optional integer parameter (ages, paging).
func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("not an integer: %q", s)
	}
	return &n, nil
}

// parseBoolParam parses an optional boolean parameter, defaulting to false.
func parseBoolParam(s string) bool {
	return s == "true" || s == "1"
}
