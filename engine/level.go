package engine

import "strconv"

// Level identifiers arrive from admin tooling in mixed shapes ("1", "Level 1",
// "level-2", " 03 "). NormalizeLevel reduces them to a canonical numeric
// string at the data-access boundary so nothing downstream has to special-case
// formats. Input with no digits normalizes to "".
func NormalizeLevel(raw string) string {
	start := -1
	end := -1
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			end = i + 1
		} else if start >= 0 {
			break
		}
	}
	if start < 0 {
		return ""
	}
	digits := raw[start:end]
	// strip leading zeros, keep at least one digit
	for len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}
	return digits
}

// LevelOrdinal returns the numeric order of a level identifier, or 0 when the
// identifier does not normalize to a number.
func LevelOrdinal(level string) int {
	n, err := strconv.Atoi(NormalizeLevel(level))
	if err != nil {
		return 0
	}
	return n
}
