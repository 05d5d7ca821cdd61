package pricing

import (
	"math"
	"strconv"
	"strings"
)

// ParseCarton normalizes a user-entered carton count.
//
// The leading integer of raw is used ("12abc" is 12, "3.7" is 3). Anything without
// a leading integer is 0, and negative values clamp to 0.
func ParseCarton(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Out of range for int.
		if s[0] == '-' {
			return 0
		}
		return math.MaxInt
	}
	return NormalizeCarton(n)
}

// NormalizeCarton clamps a carton count to a minimum of 0.
func NormalizeCarton(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
