package manager

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	ErrInvalidEpisodeList   = errors.New("invalid episode list")
	ErrEpisodeCountMismatch = errors.New("episode numbers do not match file count")
)

// maxRangeSpan bounds how many numbers one "a-b" range may expand to
const maxRangeSpan = 10000

// ParseEpisodeList reads comma separated episode numbers and inclusive ranges such as "8,10-12".
// The result is deduplicated and ascending.
func ParseEpisodeList(input string) ([]int32, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("%w: no episode numbers", ErrInvalidEpisodeList)
	}

	seen := make(map[int32]struct{})
	for _, tok := range strings.Split(input, ",") {
		tok = strings.TrimSpace(tok)

		lo, hi, isRange := strings.Cut(tok, "-")
		start, err := parseEpisodeNumber(lo)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEpisodeList, tok)
		}

		end := start
		if isRange {
			end, err = parseEpisodeNumber(hi)
			if err != nil || end < start || end-start >= maxRangeSpan {
				return nil, fmt.Errorf("%w: %q", ErrInvalidEpisodeList, tok)
			}
		}

		// widened so a range ending at math.MaxInt32 terminates
		for n := int64(start); n <= int64(end); n++ {
			seen[int32(n)] = struct{}{}
		}
	}

	numbers := make([]int32, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	slices.Sort(numbers)

	return numbers, nil
}

func parseEpisodeNumber(s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("episode number %d is below 1", n)
	}
	return int32(n), nil
}
