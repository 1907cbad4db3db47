package normalizer

import (
	"regexp"
	"strconv"
)

// salaryRangePattern matches "$59K-$99K", "59-99", "$40K" and the like. The K
// suffix is formatting only; numbers are kept as printed.
var salaryRangePattern = regexp.MustCompile(`\$?(\d+)K?-?\$?(\d+)?K?`)

// ParseRange extracts the (low, high) bounds from a range expression. The low
// bound is required; when it cannot be found both bounds are nil and ok is false.
func ParseRange(text string) (low, high *int64, ok bool) {
	match := salaryRangePattern.FindStringSubmatch(text)
	if match == nil {
		return nil, nil, false
	}

	lo, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return nil, nil, false
	}

	low = &lo

	if match[2] != "" {
		hi, err := strconv.ParseInt(match[2], 10, 64)
		if err != nil {
			return nil, nil, false
		}

		high = &hi
	}

	return low, high, true
}
