package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parse reads a release tag such as v0.4.1 or 0.4.1-rc1 into its numeric parts.
// A missing minor or patch reads as zero. Pre-release suffixes are ignored.
func parse(tag string) ([3]int, error) {
	var parts [3]int

	core, _, _ := strings.Cut(strings.TrimPrefix(tag, "v"), "-")
	fields := strings.Split(core, ".")
	if len(fields) > len(parts) {
		return parts, fmt.Errorf("version %q: too many parts", tag)
	}

	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return parts, fmt.Errorf("version %q: bad part %q", tag, field)
		}
		parts[i] = n
	}

	return parts, nil
}

// Compare orders two release tags: 1 if a is newer, -1 if b is newer, 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}

	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range lo.Zip2(av[:], bv[:]) {
		if c := cmp.Compare(pair.A, pair.B); c != 0 {
			return c, nil
		}
	}

	return 0, nil
}
