package versions

import (
	"sort"
	"strings"

	version2 "github.com/hashicorp/go-version"
	rpmversion "github.com/knqyf263/go-rpm-version"
)

// Sort returns the distinct, non-empty versions of vs in ascending order.
// Versions go-version understands come first; free-form strings such as
// "2.0 - 2.14.1" or "all" follow in rpmvercmp order, where a numeric
// segment sorts after an alphabetic one.
func Sort(vs []string) []string {
	seen := map[string]bool{}
	sorted := []string{}

	for _, v := range vs {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		sorted = append(sorted, v)
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i], sorted[j]) < 0
	})

	return sorted
}

// Compare orders two versions the way Sort does: -1, 0 or 1.
func Compare(a, b string) int {
	va, errA := version2.NewVersion(a)
	vb, errB := version2.NewVersion(b)

	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}

	return rpmversion.NewVersion(a).Compare(rpmversion.NewVersion(b))
}
