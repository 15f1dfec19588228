// Package suggest finds known names close to a misspelled one.
package suggest

import (
	"slices"

	"github.com/agnivade/levenshtein"
)

// maxDistance is the Levenshtein distance below which a name is suggested.
const maxDistance = 3

// Closest returns sorted candidates nearest to name, empty slice if none is close enough.
// A candidate must differ from name in fewer characters than name contains.
func Closest(name string, candidates []string) []string {
	minDistance := maxDistance
	closest := []string{}
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if d == 0 || d >= len(name) {
			continue
		}

		switch {
		case d < minDistance:
			closest = []string{c}
			minDistance = d
		case d == minDistance:
			closest = append(closest, c)
		}
	}
	slices.Sort(closest)
	return closest
}
