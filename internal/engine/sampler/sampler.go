// Package sampler selects a reproducible subset of a package-id list.
package sampler

import (
	"math/rand/v2"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// pcgStream separates the two PCG words derived from one digest.
const pcgStream = 0x9e3779b97f4a7c15

// Selection is the outcome of sampling an id list.
type Selection struct {
	// IDs holds the selected ids in input order.
	IDs []string
	// Seed is the digest of the full input list the selection was drawn with.
	Seed uint64
	// Population is the length of the input list.
	Population int
}

// Sampled reports whether the selection is a proper subset of the input.
func (s Selection) Sampled() bool {
	return len(s.IDs) < s.Population
}

// Fingerprint hashes the ordered id list. Equal lists always yield equal values.
func Fingerprint(ids []string) uint64 {
	hasher := xxhash.New()
	for _, id := range ids {
		_, _ = hasher.WriteString(id)
		_, _ = hasher.Write([]byte{0})
	}
	return hasher.Sum64()
}

// Sample draws min(n, len(ids)) ids uniformly without replacement. The draw is
// seeded from the content of ids, so an unchanged list always yields the same
// sample. A non-positive n, or one covering the whole list, selects everything.
func Sample(ids []string, n int) Selection {
	sel := Selection{Seed: Fingerprint(ids), Population: len(ids)}
	if n <= 0 || n >= len(ids) {
		sel.IDs = slices.Clone(ids)
		if sel.IDs == nil {
			sel.IDs = []string{}
		}
		return sel
	}

	rng := rand.New(rand.NewPCG(sel.Seed, sel.Seed^pcgStream)) //nolint:gosec // reproducibility, not secrecy
	reservoir := make([]int, n)
	for i := range n {
		reservoir[i] = i
	}
	for i := n; i < len(ids); i++ {
		if j := rng.IntN(i + 1); j < n {
			reservoir[j] = i
		}
	}
	slices.Sort(reservoir)

	sel.IDs = make([]string, n)
	for i, idx := range reservoir {
		sel.IDs[i] = ids[idx]
	}
	return sel
}
