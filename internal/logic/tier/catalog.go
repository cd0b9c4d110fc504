package tier

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Published Hyperscale vCore ladders.
// https://learn.microsoft.com/en-us/azure/azure-sql/database/resource-limits-vcore-single-databases
var (
	gen4Cores = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 16, 24}
	gen5Cores = []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 24, 32, 40, 80}
)

// Catalog is an immutable set of tier ladders keyed by generation.
type Catalog struct {
	ladders map[int][]int
}

// Default returns a catalog with the published gen4 and gen5 ladders.
func Default() *Catalog {
	return MustNewCatalog(map[int][]int{
		4: gen4Cores,
		5: gen5Cores,
	})
}

// NewCatalog validates and copies the given ladders.
// Every ladder must be non-empty with strictly increasing positive core counts.
func NewCatalog(ladders map[int][]int) (*Catalog, error) {
	if len(ladders) == 0 {
		return nil, fmt.Errorf("%w: no generations defined", ErrInvalidLadder)
	}

	out := make(map[int][]int, len(ladders))

	for gen, cores := range ladders {
		if gen < 1 {
			return nil, fmt.Errorf("%w: generation %d is not positive", ErrInvalidLadder, gen)
		}

		if len(cores) == 0 {
			return nil, fmt.Errorf("%w: generation %d is empty", ErrInvalidLadder, gen)
		}

		for i, c := range cores {
			if c < 1 {
				return nil, fmt.Errorf("%w: generation %d: cores %d is not positive", ErrInvalidLadder, gen, c)
			}

			if i > 0 && c <= cores[i-1] {
				return nil, fmt.Errorf("%w: generation %d: cores %d after %d", ErrInvalidLadder, gen, c, cores[i-1])
			}
		}

		out[gen] = slices.Clone(cores)
	}

	return &Catalog{ladders: out}, nil
}

// MustNewCatalog is like NewCatalog but panics on an invalid definition.
func MustNewCatalog(ladders map[int][]int) *Catalog {
	c, err := NewCatalog(ladders)
	if err != nil {
		panic(err)
	}

	return c
}

// Next returns the tier one step above t in its generation.
func (c *Catalog) Next(t Tier) (Tier, bool) {
	return c.step(t, 1)
}

// Previous returns the tier one step below t in its generation.
func (c *Catalog) Previous(t Tier) (Tier, bool) {
	return c.step(t, -1)
}

func (c *Catalog) step(t Tier, delta int) (Tier, bool) {
	cores, ok := c.ladders[t.Generation]
	if !ok {
		return Tier{}, false
	}

	idx := slices.Index(cores, t.Cores)
	if idx < 0 {
		return Tier{}, false
	}

	idx += delta
	if idx < 0 || idx >= len(cores) {
		return Tier{}, false
	}

	return Tier{Generation: t.Generation, Cores: cores[idx]}, true
}

// Contains reports whether t is a published tier.
func (c *Catalog) Contains(t Tier) bool {
	return slices.Contains(c.ladders[t.Generation], t.Cores)
}

// Generations returns the known generations in ascending order.
func (c *Catalog) Generations() []int {
	return slices.Sorted(maps.Keys(c.ladders))
}

// Ladder returns the tiers of a generation, lowest first.
func (c *Catalog) Ladder(generation int) []Tier {
	cores := c.ladders[generation]
	out := make([]Tier, 0, len(cores))

	for _, n := range cores {
		out = append(out, Tier{Generation: generation, Cores: n})
	}

	return out
}

// ParseLadders decodes a ladder override such as "4:1,2,3;5:2,4,6".
func ParseLadders(spec string) (map[int][]int, error) {
	out := make(map[int][]int)

	for entry := range strings.SplitSeq(spec, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		genStr, coresStr, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("%w: entry %q: missing ':'", ErrInvalidLadder, entry)
		}

		gen, err := strconv.Atoi(strings.TrimSpace(genStr))
		if err != nil {
			return nil, fmt.Errorf("%w: entry %q: generation: %w", ErrInvalidLadder, entry, err)
		}

		if _, dup := out[gen]; dup {
			return nil, fmt.Errorf("%w: generation %d defined twice", ErrInvalidLadder, gen)
		}

		var cores []int

		for s := range strings.SplitSeq(coresStr, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return nil, fmt.Errorf("%w: entry %q: cores: %w", ErrInvalidLadder, entry, err)
			}

			cores = append(cores, n)
		}

		out[gen] = cores
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty ladder spec", ErrInvalidLadder)
	}

	return out, nil
}
