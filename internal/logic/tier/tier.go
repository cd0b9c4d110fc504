package tier

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// labelPrefix is the service tier family prefix for Hyperscale objectives.
	labelPrefix = "hs"

	// generationPrefix precedes the hardware generation number in a label.
	generationPrefix = "gen"

	labelSeparator = "_"
	labelSegments  = 3
)

// Tier is a Hyperscale service objective: a hardware generation and a vCore count.
// Tiers are comparable values; two tiers are equal when both fields match.
type Tier struct {
	Generation int
	Cores      int
}

// String renders the canonical label, e.g. HS_GEN5_4.
func (t Tier) String() string {
	return Format(t)
}

// Format renders the canonical uppercase label of a tier.
func Format(t Tier) string {
	return strings.ToUpper(labelPrefix + labelSeparator +
		generationPrefix + strconv.Itoa(t.Generation) + labelSeparator +
		strconv.Itoa(t.Cores))
}

// Parse decodes a case-insensitive label of the form hs_gen<G>_<C>.
func Parse(label string) (Tier, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(label)), labelSeparator)

	if parts[0] != labelPrefix {
		return Tier{}, fmt.Errorf("%w: %q is not a hyperscale tier", ErrFormat, label)
	}

	if len(parts) != labelSegments {
		return Tier{}, fmt.Errorf("%w: %q: want %d segments, got %d", ErrFormat, label, labelSegments, len(parts))
	}

	genStr, ok := strings.CutPrefix(parts[1], generationPrefix)
	if !ok {
		return Tier{}, fmt.Errorf("%w: %q: generation segment %q", ErrFormat, label, parts[1])
	}

	generation, err := parsePositive(genStr)
	if err != nil {
		return Tier{}, fmt.Errorf("%w: %q: generation: %w", ErrFormat, label, err)
	}

	cores, err := parsePositive(parts[2])
	if err != nil {
		return Tier{}, fmt.Errorf("%w: %q: cores: %w", ErrFormat, label, err)
	}

	return Tier{Generation: generation, Cores: cores}, nil
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}

	if n < 1 {
		return 0, fmt.Errorf("%d is not positive", n)
	}

	return n, nil
}
