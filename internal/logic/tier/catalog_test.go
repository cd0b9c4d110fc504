package tier_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/hyperscale-autoscaler/internal/logic/tier"
)

func TestDefault_LaddersStrictlyIncreasing(t *testing.T) {
	t.Parallel()

	catalog := tier.Default()

	require.Equal(t, []int{4, 5}, catalog.Generations())

	for _, gen := range catalog.Generations() {
		ladder := catalog.Ladder(gen)
		require.NotEmpty(t, ladder)

		for i := 1; i < len(ladder); i++ {
			require.Greater(t, ladder[i].Cores, ladder[i-1].Cores, "generation %d position %d", gen, i)
			require.Equal(t, gen, ladder[i].Generation)
		}
	}
}

func TestCatalog_NextPrevious(t *testing.T) {
	t.Parallel()

	catalog := tier.Default()

	type stepCase struct {
		name     string
		give     tier.Tier
		wantNext *tier.Tier
		wantPrev *tier.Tier
	}

	ptr := func(g, c int) *tier.Tier { return &tier.Tier{Generation: g, Cores: c} }

	tests := []stepCase{
		{name: "gen5 interior", give: tier.Tier{Generation: 5, Cores: 4}, wantNext: ptr(5, 6), wantPrev: ptr(5, 2)},
		{name: "gen5 bottom", give: tier.Tier{Generation: 5, Cores: 2}, wantNext: ptr(5, 4), wantPrev: nil},
		{name: "gen5 top", give: tier.Tier{Generation: 5, Cores: 80}, wantNext: nil, wantPrev: ptr(5, 40)},
		{name: "gen4 gap", give: tier.Tier{Generation: 4, Cores: 10}, wantNext: ptr(4, 16), wantPrev: ptr(4, 9)},
		{name: "gen4 top", give: tier.Tier{Generation: 4, Cores: 24}, wantNext: nil, wantPrev: ptr(4, 16)},
		{name: "unknown cores", give: tier.Tier{Generation: 5, Cores: 3}, wantNext: nil, wantPrev: nil},
		{name: "unknown generation", give: tier.Tier{Generation: 7, Cores: 4}, wantNext: nil, wantPrev: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			next, ok := catalog.Next(tt.give)
			if tt.wantNext == nil {
				require.False(t, ok)
			} else {
				require.True(t, ok)
				require.Equal(t, *tt.wantNext, next)
			}

			prev, ok := catalog.Previous(tt.give)
			if tt.wantPrev == nil {
				require.False(t, ok)
			} else {
				require.True(t, ok)
				require.Equal(t, *tt.wantPrev, prev)
			}
		})
	}
}

func TestCatalog_NextOfPreviousIsIdentity(t *testing.T) {
	t.Parallel()

	catalog := tier.Default()

	for _, gen := range catalog.Generations() {
		ladder := catalog.Ladder(gen)

		for _, cur := range ladder[1 : len(ladder)-1] {
			prev, ok := catalog.Previous(cur)
			require.True(t, ok)

			back, ok := catalog.Next(prev)
			require.True(t, ok)
			require.Equal(t, cur, back)

			next, ok := catalog.Next(cur)
			require.True(t, ok)

			back, ok = catalog.Previous(next)
			require.True(t, ok)
			require.Equal(t, cur, back)
		}
	}
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	type newCase struct {
		name    string
		give    map[int][]int
		wantErr bool
	}

	tests := []newCase{
		{name: "valid", give: map[int][]int{5: {2, 4, 6}}},
		{name: "nil", give: nil, wantErr: true},
		{name: "empty ladder", give: map[int][]int{5: {}}, wantErr: true},
		{name: "not increasing", give: map[int][]int{5: {2, 6, 4}}, wantErr: true},
		{name: "duplicate cores", give: map[int][]int{5: {2, 2}}, wantErr: true},
		{name: "zero cores", give: map[int][]int{5: {0, 2}}, wantErr: true},
		{name: "zero generation", give: map[int][]int{0: {2}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tier.NewCatalog(tt.give)
			if tt.wantErr {
				require.ErrorIs(t, err, tier.ErrInvalidLadder)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
		})
	}
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	t.Parallel()

	cores := []int{2, 4, 6}
	catalog, err := tier.NewCatalog(map[int][]int{5: cores})
	require.NoError(t, err)

	cores[1] = 5

	next, ok := catalog.Next(tier.Tier{Generation: 5, Cores: 2})
	require.True(t, ok)
	require.Equal(t, tier.Tier{Generation: 5, Cores: 4}, next)
	require.True(t, catalog.Contains(tier.Tier{Generation: 5, Cores: 4}))
	require.False(t, catalog.Contains(tier.Tier{Generation: 5, Cores: 5}))
}

func TestParseLadders(t *testing.T) {
	t.Parallel()

	t.Run("two generations", func(t *testing.T) {
		t.Parallel()

		got, err := tier.ParseLadders("4:1,2,3; 5: 2, 4, 6")
		require.NoError(t, err)
		require.Equal(t, map[int][]int{4: {1, 2, 3}, 5: {2, 4, 6}}, got)
	})

	t.Run("malformed entries return error", func(t *testing.T) {
		t.Parallel()

		for _, give := range []string{"", "5", "x:1,2", "5:1,x", "5:1;5:2"} {
			_, err := tier.ParseLadders(give)
			require.ErrorIs(t, err, tier.ErrInvalidLadder, "spec %q", give)
		}
	})
}
