package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
)

// TestParse_ItemPlacementVariants exercises every Placement tag the grammar
// supports and compares the parsed shape against the expected struct with
// cmp.Diff, since the four variants share one struct and a field set
// wrong for the wrong tag is an easy mistake to introduce silently.
func TestParse_ItemPlacementVariants(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   ast.Placement
	}{
		{
			name: "coordinate",
			source: `init:
  items:
    item-heal:
      unique_name="a"
      place at (3,4)
`,
			want: ast.Placement{Kind: ast.PlacementCoordinate, Coordinate: ast.Coordinate{X: 3, Y: 4}},
		},
		{
			name: "range",
			source: `init:
  items:
    item-heal:
      unique_name="a"
      place at (1,1) to (5,5)
`,
			want: ast.Placement{
				Kind:  ast.PlacementRange,
				Start: ast.Coordinate{X: 1, Y: 1},
				End:   ast.Coordinate{X: 5, Y: 5},
			},
		},
		{
			name: "random",
			source: `init:
  items:
    item-heal:
      unique_name="a"
      place at random (25%)
`,
			want: ast.Placement{Kind: ast.PlacementRandom, Percentage: 25},
		},
		{
			name: "all",
			source: `init:
  items:
    item-heal:
      unique_name="a"
      place at all
`,
			want: ast.Placement{Kind: ast.PlacementAll},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prog := parse(t, tc.source)
			if len(prog.Init.Items) != 1 || prog.Init.Items[0].Placement == nil {
				t.Fatalf("expected exactly one placed item")
			}
			got := *prog.Init.Items[0].Placement
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("placement mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
