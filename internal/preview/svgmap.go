package preview

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/dungeonc/dungeonc/internal/compiler/ast"
)

// MapOptions configures the SVG rendering of a dungeon's entity layout.
type MapOptions struct {
	CellSize int
	Margin   int
}

// DefaultMapOptions gives each grid cell enough room for a label without
// the canvas growing unreasonably large for the typical 100x100 default
// world.
func DefaultMapOptions() MapOptions {
	return MapOptions{CellSize: 24, Margin: 40}
}

type mappedEntity struct {
	x, y  int
	label string
	color string
}

// RenderMap draws every fixed-position entity in prog's init section onto
// an SVG grid. Entities with a random or range placement are skipped,
// since their actual cell is only decided at runtime in the browser.
func RenderMap(prog *ast.Program, opts MapOptions) ([]byte, error) {
	if prog.Init == nil {
		return nil, fmt.Errorf("program has no init section")
	}

	width, height := 100, 100
	if prog.Init.World != nil {
		width, height = prog.Init.World.Width, prog.Init.World.Height
	}

	entities := collectEntities(prog.Init)

	canvasW := width*opts.CellSize + 2*opts.Margin
	canvasH := height*opts.CellSize + 2*opts.Margin

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(canvasW, canvasH)
	canvas.Rect(0, 0, canvasW, canvasH, "fill:#14141f")

	drawGrid(canvas, width, height, opts)

	for _, e := range entities {
		cx := opts.Margin + e.x*opts.CellSize + opts.CellSize/2
		cy := opts.Margin + e.y*opts.CellSize + opts.CellSize/2
		canvas.Circle(cx, cy, opts.CellSize/2-2, fmt.Sprintf("fill:%s;stroke:#fff;stroke-width:1", e.color))
		canvas.Text(cx, cy+opts.CellSize, e.label, "text-anchor:middle;font-size:10px;font-family:monospace;fill:#e2e8f0")
	}

	canvas.End()
	return buf.Bytes(), nil
}

func drawGrid(canvas *svg.SVG, width, height int, opts MapOptions) {
	style := "stroke:#2a2a3d;stroke-width:1"
	for x := 0; x <= width; x++ {
		px := opts.Margin + x*opts.CellSize
		canvas.Line(px, opts.Margin, px, opts.Margin+height*opts.CellSize, style)
	}
	for y := 0; y <= height; y++ {
		py := opts.Margin + y*opts.CellSize
		canvas.Line(opts.Margin, py, opts.Margin+width*opts.CellSize, py, style)
	}
}

func collectEntities(init *ast.InitSection) []mappedEntity {
	var entities []mappedEntity

	add := func(pl *ast.Placement, label, color string) {
		if pl == nil || pl.Kind != ast.PlacementCoordinate {
			return
		}
		entities = append(entities, mappedEntity{x: pl.Coordinate.X, y: pl.Coordinate.Y, label: label, color: color})
	}

	for _, f := range init.Furniture {
		pl := f.Placement
		add(&pl, f.Name, "#718096")
	}
	for _, m := range init.Mythics {
		add(m.Placement, m.UniqueName, "#ffd700")
	}
	for _, it := range init.Items {
		add(it.Placement, it.UniqueName, "#48bb78")
	}
	for _, mo := range init.Monsters {
		color := "#f56565"
		if mo.MonsterType == ast.MonsterBoss {
			color = "#9f1239"
		}
		add(mo.Placement, mo.UniqueName, color)
	}
	for _, n := range init.NPCs {
		add(n.Placement, n.UniqueName, "#4299e1")
	}
	if init.User != nil && init.User.Position != nil {
		entities = append(entities, mappedEntity{x: init.User.Position.X, y: init.User.Position.Y, label: init.User.UniqueName, color: "#f6e05e"})
	}

	return entities
}
