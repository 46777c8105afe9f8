package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/cage"
	"github.com/matzehuels/boxdeform/pkg/geom"
	"github.com/matzehuels/boxdeform/pkg/scene"
)

// Canvas glyphs, in increasing drawing priority.
const (
	glyphEmpty    = ' '
	glyphPoint    = '·'
	glyphControl  = 'o'
	glyphSelected = '@'
)

var (
	styleCanvas   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	stylePoint    = lipgloss.NewStyle().Foreground(colorWhite)
	styleControl  = lipgloss.NewStyle().Foreground(colorCyan)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// canvas is a character raster of the viewport region.
type canvas struct {
	cols, rows int
	proj       *geom.Projector
	cells      [][]rune
}

func newCanvas(view geom.View, cols, rows int) (*canvas, error) {
	proj, err := geom.NewProjector(view)
	if err != nil {
		return nil, err
	}
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(string(glyphEmpty), cols))
	}
	return &canvas{cols: cols, rows: rows, proj: proj, cells: cells}, nil
}

// plot draws g at the cell under world position p unless a glyph of higher
// priority is already there. Points outside the region are dropped.
func (c *canvas) plot(p r3.Vec, g rune) {
	s, ok := c.proj.Project(p)
	if !ok {
		return
	}
	view := c.proj.View()
	col := int(math.Floor(s.X / view.Width * float64(c.cols)))
	row := int(math.Floor((1 - s.Y/view.Height) * float64(c.rows)))
	if col < 0 || col >= c.cols || row < 0 || row >= c.rows {
		return
	}
	if priority(g) >= priority(c.cells[row][col]) {
		c.cells[row][col] = g
	}
}

func priority(g rune) int {
	switch g {
	case glyphPoint:
		return 1
	case glyphControl:
		return 2
	case glyphSelected:
		return 3
	}
	return 0
}

// String renders the raster with colored glyphs.
func (c *canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, g := range row {
			switch g {
			case glyphPoint:
				b.WriteString(stylePoint.Render(string(g)))
			case glyphControl:
				b.WriteString(styleControl.Render(string(g)))
			case glyphSelected:
				b.WriteString(styleSelected.Render(string(g)))
			default:
				b.WriteRune(g)
			}
		}
	}
	return b.String()
}

// drawScene rasters the evaluated points of the active object and the
// control points of cg. editor marks the selected control points; it may be
// nil.
func drawScene(s *scene.Scene, cg *cage.Cage, editor *scene.CageEditor, cols, rows int) (*canvas, error) {
	cv, err := newCanvas(s.View(), cols, rows)
	if err != nil {
		return nil, err
	}
	if id, ok := s.ActiveObject(); ok {
		set, err := s.Evaluate(id)
		if err != nil {
			return nil, err
		}
		for _, p := range set.Positions {
			cv.plot(p, glyphPoint)
		}
	}
	if cg == nil {
		return cv, nil
	}
	for v := 0; v < cg.Resolution.V; v++ {
		for u := 0; u < cg.Resolution.U; u++ {
			g := glyphControl
			if editor != nil {
				if su, sv, ok := editor.Selected(); ok && su == u && sv == v {
					g = glyphSelected
				}
			}
			cv.plot(cg.ControlPoint(u, v), g)
		}
	}
	return cv, nil
}
