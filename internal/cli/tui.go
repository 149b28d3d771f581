package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/plotsample/plotsample/pkg/geom"
)

// Preview canvas dimensions in character cells.
const (
	previewWidth  = 64
	previewHeight = 20
)

var (
	previewRegionStyle = lipgloss.NewStyle().Foreground(colorDim)
	previewPointStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	previewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// gridPositioner is the slice of the engine the positioning TUI needs.
type gridPositioner interface {
	TranslateGrid(dx, dy float64) error
	Lattice() ([]geom.Point, error)
}

// =============================================================================
// GridModel - Interactive grid positioning
// =============================================================================

// GridModel is the bubbletea model for interactive grid positioning. Arrow
// keys nudge the lattice by a quarter of the grid spacing, enter commits
// the position, q aborts.
type GridModel struct {
	engine  gridPositioner
	regions geom.MultiPolygon
	bounds  geom.Rect
	stepX   float64
	stepY   float64

	lattice    []geom.Point
	offsetX    float64
	offsetY    float64
	Committed  bool
	moveFailed error
}

// newGridModel creates a grid positioning model over the scenario's
// regions.
func newGridModel(engine gridPositioner, sc *Scenario) (GridModel, error) {
	lattice, err := engine.Lattice()
	if err != nil {
		return GridModel{}, err
	}

	var combined geom.MultiPolygon
	for _, r := range sc.Regions {
		combined = append(combined, r.Geometry...)
	}
	bounds := combined.Bounds()
	// Leave a margin so lattice points just outside the regions stay
	// visible while positioning.
	marginX := bounds.Width() * 0.15
	marginY := bounds.Height() * 0.15
	bounds.MinX -= marginX
	bounds.MaxX += marginX
	bounds.MinY -= marginY
	bounds.MaxY += marginY

	return GridModel{
		engine:  engine,
		regions: combined,
		bounds:  bounds,
		stepX:   sc.Grid.SpacingX / 4,
		stepY:   sc.Grid.SpacingY / 4,
		lattice: lattice,
	}, nil
}

func (m GridModel) Init() tea.Cmd {
	return nil
}

func (m GridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		m.Committed = true
		return m, tea.Quit
	case "left":
		return m.move(-m.stepX, 0), nil
	case "right":
		return m.move(m.stepX, 0), nil
	case "up":
		return m.move(0, m.stepY), nil
	case "down":
		return m.move(0, -m.stepY), nil
	}
	return m, nil
}

// move shifts the engine's lattice and refreshes the local copy.
func (m GridModel) move(dx, dy float64) GridModel {
	if err := m.engine.TranslateGrid(dx, dy); err != nil {
		m.moveFailed = err
		return m
	}
	lattice, err := m.engine.Lattice()
	if err != nil {
		m.moveFailed = err
		return m
	}
	m.lattice = lattice
	m.offsetX += dx
	m.offsetY += dy
	m.moveFailed = nil
	return m
}

func (m GridModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Position Grid"))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("arrows move  ⏎ commit  q abort"))
	b.WriteString("\n\n")
	b.WriteString(m.renderCanvas())
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render(fmt.Sprintf("  offset: %+.1f, %+.1f", m.offsetX, m.offsetY)))
	if m.moveFailed != nil {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render("  " + m.moveFailed.Error()))
	}
	return b.String()
}

// renderCanvas rasterizes the regions and lattice onto a character grid.
// Cell centers inside a region render dim, lattice points render bright
// and win over region shading.
func (m GridModel) renderCanvas() string {
	type cell byte
	const (
		cellEmpty cell = iota
		cellRegion
		cellPoint
	)
	canvas := make([][]cell, previewHeight)
	for row := range canvas {
		canvas[row] = make([]cell, previewWidth)
		for col := range canvas[row] {
			if m.regions.Contains(m.cellCenter(col, row)) {
				canvas[row][col] = cellRegion
			}
		}
	}
	for _, p := range m.lattice {
		col, row, visible := m.cellOf(p)
		if visible {
			canvas[row][col] = cellPoint
		}
	}

	var b strings.Builder
	for _, rowCells := range canvas {
		for _, c := range rowCells {
			switch c {
			case cellPoint:
				b.WriteString(previewPointStyle.Render("o"))
			case cellRegion:
				b.WriteString(previewRegionStyle.Render("·"))
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// cellCenter maps a canvas cell to world coordinates. Row zero is the top
// of the canvas and the north edge of the bounds.
func (m GridModel) cellCenter(col, row int) geom.Point {
	fx := (float64(col) + 0.5) / previewWidth
	fy := (float64(row) + 0.5) / previewHeight
	return geom.Point{
		X: m.bounds.MinX + fx*m.bounds.Width(),
		Y: m.bounds.MaxY - fy*m.bounds.Height(),
	}
}

// cellOf maps a world point to a canvas cell.
func (m GridModel) cellOf(p geom.Point) (col, row int, visible bool) {
	if m.bounds.Width() <= 0 || m.bounds.Height() <= 0 {
		return 0, 0, false
	}
	col = int((p.X - m.bounds.MinX) / m.bounds.Width() * previewWidth)
	row = int((m.bounds.MaxY - p.Y) / m.bounds.Height() * previewHeight)
	if col < 0 || col >= previewWidth || row < 0 || row >= previewHeight {
		return 0, 0, false
	}
	return col, row, true
}
