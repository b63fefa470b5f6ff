package sim

import (
	"github.com/mlange-42/ark/ecs"
)

// Grid provides near-constant-time neighbor lookups over pair positions.
// It is rebuilt every frame and is purely a performance structure, never a
// source of truth.
type Grid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]ecs.Entity
}

// NewGrid creates a grid covering the given world size. The cell size must be
// at least the maximum collision distance between two cells so that any
// colliding pair falls within a 3x3 bucket neighborhood.
func NewGrid(width, height, cellSize float32) *Grid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]ecs.Entity, cols*rows)
	for i := range cells {
		cells[i] = make([]ecs.Entity, 0, 8)
	}

	return &Grid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entities from the grid, keeping allocated capacity.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds an entity to the bucket containing (x, y).
func (g *Grid) Insert(e ecs.Entity, x, y float32) {
	col := g.clampCol(int(x / g.cellSize))
	row := g.clampRow(int(y / g.cellSize))
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], e)
}

// NeighborsInto appends every entity in the bucket containing (x, y) or one of
// its 8 adjacent buckets to dst, excluding the given entity, and returns the
// updated slice. No ordering guarantee. Reuse dst across calls to avoid
// allocations.
//
// Out-of-bounds positions clamp to the edge buckets. Clamping is monotone, so
// two positions within one cell width of each other always land in adjacent
// (or identical) buckets and are never missed.
func (g *Grid) NeighborsInto(dst []ecs.Entity, exclude ecs.Entity, x, y float32) []ecs.Entity {
	centerCol := int(x / g.cellSize)
	centerRow := int(y / g.cellSize)

	colLo := g.clampCol(centerCol - 1)
	colHi := g.clampCol(centerCol + 1)
	rowLo := g.clampRow(centerRow - 1)
	rowHi := g.clampRow(centerRow + 1)

	for row := rowLo; row <= rowHi; row++ {
		for col := colLo; col <= colHi; col++ {
			for _, e := range g.cells[row*g.cols+col] {
				if e != exclude {
					dst = append(dst, e)
				}
			}
		}
	}

	return dst
}

func (g *Grid) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if col >= g.cols {
		return g.cols - 1
	}
	return col
}

func (g *Grid) clampRow(row int) int {
	if row < 0 {
		return 0
	}
	if row >= g.rows {
		return g.rows - 1
	}
	return row
}
