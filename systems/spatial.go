// Package systems provides ECS systems for the simulation.
package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/windfall/components"
)

// Pair holds indices into a token snapshot, with I < J.
type Pair struct {
	I, J int
}

// maxGridCells bounds the grid allocation when tokens are spread far apart.
// Past it the grid falls back to the brute-force scan.
const maxGridCells = 1 << 16

// SpatialGrid is the collision broad phase: a uniform grid over token centers.
// It yields candidate pairs in the same (i, j) order as the brute-force scan.
// Candidates are chosen from the positions passed to PairsInto; a caller that
// moves tokens while resolving must switch to the full scan once the combined
// drift of two tokens could exceed Slack.
type SpatialGrid struct {
	cellSize   float64
	cols, rows int
	minX, minY float64
	cells      [][]int // token indices per cell

	slack float64 // reach beyond touching distance of the last PairsInto

	stamp []int // per-token dedupe marker
	cand  []int // scratch candidate list
}

// NewSpatialGrid creates a grid with the given cell size. A cell size <= 0 disables it.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{cellSize: cellSize}
}

// Clear removes all tokens from the grid.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// SetCellSize changes the cell size. Takes effect on the next PairsInto.
func (g *SpatialGrid) SetCellSize(size float64) {
	g.cellSize = size
}

// PairsInto appends candidate pairs to dst and returns it.
// A candidate is any pair whose centers are within r_i + 2*maxR; the narrow
// phase makes the final decision.
func (g *SpatialGrid) PairsInto(dst []Pair, toks []components.Token) []Pair {
	g.slack = math.Inf(1)
	if len(toks) < 2 {
		return dst
	}
	if g.cellSize <= 0 || !g.build(toks) {
		return bruteForcePairs(dst, len(toks))
	}

	maxR := 0.0
	for _, t := range toks {
		maxR = math.Max(maxR, t.Body.Radius)
	}
	g.slack = maxR

	if cap(g.stamp) < len(toks) {
		g.stamp = make([]int, len(toks))
	}
	g.stamp = g.stamp[:len(toks)]
	clear(g.stamp)

	for i, t := range toks {
		// The other token's radius plus its largest possible separation shift
		reach := t.Body.Radius + 2*maxR
		c0, r0 := g.cellCoords(t.Pos.X-reach, t.Pos.Y-reach)
		c1, r1 := g.cellCoords(t.Pos.X+reach, t.Pos.Y+reach)

		g.cand = g.cand[:0]
		for row := r0; row <= r1; row++ {
			for col := c0; col <= c1; col++ {
				for _, j := range g.cells[row*g.cols+col] {
					if j <= i || g.stamp[j] == i+1 {
						continue
					}
					g.stamp[j] = i + 1
					dx := toks[j].Pos.X - t.Pos.X
					dy := toks[j].Pos.Y - t.Pos.Y
					if dx*dx+dy*dy > reach*reach {
						continue
					}
					g.cand = append(g.cand, j)
				}
			}
		}

		slices.Sort(g.cand)
		for _, j := range g.cand {
			dst = append(dst, Pair{I: i, J: j})
		}
	}
	return dst
}

// Slack returns how much closer than the candidate reach a pair left out by the
// last PairsInto would have to get before it could overlap. It is +Inf when
// every pair was returned.
func (g *SpatialGrid) Slack() float64 {
	return g.slack
}

// build sizes the grid to the tokens' bounding box and inserts every token.
// Returns false when the box needs more than maxGridCells cells.
func (g *SpatialGrid) build(toks []components.Token) bool {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, t := range toks {
		minX = math.Min(minX, t.Pos.X)
		minY = math.Min(minY, t.Pos.Y)
		maxX = math.Max(maxX, t.Pos.X)
		maxY = math.Max(maxY, t.Pos.Y)
	}

	cols := int((maxX-minX)/g.cellSize) + 1
	rows := int((maxY-minY)/g.cellSize) + 1
	if cols <= 0 || rows <= 0 || cols*rows > maxGridCells {
		return false
	}

	g.cols, g.rows = cols, rows
	g.minX, g.minY = minX, minY
	n := cols * rows
	if cap(g.cells) < n {
		g.cells = make([][]int, n)
	}
	g.cells = g.cells[:n]
	g.Clear()

	for i, t := range toks {
		col, row := g.cellCoords(t.Pos.X, t.Pos.Y)
		idx := row*g.cols + col
		g.cells[idx] = append(g.cells[idx], i)
	}
	return true
}

// cellCoords returns the clamped cell column and row for a position.
func (g *SpatialGrid) cellCoords(x, y float64) (col, row int) {
	col = int((x - g.minX) / g.cellSize)
	row = int((y - g.minY) / g.cellSize)

	// Clamp to valid range
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// bruteForcePairs appends every pair (i, j) with i < j.
func bruteForcePairs(dst []Pair, n int) []Pair {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dst = append(dst, Pair{I: i, J: j})
		}
	}
	return dst
}
