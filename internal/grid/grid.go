package grid

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// Cell is one grid position holding a color triple in [0,1].
type Cell struct {
	ID      string
	R, G, B float64
}

// Max returns the brightest channel.
func (c Cell) Max() float64 {
	return math.Max(c.R, math.Max(c.G, c.B))
}

// Snapshot is the complete set of cell colors at one instant. Cells are stored
// in row-major order and never mutated after construction.
type Snapshot struct {
	rows, cols int
	at         int64
	cells      []Cell
}

// New allocates a rows×cols snapshot with every channel at zero and a fresh
// identity per cell.
func New(rows, cols int) (*Snapshot, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i].ID = uuid.NewString()
	}
	return &Snapshot{rows: rows, cols: cols, cells: cells}, nil
}

// Rows is the number of grid rows.
func (s *Snapshot) Rows() int { return s.rows }

// Cols is the number of grid columns.
func (s *Snapshot) Cols() int { return s.cols }

// Len is the number of cells, rows*cols.
func (s *Snapshot) Len() int { return len(s.cells) }

// Time is the wall-clock Unix millisecond timestamp the colors were computed
// at, or zero for the initial snapshot.
func (s *Snapshot) Time() int64 { return s.at }

// At returns the cell at row i, column j.
func (s *Snapshot) At(i, j int) Cell {
	return s.cells[i*s.cols+j]
}

// Each calls fn for every cell in row-major order.
func (s *Snapshot) Each(fn func(i, j int, c Cell)) {
	for idx, c := range s.cells {
		fn(idx/s.cols, idx%s.cols, c)
	}
}

// IDs returns the cell identities in row-major order.
func (s *Snapshot) IDs() []string {
	ids := make([]string, len(s.cells))
	for i, c := range s.cells {
		ids[i] = c.ID
	}
	return ids
}

// Next derives a new snapshot at Unix millisecond t. Only the identities of s
// are carried over; colors are a pure function of position and time.
func (s *Snapshot) Next(w Wave, t int64) *Snapshot {
	next := &Snapshot{
		rows:  s.rows,
		cols:  s.cols,
		at:    t,
		cells: make([]Cell, len(s.cells)),
	}
	for idx, c := range s.cells {
		i, j := idx/s.cols, idx%s.cols
		r, g, b := w.Color(i, j, s.rows, s.cols, float64(t))
		next.cells[idx] = Cell{ID: c.ID, R: r, G: g, B: b}
	}
	return next
}
