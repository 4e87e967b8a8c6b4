package battleship

import (
	"sync"

	cerr "github.com/saeidalz13/battleship-client/internal/error"
)

type CellState uint8

const (
	CellUnknown CellState = iota
	CellMiss
	CellHit
)

func (c CellState) String() string {
	switch c {
	case CellUnknown:
		return "unknown"
	case CellMiss:
		return "miss"
	case CellHit:
		return "hit"
	default:
		return "invalid"
	}
}

// HitMap records the outcome of every attack against one board.
// Cells are stored row-major and only ever move from
// CellUnknown to CellMiss or CellHit.
type HitMap struct {
	rows  int
	cols  int
	cells []CellState
	mu    sync.RWMutex
}

func NewHitMap(rows, cols int) *HitMap {
	return &HitMap{
		rows:  rows,
		cols:  cols,
		cells: make([]CellState, rows*cols),
	}
}

func (h *HitMap) Rows() int {
	return h.rows
}

func (h *HitMap) Cols() int {
	return h.cols
}

func (h *HitMap) InBound(x, y int) bool {
	return x >= 0 && x < h.cols && y >= 0 && y < h.rows
}

func (h *HitMap) Set(x, y int, value CellState) error {
	if value != CellMiss && value != CellHit {
		return cerr.ErrInvalidCellState(uint8(value))
	}
	if !h.InBound(x, y) {
		return cerr.ErrXorYOutOfGridBound(x, y)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	i := y*h.cols + x
	if h.cells[i] != CellUnknown {
		return cerr.ErrPositionAlreadyMarked(x, y)
	}
	h.cells[i] = value
	return nil
}

func (h *HitMap) Get(x, y int) (CellState, error) {
	if !h.InBound(x, y) {
		return CellUnknown, cerr.ErrXorYOutOfGridBound(x, y)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.cells[y*h.cols+x], nil
}

// IsKnown is false for out of bound cells.
func (h *HitMap) IsKnown(x, y int) bool {
	state, err := h.Get(x, y)
	return err == nil && state != CellUnknown
}

// Snapshot copies the whole map under a single lock, indexed [y][x].
func (h *HitMap) Snapshot() [][]CellState {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([][]CellState, h.rows)
	for y := range out {
		out[y] = make([]CellState, h.cols)
		copy(out[y], h.cells[y*h.cols:(y+1)*h.cols])
	}
	return out
}
