package battleship

import (
	"fmt"
	"strings"

	cerr "github.com/saeidalz13/battleship-client/internal/error"
)

const (
	NumberOfShips  = 5
	ShipMatrixSize = 5
)

// Cell codes of a ship matrix. A non-empty code
// is also the character sent on the wire.
type Cell byte

const (
	CellEmpty  Cell = 0
	CellFront  Cell = 'F'
	CellMiddle Cell = 'M'
	CellBack   Cell = 'B'
)

// Rendered on the wire in place of CellEmpty
const emptyCellChar = '*'

// Indexed [y][x]
type ShipMatrix [ShipMatrixSize][ShipMatrixSize]Cell

type ShipIndex uint8

const (
	ShipDestroyer ShipIndex = iota
	ShipSubmarine
	ShipCruiser
	ShipBattleship
	ShipCarrier
)

func (i ShipIndex) String() string {
	switch i {
	case ShipDestroyer:
		return "destroyer"
	case ShipSubmarine:
		return "submarine"
	case ShipCruiser:
		return "cruiser"
	case ShipBattleship:
		return "battleship"
	case ShipCarrier:
		return "carrier"
	default:
		return "unknown"
	}
}

func (i ShipIndex) IsValid() bool {
	return i <= ShipCarrier
}

// Edges of the smallest rectangle holding every
// non-empty cell. All bounds are inclusive.
type Edges struct {
	Top    int
	Bottom int
	Left   int
	Right  int
}

func (e Edges) Width() int {
	return e.Right - e.Left + 1
}

func (e Edges) Height() int {
	return e.Bottom - e.Top + 1
}

func (e Edges) translate(x, y int) Edges {
	return Edges{
		Top:    e.Top + y,
		Bottom: e.Bottom + y,
		Left:   e.Left + x,
		Right:  e.Right + x,
	}
}

func (e Edges) overlaps(o Edges) bool {
	return e.Left <= o.Right && o.Left <= e.Right && e.Top <= o.Bottom && o.Top <= e.Bottom
}

// X and Y anchor the top-left corner of the 5x5 frame on
// the board, so they are negative when the shape sits away
// from the frame's first row or column.
type Ship struct {
	Index    ShipIndex
	Name     string
	Rotation int
	X        int
	Y        int
	Matrix   ShipMatrix
}

func NewShip(index ShipIndex, matrix ShipMatrix) *Ship {
	return &Ship{
		Index:  index,
		Name:   index.String(),
		Matrix: matrix,
	}
}

// Returns the five ships of a match in index order.
// Every ship is drawn vertically in the middle column of its frame.
func NewCanonicalShips() [NumberOfShips]*Ship {
	column := func(rows ...Cell) ShipMatrix {
		var m ShipMatrix
		for y, c := range rows {
			m[y][ShipMatrixSize/2] = c
		}
		return m
	}

	return [NumberOfShips]*Ship{
		NewShip(ShipDestroyer, column(CellEmpty, CellFront, CellBack)),
		NewShip(ShipSubmarine, column(CellEmpty, CellFront, CellMiddle, CellBack)),
		NewShip(ShipCruiser, column(CellEmpty, CellFront, CellMiddle, CellBack)),
		NewShip(ShipBattleship, column(CellFront, CellMiddle, CellMiddle, CellBack)),
		NewShip(ShipCarrier, column(CellFront, CellMiddle, CellMiddle, CellMiddle, CellBack)),
	}
}

// Size returns the number of occupied cells.
func (s *Ship) Size() int {
	n := 0
	for y := 0; y < ShipMatrixSize; y++ {
		for x := 0; x < ShipMatrixSize; x++ {
			if s.Matrix[y][x] != CellEmpty {
				n++
			}
		}
	}
	return n
}

// Rotate turns the matrix a quarter clockwise in place.
func (s *Ship) Rotate() {
	var rotated ShipMatrix
	for y := 0; y < ShipMatrixSize; y++ {
		for x := 0; x < ShipMatrixSize; x++ {
			rotated[x][ShipMatrixSize-1-y] = s.Matrix[y][x]
		}
	}
	s.Matrix = rotated
	s.Rotation = (s.Rotation + 1) % 4
}

// RotateLegacy reproduces the transform older peers apply
// (Fleet.SetLegacyRotation):
// odd target rotations turn, even ones only transpose. Four calls
// come back to the start, but half way an asymmetric shape is
// mirrored instead of turned.
func (s *Ship) RotateLegacy() error {
	if s.Rotation < 0 || s.Rotation > 3 {
		return cerr.ErrInvalidRotation(s.Rotation)
	}
	next := (s.Rotation + 1) % 4
	mirror := next%2 == 1

	var rotated ShipMatrix
	for y := 0; y < ShipMatrixSize; y++ {
		for x := 0; x < ShipMatrixSize; x++ {
			if mirror {
				rotated[x][ShipMatrixSize-1-y] = s.Matrix[y][x]
			} else {
				rotated[x][y] = s.Matrix[y][x]
			}
		}
	}
	s.Matrix = rotated
	s.Rotation = next
	return nil
}

// Edges are local to the frame. ok is false for an empty matrix.
func (s *Ship) Edges() (e Edges, ok bool) {
	e = Edges{Top: ShipMatrixSize - 1, Left: ShipMatrixSize - 1}
	for y := 0; y < ShipMatrixSize; y++ {
		for x := 0; x < ShipMatrixSize; x++ {
			if s.Matrix[y][x] == CellEmpty {
				continue
			}
			ok = true
			e.Top = min(e.Top, y)
			e.Bottom = max(e.Bottom, y)
			e.Left = min(e.Left, x)
			e.Right = max(e.Right, x)
		}
	}
	return e, ok
}

// Footprint is the bounding box in board coordinates.
func (s *Ship) Footprint() Edges {
	e, _ := s.Edges()
	return e.translate(s.X, s.Y)
}

func (s *Ship) FitsBoard(rows, cols int) bool {
	if _, ok := s.Edges(); !ok {
		return false
	}
	f := s.Footprint()
	return f.Left >= 0 && f.Top >= 0 && f.Right < cols && f.Bottom < rows
}

// Collides compares bounding boxes only, so two shapes whose
// boxes intersect collide even if no occupied cells touch.
func (s *Ship) Collides(other *Ship) bool {
	if s == other || other == nil {
		return false
	}
	if _, ok := s.Edges(); !ok {
		return false
	}
	if _, ok := other.Edges(); !ok {
		return false
	}
	return s.Footprint().overlaps(other.Footprint())
}

// Occupies reports whether board cell (x, y) holds a part of the ship.
func (s *Ship) Occupies(x, y int) bool {
	lx, ly := x-s.X, y-s.Y
	if lx < 0 || ly < 0 || lx >= ShipMatrixSize || ly >= ShipMatrixSize {
		return false
	}
	return s.Matrix[ly][lx] != CellEmpty
}

func (s *Ship) lines() []string {
	lines := make([]string, 0, ShipMatrixSize+8)
	lines = append(lines,
		"ship_begin",
		"name "+s.Name,
		fmt.Sprintf("coords %d %d", s.X, s.Y),
		fmt.Sprintf("size %d %d", ShipMatrixSize, ShipMatrixSize),
		"matrix_begin",
	)

	var row strings.Builder
	for y := 0; y < ShipMatrixSize; y++ {
		row.Reset()
		for x := 0; x < ShipMatrixSize; x++ {
			if c := s.Matrix[y][x]; c == CellEmpty {
				row.WriteByte(emptyCellChar)
			} else {
				row.WriteByte(byte(c))
			}
		}
		lines = append(lines, row.String())
	}

	return append(lines, "matrix_end", "ship_end")
}

// Serialize renders the ship_begin...ship_end block
// with every line terminated by CRLF.
func (s *Ship) Serialize() string {
	return joinCRLF(s.lines())
}

func joinCRLF(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteString("\r\n")
	}
	return b.String()
}
