package battleship

import (
	cerr "github.com/saeidalz13/battleship-client/internal/error"
)

// Fleet keeps every ship in exactly one of two pools:
// unplaced (indexed by ship index) or placed (in placement order).
//
// Fleet is not locked. It is mutated by the presentation side
// until the ships-ready action is posted; the network side only
// reads it after receiving that action.
type Fleet struct {
	rows     int
	cols     int
	unplaced [NumberOfShips]*Ship
	placed   []*Ship
	current  int

	legacyRotation bool
}

func NewFleet(rows, cols int) *Fleet {
	return &Fleet{
		rows:     rows,
		cols:     cols,
		unplaced: NewCanonicalShips(),
		placed:   make([]*Ship, 0, NumberOfShips),
	}
}

// Current returns the selected unplaced ship, nil when all are placed.
func (f *Fleet) Current() *Ship {
	return f.unplaced[f.current]
}

func (f *Fleet) Next() {
	f.step(1)
}

func (f *Fleet) Previous() {
	f.step(NumberOfShips - 1)
}

func (f *Fleet) step(delta int) {
	if f.AllPlaced() {
		return
	}
	for {
		f.current = (f.current + delta) % NumberOfShips
		if f.unplaced[f.current] != nil {
			return
		}
	}
}

// Select moves the cursor to an unplaced ship.
func (f *Fleet) Select(index ShipIndex) error {
	if !index.IsValid() || f.unplaced[index] == nil {
		return cerr.ErrNoShipSelected
	}
	f.current = int(index)
	return nil
}

func (f *Fleet) Move(x, y int) error {
	s := f.Current()
	if s == nil {
		return cerr.ErrNoShipSelected
	}
	s.X, s.Y = x, y
	return nil
}

// SetLegacyRotation makes RotateCurrent use Ship.RotateLegacy. Set it
// before the first rotation; mixing both transforms on one ship leaves
// orientations neither cycle produces.
func (f *Fleet) SetLegacyRotation(on bool) {
	f.legacyRotation = on
}

func (f *Fleet) RotateCurrent() error {
	s := f.Current()
	if s == nil {
		return cerr.ErrNoShipSelected
	}
	if f.legacyRotation {
		return s.RotateLegacy()
	}
	s.Rotate()
	return nil
}

// CanPlace checks the board edges first, then every placed ship.
func (f *Fleet) CanPlace(s *Ship) error {
	if !s.FitsBoard(f.rows, f.cols) {
		return cerr.ErrShipDoesNotFit(s.Name, s.X, s.Y)
	}
	if other := f.collidingShip(s); other != nil {
		return cerr.ErrShipsCollide(s.Name, other.Name)
	}
	return nil
}

func (f *Fleet) collidingShip(s *Ship) *Ship {
	for _, p := range f.placed {
		if s.Collides(p) {
			return p
		}
	}
	return nil
}

// PlaceCurrent moves the selected ship to the placed pool
// and selects the next unplaced one.
func (f *Fleet) PlaceCurrent() error {
	s := f.Current()
	if s == nil {
		return cerr.ErrNoShipSelected
	}
	if err := f.CanPlace(s); err != nil {
		return err
	}

	f.placed = append(f.placed, s)
	f.unplaced[s.Index] = nil
	f.Next()
	return nil
}

// Undo returns the last placed ship to the unplaced pool and selects it.
func (f *Fleet) Undo() bool {
	if len(f.placed) == 0 {
		return false
	}
	last := f.placed[len(f.placed)-1]
	f.placed = f.placed[:len(f.placed)-1]
	f.unplaced[last.Index] = last
	f.current = int(last.Index)
	return true
}

func (f *Fleet) AllPlaced() bool {
	return len(f.placed) == NumberOfShips
}

func (f *Fleet) Placed() []*Ship {
	out := make([]*Ship, len(f.placed))
	copy(out, f.placed)
	return out
}

func (f *Fleet) Unplaced() []*Ship {
	out := make([]*Ship, 0, NumberOfShips)
	for _, s := range f.unplaced {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// ShipAt returns the placed ship occupying board cell (x, y).
func (f *Fleet) ShipAt(x, y int) *Ship {
	for _, s := range f.placed {
		if s.Occupies(x, y) {
			return s
		}
	}
	return nil
}

// Lines is the roster in wire lines, ships_begin to ships_end.
func (f *Fleet) Lines() ([]string, error) {
	if !f.AllPlaced() {
		return nil, cerr.ErrFleetNotPlaced(len(f.placed), NumberOfShips)
	}

	lines := []string{"ships_begin"}
	for _, s := range f.placed {
		lines = append(lines, s.lines()...)
	}
	return append(lines, "ships_end"), nil
}

// Serialize returns no output unless the whole fleet is placed.
func (f *Fleet) Serialize() (string, error) {
	lines, err := f.Lines()
	if err != nil {
		return "", err
	}
	return joinCRLF(lines), nil
}
