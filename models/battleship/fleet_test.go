package battleship

import (
	"errors"
	"strings"
	"testing"

	cerr "github.com/saeidalz13/battleship-client/internal/error"
)

// placeAll lines the ships up in columns 0, 2, 4, 6 and 8.
func placeAll(t *testing.T, f *Fleet) {
	t.Helper()
	for !f.AllPlaced() {
		s := f.Current()
		if err := f.Move(2*int(s.Index)-ShipMatrixSize/2, 0); err != nil {
			t.Fatal(err)
		}
		if err := f.PlaceCurrent(); err != nil {
			t.Fatalf("failed to place %s: %v", s.Name, err)
		}
	}
}

func TestFleetPlaceAll(t *testing.T) {
	f := NewFleet(10, 10)
	if f.Current().Index != ShipDestroyer {
		t.Fatalf("expected destroyer first, got %s", f.Current().Name)
	}

	placeAll(t, f)

	if f.Current() != nil {
		t.Fatalf("no ship should be selected, got %s", f.Current().Name)
	}
	if len(f.Unplaced()) != 0 || len(f.Placed()) != NumberOfShips {
		t.Fatalf("unexpected pools: %d unplaced, %d placed", len(f.Unplaced()), len(f.Placed()))
	}
	if f.ShipAt(8, 4) == nil || f.ShipAt(8, 4).Index != ShipCarrier {
		t.Fatal("expected the carrier on 8 4")
	}
	if f.ShipAt(1, 1) != nil {
		t.Fatal("expected water on 1 1")
	}
	if err := f.PlaceCurrent(); !errors.Is(err, cerr.ErrNoShipSelected) {
		t.Fatalf("expected ErrNoShipSelected, got %v", err)
	}
}

func TestFleetCanPlace(t *testing.T) {
	tests := []struct {
		name        string
		x, y        int
		expectedErr error
	}{
		{name: "collides with destroyer", x: 0, y: 0, expectedErr: cerr.ErrShipCollision},
		{name: "off the board", x: 9, y: 0, expectedErr: cerr.ErrShipOutOfBoard},
		{name: "free column", x: 1, y: 0, expectedErr: nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := NewFleet(10, 10)
			if err := f.PlaceCurrent(); err != nil {
				t.Fatal(err)
			}

			if err := f.Move(test.x, test.y); err != nil {
				t.Fatal(err)
			}
			err := f.PlaceCurrent()
			if !errors.Is(err, test.expectedErr) && err != test.expectedErr {
				t.Fatalf("expected %v, got %v", test.expectedErr, err)
			}

			placed := len(f.Placed())
			if test.expectedErr != nil && placed != 1 {
				t.Fatalf("refused ship must stay unplaced, placed: %d", placed)
			}
			if test.expectedErr == nil && placed != 2 {
				t.Fatalf("expected 2 placed ships, got %d", placed)
			}
		})
	}
}

func TestFleetUndo(t *testing.T) {
	f := NewFleet(10, 10)
	if f.Undo() {
		t.Fatal("nothing to undo on a new fleet")
	}

	if err := f.PlaceCurrent(); err != nil {
		t.Fatal(err)
	}
	if f.Current().Index != ShipSubmarine {
		t.Fatalf("expected submarine selected, got %s", f.Current().Name)
	}

	if !f.Undo() {
		t.Fatal("expected undo to succeed")
	}
	if f.Current().Index != ShipDestroyer {
		t.Fatalf("undone ship should be selected, got %s", f.Current().Name)
	}
	if len(f.Placed()) != 0 || len(f.Unplaced()) != NumberOfShips {
		t.Fatal("destroyer should be back in the unplaced pool")
	}
}

func TestFleetSelection(t *testing.T) {
	f := NewFleet(10, 10)

	f.Previous()
	if f.Current().Index != ShipCarrier {
		t.Fatalf("previous of the first ship wraps to the carrier, got %s", f.Current().Name)
	}

	if err := f.Select(ShipSubmarine); err != nil {
		t.Fatal(err)
	}
	if err := f.Move(1, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.PlaceCurrent(); err != nil {
		t.Fatal(err)
	}

	// The cursor skips the placed submarine.
	if err := f.Select(ShipDestroyer); err != nil {
		t.Fatal(err)
	}
	f.Next()
	if f.Current().Index != ShipCruiser {
		t.Fatalf("expected cruiser after destroyer, got %s", f.Current().Name)
	}
	f.Previous()
	f.Previous()
	if f.Current().Index != ShipCarrier {
		t.Fatalf("expected carrier before destroyer, got %s", f.Current().Name)
	}

	if err := f.Select(ShipSubmarine); !errors.Is(err, cerr.ErrNoShipSelected) {
		t.Fatalf("placed ship cannot be selected, got %v", err)
	}
	if err := f.Select(ShipIndex(9)); !errors.Is(err, cerr.ErrNoShipSelected) {
		t.Fatalf("invalid index cannot be selected, got %v", err)
	}
}

func TestFleetRotateCurrent(t *testing.T) {
	f := NewFleet(10, 10)
	if err := f.RotateCurrent(); err != nil {
		t.Fatal(err)
	}
	if f.Current().Rotation != 1 {
		t.Fatalf("expected rotation 1, got %d", f.Current().Rotation)
	}
}

func TestFleetLegacyRotation(t *testing.T) {
	f := NewFleet(10, 10)
	f.SetLegacyRotation(true)

	expected := NewCanonicalShips()[f.Current().Index]
	for i := 0; i < 3; i++ {
		if err := f.RotateCurrent(); err != nil {
			t.Fatal(err)
		}
		if err := expected.RotateLegacy(); err != nil {
			t.Fatal(err)
		}
	}
	if f.Current().Matrix != expected.Matrix || f.Current().Rotation != 3 {
		t.Fatalf("expected the legacy transform\nwant: %v\ngot:  %v", expected.Matrix, f.Current().Matrix)
	}

	// only the legacy transform validates the rotation state
	f.Current().Rotation = 9
	if err := f.RotateCurrent(); err == nil {
		t.Fatal("expected error for invalid rotation")
	}
	f.SetLegacyRotation(false)
	if err := f.RotateCurrent(); err != nil {
		t.Fatal(err)
	}
}

func TestFleetSerializeIncomplete(t *testing.T) {
	f := NewFleet(10, 10)
	for i := 0; i < NumberOfShips-1; i++ {
		s := f.Current()
		if err := f.Move(2*int(s.Index)-2, 0); err != nil {
			t.Fatal(err)
		}
		if err := f.PlaceCurrent(); err != nil {
			t.Fatal(err)
		}

		out, err := f.Serialize()
		if !errors.Is(err, cerr.ErrFleetIncomplete) {
			t.Fatalf("expected ErrFleetIncomplete with %d ships, got %v", i+1, err)
		}
		if out != "" {
			t.Fatalf("incomplete fleet must not serialize, got %q", out)
		}
	}
}

func TestFleetSerialize(t *testing.T) {
	f := NewFleet(10, 10)
	placeAll(t, f)

	out, err := f.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out, "\r\n") {
		t.Fatal("every line must end with CRLF")
	}

	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	if lines[0] != "ships_begin" || lines[len(lines)-1] != "ships_end" {
		t.Fatalf("roster must be framed by ships_begin/ships_end, got %q ... %q", lines[0], lines[len(lines)-1])
	}

	ships := 0
	body := lines[1 : len(lines)-1]
	for len(body) > 0 {
		if body[0] != "ship_begin" {
			t.Fatalf("expected ship_begin, got %q", body[0])
		}
		if !strings.HasPrefix(body[1], "name ") || !strings.HasPrefix(body[2], "coords ") || body[3] != "size 5 5" {
			t.Fatalf("malformed ship header: %q", body[1:4])
		}
		if body[4] != "matrix_begin" {
			t.Fatalf("expected matrix_begin, got %q", body[4])
		}
		for _, row := range body[5 : 5+ShipMatrixSize] {
			if len(row) != ShipMatrixSize || strings.Trim(row, "*FMB") != "" {
				t.Fatalf("malformed matrix row %q", row)
			}
		}
		if body[5+ShipMatrixSize] != "matrix_end" || body[6+ShipMatrixSize] != "ship_end" {
			t.Fatalf("malformed ship footer: %q", body[5+ShipMatrixSize:7+ShipMatrixSize])
		}
		body = body[7+ShipMatrixSize:]
		ships++
	}

	if ships != NumberOfShips {
		t.Fatalf("expected %d ships, got %d", NumberOfShips, ships)
	}
}
