package battleship

import (
	"errors"
	"sync"
	"testing"

	cerr "github.com/saeidalz13/battleship-client/internal/error"
)

func TestHitMapSet(t *testing.T) {
	tests := []struct {
		name        string
		x, y        int
		value       CellState
		expectedErr error
	}{
		{name: "hit", x: 3, y: 4, value: CellHit},
		{name: "miss in corner", x: 9, y: 9, value: CellMiss},
		{name: "x out of bound", x: 10, y: 0, value: CellHit, expectedErr: cerr.ErrCellOutOfBound},
		{name: "negative y", x: 0, y: -1, value: CellMiss, expectedErr: cerr.ErrCellOutOfBound},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h := NewHitMap(10, 10)
			err := h.Set(test.x, test.y, test.value)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("expected %v, got %v", test.expectedErr, err)
			}
			if test.expectedErr != nil {
				return
			}

			got, err := h.Get(test.x, test.y)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.value {
				t.Fatalf("expected %s, got %s", test.value, got)
			}
		})
	}
}

func TestHitMapInvalidValue(t *testing.T) {
	h := NewHitMap(10, 10)
	if err := h.Set(0, 0, CellUnknown); err == nil {
		t.Fatal("setting a cell back to unknown must fail")
	}
	if err := h.Set(0, 0, CellState(7)); err == nil {
		t.Fatal("setting an invalid value must fail")
	}
}

func TestHitMapNeverReverts(t *testing.T) {
	h := NewHitMap(10, 10)
	if err := h.Set(5, 6, CellHit); err != nil {
		t.Fatal(err)
	}

	for _, v := range []CellState{CellMiss, CellHit, CellUnknown} {
		if err := h.Set(5, 6, v); err == nil {
			t.Fatalf("overwriting a marked cell with %s must fail", v)
		}
	}
	if err := h.Set(5, 6, CellMiss); !errors.Is(err, cerr.ErrCellAlreadyMarked) {
		t.Fatalf("expected ErrCellAlreadyMarked, got %v", err)
	}

	if got, _ := h.Get(5, 6); got != CellHit {
		t.Fatalf("expected hit to stay, got %s", got)
	}
	if !h.IsKnown(5, 6) || h.IsKnown(6, 5) || h.IsKnown(-1, 0) {
		t.Fatal("IsKnown disagrees with the map")
	}
}

func TestHitMapAcrossGoroutines(t *testing.T) {
	const size = 10
	h := NewHitMap(size, size)

	var wg sync.WaitGroup
	written := make(chan [2]int, size*size)

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(written)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if err := h.Set(x, y, CellHit); err != nil {
					t.Error(err)
					return
				}
				written <- [2]int{x, y}
			}
		}
	}()

	// Once a cell is seen as hit it must never be seen as unknown again.
	seen := make(map[[2]int]bool)
	for cell := range written {
		seen[cell] = true
		for c := range seen {
			if got, err := h.Get(c[0], c[1]); err != nil || got != CellHit {
				t.Fatalf("cell %v: expected hit, got %s (%v)", c, got, err)
			}
		}
	}
	wg.Wait()

	snapshot := h.Snapshot()
	if len(snapshot) != size || len(snapshot[0]) != size {
		t.Fatalf("unexpected snapshot size %dx%d", len(snapshot), len(snapshot[0]))
	}
	for y := range snapshot {
		for x := range snapshot[y] {
			if snapshot[y][x] != CellHit {
				t.Fatalf("snapshot %d %d: expected hit, got %s", x, y, snapshot[y][x])
			}
		}
	}
}

func TestHitMapSnapshotIndexing(t *testing.T) {
	h := NewHitMap(4, 6)
	if err := h.Set(5, 1, CellMiss); err != nil {
		t.Fatal(err)
	}

	snapshot := h.Snapshot()
	if len(snapshot) != 4 || len(snapshot[0]) != 6 {
		t.Fatalf("expected 4 rows of 6, got %d rows of %d", len(snapshot), len(snapshot[0]))
	}
	if snapshot[1][5] != CellMiss {
		t.Fatalf("snapshot is indexed [y][x], got %v", snapshot)
	}

	snapshot[0][0] = CellHit
	if h.IsKnown(0, 0) {
		t.Fatal("snapshot must be a copy")
	}
}
