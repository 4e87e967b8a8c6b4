package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackDiscarded = "attack discarded before sending"
)

// Sentinels wrapped by the constructors below so callers
// can match them with errors.Is
var (
	ErrCellOutOfBound    = errors.New("cell out of hit map bound")
	ErrCellAlreadyMarked = errors.New("cell already marked")
	ErrFleetIncomplete   = errors.New("fleet is not completely placed")
	ErrShipOutOfBoard    = errors.New("ship does not fit the board")
	ErrShipCollision     = errors.New("ship collides with a placed ship")
	ErrNoShipSelected    = errors.New("no unplaced ship selected")
	ErrInvalidNickname   = errors.New("invalid nickname")
	ErrInvalidBoardSize  = errors.New("invalid board size")
)

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrCellOutOfBound, x, y)
}

func ErrPositionAlreadyMarked(x, y int) error {
	return fmt.Errorf("%w\tx: %d\ty: %d", ErrCellAlreadyMarked, x, y)
}

func ErrInvalidCellState(value uint8) error {
	return fmt.Errorf("invalid hit map cell state: %d", value)
}

func ErrFleetNotPlaced(placed, required int) error {
	return fmt.Errorf("%w: placed %d of %d ships", ErrFleetIncomplete, placed, required)
}

func ErrShipDoesNotFit(name string, x, y int) error {
	return fmt.Errorf("%w: %s at x: %d y: %d", ErrShipOutOfBoard, name, x, y)
}

func ErrShipsCollide(name, other string) error {
	return fmt.Errorf("%w: %s overlaps %s", ErrShipCollision, name, other)
}

func ErrNicknameInvalid(nickname string, maxLen int) error {
	return fmt.Errorf("%w: %q (1 to %d bytes, no whitespace)", ErrInvalidNickname, nickname, maxLen)
}

func ErrBoardSizeInvalid(rows, cols, min, max int) error {
	return fmt.Errorf("%w: rows %d cols %d (each must be within %d and %d)", ErrInvalidBoardSize, rows, cols, min, max)
}

func ErrInvalidRotation(rotation int) error {
	return fmt.Errorf("invalid rotation value for ship: %d", rotation)
}

func ErrKeyNotExists(key string) error {
	return fmt.Errorf("the key does not exist:\t%s", key)
}

func ErrMalformedCoords(line string) error {
	return fmt.Errorf("badly formatted coordinates: %q", line)
}

func ErrInvalidEnvValue(key, value string) error {
	return fmt.Errorf("invalid value for %s: %q", key, value)
}
