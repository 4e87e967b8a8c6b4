package battleship

import (
	"github.com/saeidalz13/battleship-client/internal"
	cerr "github.com/saeidalz13/battleship-client/internal/error"
)

const (
	DefaultBoardSize = 10

	// Ships need a 5 cell long lane; letters label at most 26 columns.
	MinBoardSize = ShipMatrixSize
	MaxBoardSize = 26
)

// Match is everything one client knows about a game. It is created by
// the application root and shared by reference between the network
// client and the presentation side.
//
// Self.Hits is marked by the opponent's attacks (pushed by the server)
// and OpponentHits by the replies to our own attacks. Both maps and
// State are safe for concurrent use; Fleet is handed over through the
// ships-ready action.
type Match struct {
	Uuid         string
	Rows         int
	Cols         int
	Self         *Player
	OpponentHits *HitMap
	Fleet        *Fleet
	State        *GameState
}

func NewMatch(nickname string, rows, cols int) (*Match, error) {
	if err := ValidateNickname(nickname); err != nil {
		return nil, err
	}
	if rows < MinBoardSize || rows > MaxBoardSize || cols < MinBoardSize || cols > MaxBoardSize {
		return nil, cerr.ErrBoardSizeInvalid(rows, cols, MinBoardSize, MaxBoardSize)
	}

	return &Match{
		Uuid:         internal.NewShortId(),
		Rows:         rows,
		Cols:         cols,
		Self:         NewPlayer(nickname, rows, cols),
		OpponentHits: NewHitMap(rows, cols),
		Fleet:        NewFleet(rows, cols),
		State:        NewGameState(),
	}, nil
}

func (m *Match) OwnHits() *HitMap {
	return m.Self.Hits
}

// Opponent returns the opponent's nickname once matched.
func (m *Match) Opponent() string {
	return m.State.Opponent()
}
