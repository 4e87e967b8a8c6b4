package battleship

import (
	"strings"
	"unicode"

	cerr "github.com/saeidalz13/battleship-client/internal/error"
)

const MaxNicknameLength = 63

type Player struct {
	Nickname string

	// Outcome of every attack the other player made against this board
	Hits *HitMap
}

func NewPlayer(nickname string, rows, cols int) *Player {
	return &Player{
		Nickname: nickname,
		Hits:     NewHitMap(rows, cols),
	}
}

// The nickname travels as a single space separated
// field, so it cannot contain whitespace.
func ValidateNickname(nickname string) error {
	if nickname == "" || len(nickname) > MaxNicknameLength {
		return cerr.ErrNicknameInvalid(nickname, MaxNicknameLength)
	}
	if strings.IndexFunc(nickname, unicode.IsSpace) != -1 {
		return cerr.ErrNicknameInvalid(nickname, MaxNicknameLength)
	}
	return nil
}
