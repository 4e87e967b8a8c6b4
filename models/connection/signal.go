package connection

const ProtocolVersion = "1.0"

// Transports the line protocol runs over.
const (
	TransportTCP = "tcp"
	TransportWs  = "ws"

	DefaultWsPath = "/battleship"
)

// Message headers. The first line of every message is one of these.
const (
	HeaderHello     = "hello"
	HeaderWaitMatch = "wait_match"
	HeaderMatched   = "matched"
	HeaderReady     = "ready"
	HeaderWaitShips = "wait_ships"
	HeaderYourTurn  = "your_turn"
	HeaderWaitTurn  = "wait_turn"
	HeaderAttack    = "attack"
	HeaderNoHit     = "no_hit"
	HeaderHit       = "hit"
	HeaderHitSunk   = "hit_sunk"
	HeaderYouWin    = "you_win"
	HeaderYouLose   = "you_lose"
)

// Keywords of the keyword-prefixed lines
const (
	KeyVersion = "version"
	KeyName    = "name"
	KeyRows    = "rows"
	KeyCols    = "cols"
)

// IsAttackResult is true for the three headers carrying a turn result.
func IsAttackResult(header string) bool {
	return header == HeaderNoHit || header == HeaderHit || header == HeaderHitSunk
}
