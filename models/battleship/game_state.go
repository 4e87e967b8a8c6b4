package battleship

import (
	"context"
	"sync"
)

type Phase uint8

const (
	PhaseConnecting Phase = iota
	PhaseWaitingMatch
	PhasePlacingShips
	PhaseWaitingShips
	PhaseOwnTurn
	PhaseWaitingTurn
	PhaseWon
	PhaseLost
)

func (p Phase) String() string {
	switch p {
	case PhaseConnecting:
		return "CONNECTING"
	case PhaseWaitingMatch:
		return "WAITING_MATCH"
	case PhasePlacingShips:
		return "PLACING_SHIPS"
	case PhaseWaitingShips:
		return "WAITING_SHIPS"
	case PhaseOwnTurn:
		return "OWN_TURN"
	case PhaseWaitingTurn:
		return "WAITING_TURN"
	case PhaseWon:
		return "WON"
	case PhaseLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

func (p Phase) IsTerminal() bool {
	return p == PhaseWon || p == PhaseLost
}

type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeMiss
	OutcomeHit
	OutcomeHitSunk
	OutcomeEnded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "NONE"
	case OutcomeMiss:
		return "MISS"
	case OutcomeHit:
		return "HIT"
	case OutcomeHitSunk:
		return "HIT_SUNK"
	case OutcomeEnded:
		return "ENDED"
	default:
		return "UNKNOWN"
	}
}

type ActionKind uint8

const (
	ActionShipsReady ActionKind = iota
	ActionAttack
)

// Action is what the presentation side hands to the network side.
// X and Y are only meaningful for ActionAttack.
type Action struct {
	Kind ActionKind
	X    int
	Y    int
}

func NewAttackAction(x, y int) Action {
	return Action{Kind: ActionAttack, X: x, Y: y}
}

func NewShipsReadyAction() Action {
	return Action{Kind: ActionShipsReady}
}

// GameState is shared by the network goroutine, which publishes
// phase and outcome, and the presentation goroutine, which posts
// actions. The mailbox holds at most one action: it is pending
// from PostAction until AwaitAction takes it, then in flight until
// the network goroutine publishes the result of the round trip.
type GameState struct {
	phase    Phase
	outcome  Outcome
	opponent string

	pending  bool
	inFlight bool
	actions  chan Action

	mu sync.RWMutex
}

func NewGameState() *GameState {
	return &GameState{
		phase:   PhaseConnecting,
		outcome: OutcomeNone,
		actions: make(chan Action, 1),
	}
}

func (gs *GameState) Phase() Phase {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.phase
}

func (gs *GameState) Outcome() Outcome {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.outcome
}

// Opponent is empty until the match is found.
func (gs *GameState) Opponent() string {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.opponent
}

// SetPhase also ends any round trip in flight.
func (gs *GameState) SetPhase(p Phase) {
	gs.mu.Lock()
	gs.phase = p
	gs.inFlight = false
	gs.mu.Unlock()
}

// SetMatched records the opponent nickname once and moves to PLACING_SHIPS.
func (gs *GameState) SetMatched(opponent string) {
	gs.mu.Lock()
	if gs.opponent == "" {
		gs.opponent = opponent
	}
	gs.phase = PhasePlacingShips
	gs.inFlight = false
	gs.mu.Unlock()
}

// PostOutcome publishes outcome and phase in one critical section.
func (gs *GameState) PostOutcome(o Outcome, p Phase) {
	gs.mu.Lock()
	gs.outcome = o
	gs.phase = p
	gs.inFlight = false
	gs.mu.Unlock()
}

// ActionPending is true from PostAction until the round trip result
// is published. The presentation side checks it before posting.
func (gs *GameState) ActionPending() bool {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.pending || gs.inFlight
}

// PostAction is ignored (false) while another action is pending or
// in flight, or when the action does not belong to the current phase.
func (gs *GameState) PostAction(a Action) bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.pending || gs.inFlight {
		return false
	}
	switch {
	case a.Kind == ActionShipsReady && gs.phase == PhasePlacingShips:
	case a.Kind == ActionAttack && gs.phase == PhaseOwnTurn:
	default:
		return false
	}

	// The channel is empty whenever pending is false, so this never blocks.
	gs.pending = true
	gs.actions <- a
	return true
}

// AwaitAction blocks until an action is posted or ctx is done.
func (gs *GameState) AwaitAction(ctx context.Context) (Action, error) {
	select {
	case <-ctx.Done():
		return Action{}, ctx.Err()

	case a := <-gs.actions:
		gs.mu.Lock()
		gs.pending = false
		gs.inFlight = true
		gs.mu.Unlock()
		return a, nil
	}
}

// DiscardAction reopens the mailbox after the network side
// refused a consumed action without sending it.
func (gs *GameState) DiscardAction() {
	gs.mu.Lock()
	gs.inFlight = false
	gs.mu.Unlock()
}
