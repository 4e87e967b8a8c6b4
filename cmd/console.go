package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	mb "github.com/saeidalz13/battleship-client/models/battleship"
)

const frameInterval time.Duration = time.Millisecond * 100

// The mouse in the graphical client pointed at the ship center,
// the anchor is the top-left of the 5x5 frame.
const anchorOffset = mb.ShipMatrixSize / 2

var (
	errQuit          = errors.New("quit requested")
	errAttackPending = errors.New("attack already sent")
)

// Console is a line based stand-in for the graphical client. It never
// touches the network: it reads the match state on every frame and
// talks to the client only through posted actions.
type Console struct {
	match *mb.Match
	in    io.Reader
	out   io.Writer

	lastPhase   mb.Phase
	lastOutcome mb.Outcome
}

func NewConsole(match *mb.Match, in io.Reader, out io.Writer) *Console {
	return &Console{
		match:       match,
		in:          in,
		out:         out,
		lastPhase:   match.State.Phase(),
		lastOutcome: match.State.Outcome(),
	}
}

// Run returns on quit, end of input or when ctx is done.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	fmt.Fprintln(c.out, c.status())

frameLoop:
	for {
		select {
		case <-ctx.Done():
			break frameLoop

		case <-ticker.C:
			c.frame()

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if err := c.Execute(line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				fmt.Fprintln(c.out, "error:", err)
			}
		}
	}

	return ctx.Err()
}

// frame prints the status whenever the client moved the match on.
func (c *Console) frame() {
	phase, outcome := c.match.State.Phase(), c.match.State.Outcome()
	if phase == c.lastPhase && outcome == c.lastOutcome {
		return
	}
	c.lastPhase, c.lastOutcome = phase, outcome
	fmt.Fprintln(c.out, c.status())
}

func (c *Console) status() string {
	state := c.match.State
	switch state.Phase() {
	case mb.PhaseConnecting:
		return "connecting to server..."
	case mb.PhaseWaitingMatch:
		return "waiting for an opponent..."
	case mb.PhasePlacingShips:
		if state.ActionPending() {
			return "sending ships..."
		}
		return fmt.Sprintf("playing against %s. place your ships (%d left)", state.Opponent(), len(c.match.Fleet.Unplaced()))
	case mb.PhaseWaitingShips:
		return "waiting for the opponent to place ships..."
	// The outcome belongs to whoever moved last: the opponent when it
	// is our turn, us while we wait.
	case mb.PhaseOwnTurn:
		if state.Outcome() == mb.OutcomeNone {
			return "your turn, attack!"
		}
		return fmt.Sprintf("%s attacked you: %s. your turn, attack!", state.Opponent(), outcomeText(state.Outcome()))
	case mb.PhaseWaitingTurn:
		if state.Outcome() == mb.OutcomeNone {
			return fmt.Sprintf("waiting for %s...", state.Opponent())
		}
		return fmt.Sprintf("your attack: %s. waiting for %s...", outcomeText(state.Outcome()), state.Opponent())
	case mb.PhaseWon:
		return "you won!"
	case mb.PhaseLost:
		return "you lost."
	default:
		return "unknown phase"
	}
}

func outcomeText(o mb.Outcome) string {
	switch o {
	case mb.OutcomeMiss:
		return "miss"
	case mb.OutcomeHit:
		return "hit"
	case mb.OutcomeHitSunk:
		return "hit and sunk"
	default:
		return "none"
	}
}

// Execute runs one command line.
func (c *Console) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	fleet := c.match.Fleet
	state := c.match.State

	switch cmd, args := fields[0], fields[1:]; cmd {
	case "help":
		c.help()

	case "quit", "exit":
		return errQuit

	case "board":
		c.render()

	case "next", "prev", "move", "rotate", "place", "undo", "select":
		if state.Phase() != mb.PhasePlacingShips || state.ActionPending() {
			return fmt.Errorf("ships can only be changed while placing")
		}
		return c.editFleet(fleet, cmd, args)

	case "ready":
		if !fleet.AllPlaced() {
			return fmt.Errorf("%d ships left to place", len(fleet.Unplaced()))
		}
		if !state.PostAction(mb.NewShipsReadyAction()) {
			return fmt.Errorf("not the time to send ships")
		}

	case "attack":
		x, y, err := parseXY(args)
		if err != nil {
			return err
		}
		if state.Phase() == mb.PhaseOwnTurn && state.ActionPending() {
			return errAttackPending
		}
		if !state.PostAction(mb.NewAttackAction(x, y)) {
			return fmt.Errorf("not your turn")
		}

	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}

	return nil
}

func (c *Console) editFleet(fleet *mb.Fleet, cmd string, args []string) error {
	switch cmd {
	case "next":
		fleet.Next()
	case "prev":
		fleet.Previous()
	case "rotate":
		return fleet.RotateCurrent()
	case "undo":
		if !fleet.Undo() {
			return fmt.Errorf("nothing to undo")
		}
	case "place":
		if err := fleet.PlaceCurrent(); err != nil {
			return err
		}
	case "move":
		x, y, err := parseXY(args)
		if err != nil {
			return err
		}
		return fleet.Move(x-anchorOffset, y-anchorOffset)
	case "select":
		if len(args) != 1 {
			return fmt.Errorf("usage: select <ship name>")
		}
		for i := mb.ShipDestroyer; i <= mb.ShipCarrier; i++ {
			if i.String() == args[0] {
				return fleet.Select(i)
			}
		}
		return fmt.Errorf("no ship named %q", args[0])
	}

	if s := fleet.Current(); s != nil {
		fmt.Fprintf(c.out, "selected %s\n", s.Name)
	}
	return nil
}

func parseXY(args []string) (int, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected two coordinates: <x> <y>")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x: %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y: %q", args[1])
	}
	return x, y, nil
}

func (c *Console) help() {
	fmt.Fprint(c.out, `commands:
  move <x> <y>    center the selected ship on a cell
  rotate          turn the selected ship clockwise
  place           place the selected ship
  undo            take back the last placed ship
  next | prev     select another ship
  select <name>   select a ship by name
  ready           send the fleet
  attack <x> <y>  attack a cell
  board           show both boards
  quit
`)
}

// render draws the own board (ships and opponent attacks) next
// to what we know about the opponent's board.
func (c *Console) render() {
	own := c.match.OwnHits().Snapshot()
	enemy := c.match.OpponentHits.Snapshot()
	current := c.match.Fleet.Current()

	header := "   " + columnLabels(c.match.Cols)
	fmt.Fprintf(c.out, "%s   %s\n", header, header)

	for y := 0; y < c.match.Rows; y++ {
		var left, right strings.Builder
		for x := 0; x < c.match.Cols; x++ {
			left.WriteByte(ownCell(own[y][x], c.match.Fleet.ShipAt(x, y) != nil, current != nil && current.Occupies(x, y)))
			right.WriteByte(enemyCell(enemy[y][x]))
		}
		fmt.Fprintf(c.out, "%2d %s   %2d %s\n", y, left.String(), y, right.String())
	}
}

func columnLabels(cols int) string {
	var b strings.Builder
	for x := 0; x < cols; x++ {
		b.WriteByte(byte('A' + x))
	}
	return b.String()
}

func ownCell(state mb.CellState, ship, selected bool) byte {
	switch {
	case state == mb.CellHit:
		return 'X'
	case state == mb.CellMiss:
		return 'o'
	case ship:
		return '#'
	case selected:
		return '+'
	default:
		return '.'
	}
}

func enemyCell(state mb.CellState) byte {
	switch state {
	case mb.CellHit:
		return 'X'
	case mb.CellMiss:
		return 'o'
	default:
		return '.'
	}
}
