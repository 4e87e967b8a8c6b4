package api

import (
	"context"
	"errors"
	"log"
	"time"

	cerr "github.com/saeidalz13/battleship-client/internal/error"
	mb "github.com/saeidalz13/battleship-client/models/battleship"
	mc "github.com/saeidalz13/battleship-client/models/connection"
)

// Client owns the connection to the game server and drives the
// phase machine of one match to WON or LOST. It publishes to
// match.State and the hit maps; the presentation side only reads
// those and posts actions.
type Client struct {
	host           string
	port           string
	dialer         Dialer
	version        string
	replyTimeout   time.Duration
	pushTimeout    time.Duration
	maxMessageSize int

	match   *mb.Match
	session *mc.Session
}

func NewClient(match *mb.Match, optFuncs ...Option) *Client {
	client := Client{
		match:          match,
		host:           defaultHost,
		port:           defaultPort,
		version:        mc.ProtocolVersion,
		replyTimeout:   defaultReplyTimeout,
		maxMessageSize: mc.DefaultMaxMessageSize,
	}
	for _, opt := range optFuncs {
		if err := opt(&client); err != nil {
			panic(err)
		}
	}
	if client.dialer == nil {
		client.dialer = TCPDialer{Timeout: DefaultDialTimeout}
	}

	return &client
}

func (c *Client) Addr() string {
	return c.host + ":" + c.port
}

// Run blocks until the match is over, the connection fails or ctx is
// done. It returns nil on WON and LOST, a connection.ConnErr or a
// connection.ProtocolErr on failure, and ctx.Err() after cancellation.
func (c *Client) Run(ctx context.Context) error {
	conn, err := c.dialer.Dial(ctx, c.host, c.port)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	c.session = mc.NewSession(conn, c.maxMessageSize)
	defer func() {
		c.session.Close()
		log.Printf("connection closed: %s\n", c.Addr())
	}()
	log.Printf("connected to %s\tsession: %s\n", c.Addr(), c.session.ID())

	// Closing the session is what unblocks a pending read.
	stop := context.AfterFunc(ctx, func() {
		c.session.Close()
	})
	defer stop()

	err = c.run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (c *Client) run(ctx context.Context) error {
	if err := c.handshake(); err != nil {
		return err
	}

	state := c.match.State

sessionLoop:
	for {
		var err error

		switch phase := state.Phase(); phase {
		case mb.PhaseWaitingMatch:
			err = c.awaitMatch()

		case mb.PhasePlacingShips:
			err = c.sendShips(ctx)

		case mb.PhaseWaitingShips:
			err = c.awaitFirstTurn()

		case mb.PhaseOwnTurn:
			err = c.attack(ctx)

		case mb.PhaseWaitingTurn:
			err = c.awaitOpponent()

		case mb.PhaseWon, mb.PhaseLost:
			log.Printf("match over: %s\topponent: %s\n", phase, state.Opponent())
			break sessionLoop

		default:
			return mc.NewProtocolErr(phase.String(), "").AddDesc("no handler for phase")
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// CONNECTING: hello, then wait_match or matched.
func (c *Client) handshake() error {
	hello := mc.NewHelloMessage(c.version, c.match.Self.Nickname, c.match.Rows, c.match.Cols)
	if err := c.write(hello); err != nil {
		return err
	}

	reply, err := c.read(c.replyTimeout)
	if err != nil {
		return err
	}

	switch reply.Header {
	case mc.HeaderWaitMatch:
		c.setPhase(mb.PhaseWaitingMatch)
		return nil

	case mc.HeaderMatched:
		return c.matched(reply)

	default:
		return c.unexpected(reply)
	}
}

// WAITING_MATCH: the server pushes matched once an opponent joins.
func (c *Client) awaitMatch() error {
	push, err := c.read(c.pushTimeout)
	if err != nil {
		return err
	}
	if push.Header != mc.HeaderMatched {
		return c.unexpected(push)
	}
	return c.matched(push)
}

func (c *Client) matched(m mc.Message) error {
	opponent, err := mc.ParseMatched(m)
	if err != nil {
		return c.violation(m, "malformed matched message", err)
	}
	c.match.State.SetMatched(opponent)
	log.Printf("matched against %s\tphase: %s\n", opponent, mb.PhasePlacingShips)
	return nil
}

// PLACING_SHIPS: wait for the presentation side to finish the fleet.
func (c *Client) sendShips(ctx context.Context) error {
	action, err := c.match.State.AwaitAction(ctx)
	if err != nil {
		return err
	}
	if action.Kind != mb.ActionShipsReady {
		log.Println("discarding action not allowed while placing ships")
		c.match.State.DiscardAction()
		return nil
	}

	roster, err := c.match.Fleet.Lines()
	if err != nil {
		log.Println("ships ready refused:", err)
		c.match.State.DiscardAction()
		return nil
	}

	if err := c.write(mc.NewReadyMessage(roster)); err != nil {
		return err
	}

	reply, err := c.read(c.replyTimeout)
	if err != nil {
		return err
	}

	switch reply.Header {
	case mc.HeaderWaitShips:
		c.setPhase(mb.PhaseWaitingShips)
	case mc.HeaderYourTurn:
		c.setPhase(mb.PhaseOwnTurn)
	case mc.HeaderWaitTurn:
		c.setPhase(mb.PhaseWaitingTurn)
	default:
		return c.unexpected(reply)
	}
	return nil
}

// WAITING_SHIPS: the opponent is still placing.
func (c *Client) awaitFirstTurn() error {
	push, err := c.read(c.pushTimeout)
	if err != nil {
		return err
	}

	switch push.Header {
	case mc.HeaderYourTurn:
		c.setPhase(mb.PhaseOwnTurn)
	case mc.HeaderWaitTurn:
		c.setPhase(mb.PhaseWaitingTurn)
	default:
		return c.unexpected(push)
	}
	return nil
}

// OWN_TURN: send the posted attack and record its result on the
// opponent's hit map. Coordinates in the reply, if any, are ignored.
func (c *Client) attack(ctx context.Context) error {
	state := c.match.State

	action, err := state.AwaitAction(ctx)
	if err != nil {
		return err
	}
	if action.Kind != mb.ActionAttack {
		log.Println("discarding action not allowed in own turn")
		state.DiscardAction()
		return nil
	}

	x, y := action.X, action.Y
	if !c.match.OpponentHits.InBound(x, y) {
		log.Printf("%s: %s\n", cerr.ConstErrAttackDiscarded, cerr.ErrXorYOutOfGridBound(x, y))
		state.DiscardAction()
		return nil
	}
	if c.match.OpponentHits.IsKnown(x, y) {
		log.Printf("%s: %s\n", cerr.ConstErrAttackDiscarded, cerr.ErrPositionAlreadyMarked(x, y))
		state.DiscardAction()
		return nil
	}

	if err := c.write(mc.NewAttackMessage(x, y)); err != nil {
		return err
	}

	reply, err := c.read(c.replyTimeout)
	if err != nil {
		return err
	}

	switch {
	case mc.IsAttackResult(reply.Header):
		outcome, cell := attackOutcome(reply.Header)
		if err := c.match.OpponentHits.Set(x, y, cell); err != nil {
			return c.violation(reply, "attack result rejected by hit map", err)
		}
		state.PostOutcome(outcome, mb.PhaseWaitingTurn)
		log.Printf("attack %d %d: %s\tphase: %s\n", x, y, outcome, mb.PhaseWaitingTurn)

	case reply.Header == mc.HeaderYouWin:
		c.end(mb.PhaseWon)

	case reply.Header == mc.HeaderYouLose:
		c.end(mb.PhaseLost)

	default:
		return c.unexpected(reply)
	}
	return nil
}

// WAITING_TURN: the opponent's attack arrives with its coordinates.
// Its result becomes the last outcome, the same as one of ours.
func (c *Client) awaitOpponent() error {
	push, err := c.read(c.pushTimeout)
	if err != nil {
		return err
	}

	switch {
	case mc.IsAttackResult(push.Header):
		if len(push.Lines) == 0 {
			return c.violation(push, "missing attack coordinates", nil)
		}
		x, y, err := mc.ParseCoords(push.Lines[0])
		if err != nil {
			return c.violation(push, "malformed attack coordinates", err)
		}

		outcome, cell := attackOutcome(push.Header)
		if err := c.match.OwnHits().Set(x, y, cell); err != nil {
			return c.violation(push, "opponent attack rejected by hit map", err)
		}
		c.match.State.PostOutcome(outcome, mb.PhaseOwnTurn)
		log.Printf("opponent attacked %d %d: %s\tphase: %s\n", x, y, outcome, mb.PhaseOwnTurn)

	case push.Header == mc.HeaderYouWin:
		c.end(mb.PhaseWon)

	case push.Header == mc.HeaderYouLose:
		c.end(mb.PhaseLost)

	default:
		return c.unexpected(push)
	}
	return nil
}

func (c *Client) end(phase mb.Phase) {
	c.match.State.PostOutcome(mb.OutcomeEnded, phase)
}

func (c *Client) setPhase(phase mb.Phase) {
	c.match.State.SetPhase(phase)
	log.Printf("phase: %s\n", phase)
}

func (c *Client) write(m mc.Message) error {
	if err := c.session.WriteMessage(m, c.replyTimeout); err != nil {
		return c.stamp(err)
	}
	return nil
}

func (c *Client) read(timeout time.Duration) (mc.Message, error) {
	m, err := c.session.ReadMessage(timeout)
	if err != nil {
		return mc.Message{}, c.stamp(err)
	}
	return m, nil
}

// stamp fills in the phase of protocol errors raised by the session.
func (c *Client) stamp(err error) error {
	var protoErr mc.ProtocolErr
	if errors.As(err, &protoErr) && protoErr.Phase() == "" {
		return mc.NewProtocolErr(c.match.State.Phase().String(), protoErr.Header()).
			AddDesc("invalid message").
			Wrap(err)
	}
	return err
}

func (c *Client) unexpected(m mc.Message) error {
	return mc.NewProtocolErr(c.match.State.Phase().String(), m.Header).AddDesc("unexpected header")
}

func (c *Client) violation(m mc.Message, desc string, err error) error {
	return mc.NewProtocolErr(c.match.State.Phase().String(), m.Header).AddDesc(desc).Wrap(err)
}

func attackOutcome(header string) (mb.Outcome, mb.CellState) {
	switch header {
	case mc.HeaderHit:
		return mb.OutcomeHit, mb.CellHit
	case mc.HeaderHitSunk:
		return mb.OutcomeHitSunk, mb.CellHit
	default:
		return mb.OutcomeMiss, mb.CellMiss
	}
}
