package connection

import (
	"bufio"
	"errors"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Limit on incoming messages; what we send is not bounded.
const DefaultMaxMessageSize = 512

const (
	DefaultReplyTimeout time.Duration = time.Second * 30
	DefaultDialTimeout  time.Duration = time.Second * 10
)

// Conn is the byte stream a Session runs over. *net.TCPConn
// satisfies it directly and NewWsConn adapts a websocket.
type Conn interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

var _ Conn = (*net.TCPConn)(nil)

// Session frames messages over a Conn. Reads and writes may come
// from different goroutines but not concurrently among themselves.
type Session struct {
	id             string
	conn           Conn
	reader         *bufio.Reader
	maxMessageSize int
	createdAt      time.Time

	closeOnce sync.Once
	closeErr  error
}

func NewSession(conn Conn, maxMessageSize int) *Session {
	if maxMessageSize <= 0 {
		maxMessageSize = DefaultMaxMessageSize
	}
	return &Session{
		id:             uuid.NewString(),
		conn:           conn,
		reader:         bufio.NewReaderSize(conn, maxMessageSize),
		maxMessageSize: maxMessageSize,
		createdAt:      time.Now(),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// WriteMessage sends m in full. A zero timeout means no deadline.
func (s *Session) WriteMessage(m Message, timeout time.Duration) error {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := s.conn.SetWriteDeadline(deadline); err != nil {
		return NewConnErr(ConnErrWrite).AddDesc("set write deadline").Wrap(err)
	}

	b := m.Bytes()
	for len(b) > 0 {
		n, err := s.conn.Write(b)
		if err != nil {
			return s.connErr(ConnErrWrite, err)
		}
		b = b[n:]
	}
	return nil
}

// ReadMessage blocks until a full message arrived. Empty lines
// before the header are skipped. A zero timeout means no deadline.
func (s *Session) ReadMessage(timeout time.Duration) (Message, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	if err := s.conn.SetReadDeadline(deadline); err != nil {
		return Message{}, NewConnErr(ConnErrRead).AddDesc("set read deadline").Wrap(err)
	}

	var (
		msg  Message
		read int
	)

readLoop:
	for {
		raw, err := s.reader.ReadSlice('\n')
		read += len(raw)
		if read > s.maxMessageSize || errors.Is(err, bufio.ErrBufferFull) {
			return Message{}, NewProtocolErr("", msg.Header).AddDesc("incoming message exceeds max message size")
		}
		if err != nil {
			return Message{}, s.connErr(ConnErrRead, err)
		}

		line := strings.TrimRight(string(raw), "\r\n")
		switch {
		case line == "" && msg.Header == "":
			read = 0
			continue readLoop
		case line == "":
			break readLoop
		case msg.Header == "":
			msg.Header = line
		default:
			msg.Lines = append(msg.Lines, line)
		}
	}

	return msg, nil
}

// Close is safe to call more than once.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func (s *Session) connErr(code uint8, err error) ConnErr {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return NewConnErr(ConnErrClosed).AddDesc("connection closed by peer").Wrap(err)
	}
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return NewConnErr(ConnErrTimeout).AddDesc("deadline exceeded").Wrap(err)
	}
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		return NewConnErr(ConnErrTimeout).AddDesc("deadline exceeded").Wrap(err)
	}
	return NewConnErr(code).Wrap(err)
}
