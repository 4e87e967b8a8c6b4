package connection

import (
	"io"
	"time"

	"github.com/gorilla/websocket"
)

const closeWriteWait = time.Second

// wsConn turns a message oriented websocket into the byte
// stream Session expects. Every Write goes out as one text frame
// and Read drains frames one after another.
type wsConn struct {
	ws     *websocket.Conn
	reader io.Reader
}

func NewWsConn(ws *websocket.Conn) Conn {
	return &wsConn{ws: ws}
}

func (c *wsConn) Read(p []byte) (int, error) {
	for {
		if c.reader == nil {
			// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
			// Control frames are handled by gorilla, so only text and binary come out here.
			_, r, err := c.ws.NextReader()
			if err != nil {
				return 0, wsReadErr(err)
			}
			c.reader = r
		}

		n, err := c.reader.Read(p)
		if err == io.EOF {
			c.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (c *wsConn) Write(p []byte) (int, error) {
	if err := c.ws.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Close says goodbye to the server before dropping the socket.
func (c *wsConn) Close() error {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = c.ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeWriteWait))
	return c.ws.Close()
}

func (c *wsConn) SetReadDeadline(t time.Time) error {
	return c.ws.SetReadDeadline(t)
}

func (c *wsConn) SetWriteDeadline(t time.Time) error {
	return c.ws.SetWriteDeadline(t)
}

// Normal closures look like the end of the stream to the session.
func wsReadErr(err error) error {
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
		return io.EOF
	}
	return err
}

var _ Conn = (*wsConn)(nil)
