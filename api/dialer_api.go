package api

import (
	"context"
	"net"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	mc "github.com/saeidalz13/battleship-client/models/connection"
)

const (
	TransportTCP = mc.TransportTCP
	TransportWs  = mc.TransportWs

	DefaultWsPath = mc.DefaultWsPath
)

// Dialer opens the byte stream the client speaks the line protocol over.
type Dialer interface {
	Dial(ctx context.Context, host, port string) (mc.Conn, error)
}

type TCPDialer struct {
	Timeout time.Duration
}

func (d TCPDialer) Dial(ctx context.Context, host, port string) (mc.Conn, error) {
	nd := net.Dialer{Timeout: d.Timeout}
	conn, err := nd.DialContext(ctx, "tcp", net.JoinHostPort(host, port))
	if err != nil {
		return nil, mc.NewConnErr(mc.ConnErrDial).AddDesc("tcp dial " + net.JoinHostPort(host, port)).Wrap(err)
	}
	return conn, nil
}

// WsDialer reaches servers that only accept websockets. The messages
// are the same text, carried in text frames. A zero HandshakeTimeout
// leaves the handshake bounded only by the dial context; cmd passes
// DefaultDialTimeout through NewDialer.
type WsDialer struct {
	Path             string
	HandshakeTimeout time.Duration
}

func (d WsDialer) Dial(ctx context.Context, host, port string) (mc.Conn, error) {
	path := d.Path
	if path == "" {
		path = DefaultWsPath
	}
	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(host, port), Path: path}

	dialer := websocket.Dialer{
		HandshakeTimeout: d.HandshakeTimeout,
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
	}
	ws, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, mc.NewConnErr(mc.ConnErrDial).AddDesc("ws dial " + u.String()).Wrap(err)
	}
	return mc.NewWsConn(ws), nil
}

// NewDialer picks the dialer of a transport name.
func NewDialer(transport, wsPath string, timeout time.Duration) (Dialer, error) {
	switch transport {
	case TransportTCP, "":
		return TCPDialer{Timeout: timeout}, nil
	case TransportWs:
		return WsDialer{Path: wsPath, HandshakeTimeout: timeout}, nil
	default:
		return nil, mc.NewConnErr(mc.ConnErrDial).AddDesc("unknown transport: " + transport)
	}
}

var (
	_ Dialer = TCPDialer{}
	_ Dialer = WsDialer{}
)
