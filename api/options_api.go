package api

import (
	"fmt"
	"strconv"
	"time"

	mc "github.com/saeidalz13/battleship-client/models/connection"
)

const (
	defaultHost         string        = "localhost"
	defaultPort         string        = "9098"
	defaultReplyTimeout time.Duration = mc.DefaultReplyTimeout
	DefaultDialTimeout  time.Duration = mc.DefaultDialTimeout
)

type Option func(*Client) error

func WithAddr(host, port string) Option {
	return func(c *Client) error {
		if host == "" {
			return fmt.Errorf("server host cannot be empty")
		}
		p, err := strconv.Atoi(port)
		if err != nil || p < 1 || p > 65535 {
			return fmt.Errorf("invalid server port: %s", port)
		}
		c.host = host
		c.port = port
		return nil
	}
}

func WithDialer(d Dialer) Option {
	return func(c *Client) error {
		if d == nil {
			return fmt.Errorf("dialer cannot be nil")
		}
		c.dialer = d
		return nil
	}
}

// Zero disables the deadline on replies.
func WithReplyTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return fmt.Errorf("negative reply timeout: %s", d)
		}
		c.replyTimeout = d
		return nil
	}
}

// Pushes wait for the other player, so by default they wait forever.
func WithPushTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return fmt.Errorf("negative push timeout: %s", d)
		}
		c.pushTimeout = d
		return nil
	}
}

func WithVersion(version string) Option {
	return func(c *Client) error {
		if version == "" {
			return fmt.Errorf("protocol version cannot be empty")
		}
		c.version = version
		return nil
	}
}

func WithMaxMessageSize(n int) Option {
	return func(c *Client) error {
		if n < mc.DefaultMaxMessageSize {
			return fmt.Errorf("max message size must be at least %d", mc.DefaultMaxMessageSize)
		}
		c.maxMessageSize = n
		return nil
	}
}
