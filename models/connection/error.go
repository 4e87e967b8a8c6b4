package connection

import (
	"fmt"
)

const (
	ConnErrDial uint8 = iota
	ConnErrWrite
	ConnErrRead
	ConnErrClosed
	ConnErrTimeout
)

// ConnErr is a failure of the transport itself: the peer went
// away, a deadline passed or the socket could not be opened.
type ConnErr struct {
	code uint8
	desc string
	err  error
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Wrap(err error) ConnErr {
	c.err = err
	return c
}

func (c ConnErr) Error() string {
	if c.err != nil {
		return fmt.Sprintf("connection error - code: %d\tdesc: %s\terr: %s", c.code, c.desc, c.err)
	}
	return fmt.Sprintf("connection error - code: %d\tdesc: %s", c.code, c.desc)
}

func (c ConnErr) Code() uint8 {
	return c.code
}

func (c ConnErr) Unwrap() error {
	return c.err
}

// ProtocolErr means the server sent something the current phase
// does not allow, or a message that could not be parsed.
type ProtocolErr struct {
	phase  string
	header string
	desc   string
	err    error
}

func NewProtocolErr(phase, header string) ProtocolErr {
	return ProtocolErr{phase: phase, header: header}
}

func (p ProtocolErr) AddDesc(desc string) ProtocolErr {
	p.desc = desc
	return p
}

func (p ProtocolErr) Wrap(err error) ProtocolErr {
	p.err = err
	return p
}

func (p ProtocolErr) Error() string {
	s := fmt.Sprintf("protocol violation - phase: %s\theader: %q\tdesc: %s", p.phase, p.header, p.desc)
	if p.err != nil {
		s += "\terr: " + p.err.Error()
	}
	return s
}

func (p ProtocolErr) Phase() string {
	return p.phase
}

func (p ProtocolErr) Header() string {
	return p.header
}

func (p ProtocolErr) Unwrap() error {
	return p.err
}
