package connection

import (
	"fmt"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/battleship-client/internal/error"
)

// Every line ends with CRLF and an empty line ends the message.
const lineTerminator = "\r\n"

type Message struct {
	Header string
	Lines  []string
}

func NewMessage(header string, lines ...string) Message {
	return Message{Header: header, Lines: lines}
}

func (m Message) Bytes() []byte {
	var b strings.Builder
	b.WriteString(m.Header)
	b.WriteString(lineTerminator)
	for _, l := range m.Lines {
		b.WriteString(l)
		b.WriteString(lineTerminator)
	}
	b.WriteString(lineTerminator)
	return []byte(b.String())
}

func (m Message) String() string {
	return strings.Join(append([]string{m.Header}, m.Lines...), " | ")
}

// Field returns the value of the first "<key> <value>" line.
func (m Message) Field(key string) (string, error) {
	for _, l := range m.Lines {
		k, v, found := strings.Cut(l, " ")
		if found && k == key {
			return strings.TrimSpace(v), nil
		}
	}
	return "", cerr.ErrKeyNotExists(key)
}

func NewHelloMessage(version, nickname string, rows, cols int) Message {
	return NewMessage(HeaderHello,
		KeyVersion+" "+version,
		KeyName+" "+nickname,
		fmt.Sprintf("%s %d", KeyRows, rows),
		fmt.Sprintf("%s %d", KeyCols, cols),
	)
}

// rosterLines is the serialized fleet, ships_begin to ships_end.
func NewReadyMessage(rosterLines []string) Message {
	return NewMessage(HeaderReady, rosterLines...)
}

func NewAttackMessage(x, y int) Message {
	return NewMessage(HeaderAttack, fmt.Sprintf("%d %d", x, y))
}

// ParseMatched returns the opponent nickname of a matched message.
func ParseMatched(m Message) (string, error) {
	name, err := m.Field(KeyName)
	if err != nil {
		return "", err
	}
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", fmt.Errorf("invalid opponent nickname: %q", name)
	}
	return name, nil
}

// ParseCoords reads the "<x> <y>" line of a turn result.
func ParseCoords(line string) (x, y int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, cerr.ErrMalformedCoords(line)
	}
	if x, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, cerr.ErrMalformedCoords(line)
	}
	if y, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, cerr.ErrMalformedCoords(line)
	}
	return x, y, nil
}
