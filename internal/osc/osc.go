package osc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"strings"
)

// Arg is one typed OSC argument. The tag decides the wire encoding: "s" for
// a padded string, "i" for a big-endian int32, "f" for a big-endian float32.
type Arg struct {
	tag byte
	s   string
	i   int32
	f   float32
}

func String(s string) Arg { return Arg{tag: 's', s: s} }
func Int(i int32) Arg     { return Arg{tag: 'i', i: i} }
func Float(f float32) Arg { return Arg{tag: 'f', f: f} }

// Message is a single OSC 1.0 message: an address pattern plus an ordered
// argument list.
type Message struct {
	Addr string
	Args []Arg
}

func NewMessage(addr string, args ...Arg) Message {
	return Message{Addr: addr, Args: args}
}

// Encode serializes the message to its binary OSC form: padded address,
// padded typetag string, then each argument in order.
func (m Message) Encode() ([]byte, error) {
	if !strings.HasPrefix(m.Addr, "/") {
		return nil, fmt.Errorf("osc: address %q must start with '/'", m.Addr)
	}
	if strings.ContainsRune(m.Addr, 0) {
		return nil, fmt.Errorf("osc: address contains NUL")
	}

	var buf bytes.Buffer
	writePaddedString(&buf, m.Addr)

	tags := make([]byte, 0, len(m.Args)+1)
	tags = append(tags, ',')
	for _, a := range m.Args {
		switch a.tag {
		case 's', 'i', 'f':
			tags = append(tags, a.tag)
		default:
			return nil, fmt.Errorf("osc: unsupported argument tag %q", a.tag)
		}
	}
	writePaddedString(&buf, string(tags))

	for _, a := range m.Args {
		switch a.tag {
		case 's':
			if strings.ContainsRune(a.s, 0) {
				return nil, fmt.Errorf("osc: string argument contains NUL")
			}
			writePaddedString(&buf, a.s)
		case 'i':
			binary.Write(&buf, binary.BigEndian, a.i)
		case 'f':
			binary.Write(&buf, binary.BigEndian, math.Float32bits(a.f))
		}
	}

	return buf.Bytes(), nil
}

// writePaddedString writes s followed by 1-4 NUL bytes so the total length
// is a multiple of four, as OSC requires.
func writePaddedString(buf *bytes.Buffer, s string) {
	buf.WriteString(s)
	for n := 4 - len(s)%4; n > 0; n-- {
		buf.WriteByte(0)
	}
}
