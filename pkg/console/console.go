// Package console implements the terminal collaborator: raw-mode command
// input, TECO-style typeout with control-character echo conversions, and
// window-size tracking.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

const (
	ctrlC = 0x03
	ctrlG = 0x07
	bs    = 0x08
	tab   = 0x09
	lf    = 0x0A
	vt    = 0x0B
	ff    = 0x0C
	cr    = 0x0D
	ctrlU = 0x15
	esc   = 0x1B
	del   = 0x7F
)

// ErrInterrupted reports that command input was abandoned with CTRL/C.
var ErrInterrupted = errors.New("interrupted")

// Console is a terminal bound to stdin/stdout. It satisfies the
// interpreter's Terminal interface.
type Console struct {
	in       *os.File
	out      io.Writer
	outFd    int
	reader   *bufio.Reader
	width    int
	height   int
	isTTY    bool
	eightBit bool
}

// New returns a console on the standard streams.
func New() *Console {
	c := &Console{
		in:     os.Stdin,
		out:    os.Stdout,
		outFd:  int(os.Stdout.Fd()),
		reader: bufio.NewReader(os.Stdin),
		width:  80,
		height: 24,
	}
	c.isTTY = term.IsTerminal(int(c.in.Fd()))
	c.UpdateSize()
	return c
}

// SetEightBit controls whether 8-bit characters echo raw or as [xx].
func (c *Console) SetEightBit(on bool) { c.eightBit = on }

// UpdateSize refreshes the window-size record; the front end calls it on
// SIGWINCH.
func (c *Console) UpdateSize() {
	if !c.isTTY {
		return
	}
	if w, h, err := term.GetSize(c.outFd); err == nil {
		c.width, c.height = w, h
	}
}

// Size returns the terminal dimensions.
func (c *Console) Size() (int, int) { return c.width, c.height }

// Type writes text with echo conversions applied per character.
func (c *Console) Type(p []byte) {
	for _, b := range p {
		c.TypeChar(b)
	}
}

// TypeChar writes one character, converting controls the way TECO
// terminals do: ESCape echoes as $, LF as CR LF, FF and VT as line
// feeds, BS, TAB and CR pass through, DEL is dropped, and other control
// characters echo as ^c.
func (c *Console) TypeChar(b byte) {
	switch {
	case b >= ' ' && b < del:
		c.out.Write([]byte{b})
	case b >= 0x80:
		if c.eightBit {
			c.out.Write([]byte{b})
		} else {
			fmt.Fprintf(c.out, "[%02x]", b)
		}
	default:
		switch b {
		case bs, tab, cr:
			c.out.Write([]byte{b})
		case lf:
			c.out.Write([]byte("\r\n"))
		case del:
			// swallowed
		case esc:
			c.out.Write([]byte{'$'})
		case ff, vt:
			c.out.Write([]byte("\r\n\n\n\n"))
		default:
			if b == ctrlG {
				c.out.Write([]byte{ctrlG})
			}
			c.out.Write([]byte{'^', b + 'A' - 1})
		}
	}
}

// ReadChar returns the next input character, or -1 at end of input.
func (c *Console) ReadChar() (int, error) {
	b, err := c.reader.ReadByte()
	if err == io.EOF {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return int(b), nil
}

// ReadCommand collects one command string, terminated by a double
// ESCape. surrogate, when nonzero, is accepted in place of ESCape.
// On a terminal the input is read raw with rubout editing; otherwise
// bytes are consumed up to the terminator or EOF, and anything after the
// terminator is left for the next call.
func (c *Console) ReadCommand(prompt string, surrogate byte) ([]byte, error) {
	fmt.Fprint(c.out, prompt)
	if c.isTTY {
		return c.readRaw(surrogate)
	}
	return c.readPiped(surrogate)
}

func (c *Console) readRaw(surrogate byte) ([]byte, error) {
	oldState, err := term.MakeRaw(int(c.in.Fd()))
	if err != nil {
		return c.readPiped(surrogate)
	}
	defer term.Restore(int(c.in.Fd()), oldState)

	var cmd []byte
	for {
		b, err := c.reader.ReadByte()
		if err != nil {
			return cmd, err
		}
		if surrogate != 0 && b == surrogate {
			b = esc
		}
		switch b {
		case ctrlC:
			c.out.Write([]byte("^C\r\n"))
			return nil, ErrInterrupted
		case del, bs:
			if len(cmd) > 0 {
				cmd = cmd[:len(cmd)-1]
				c.out.Write([]byte("\b \b"))
			}
		case ctrlU:
			for range cmd {
				c.out.Write([]byte("\b \b"))
			}
			cmd = cmd[:0]
		case cr:
			cmd = append(cmd, lf)
			c.out.Write([]byte("\r\n"))
		case esc:
			c.TypeChar(esc)
			if n := len(cmd); n > 0 && cmd[n-1] == esc {
				c.out.Write([]byte("\r\n"))
				return cmd[:n-1], nil
			}
			cmd = append(cmd, esc)
		default:
			cmd = append(cmd, b)
			c.TypeChar(b)
		}
	}
}

func (c *Console) readPiped(surrogate byte) ([]byte, error) {
	var cmd []byte
	for {
		b, err := c.reader.ReadByte()
		if err == io.EOF {
			if len(cmd) == 0 {
				return nil, io.EOF
			}
			return cmd, nil
		}
		if err != nil {
			return nil, err
		}
		if surrogate != 0 && b == surrogate {
			b = esc
		}
		if b == esc {
			if n := len(cmd); n > 0 && cmd[n-1] == esc {
				return cmd[:n-1], nil
			}
		}
		cmd = append(cmd, b)
	}
}

// ReadClipboard returns the system clipboard contents, for executing a
// pasted command string.
func ReadClipboard() (string, error) {
	return clipboard.ReadAll()
}

// WriteClipboard stores text on the system clipboard.
func WriteClipboard(text string) error {
	return clipboard.WriteAll(text)
}
