package console

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func testConsole(input string) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	c := &Console{
		out:    &out,
		reader: bufio.NewReader(strings.NewReader(input)),
		width:  80,
		height: 24,
	}
	return c, &out
}

func TestTypeCharPrintable(t *testing.T) {
	c, out := testConsole("")
	c.TypeChar('a')
	if out.String() != "a" {
		t.Errorf("output = %q, want %q", out.String(), "a")
	}
}

func TestTypeCharEscapeEchoesDollar(t *testing.T) {
	c, out := testConsole("")
	c.TypeChar(0x1B)
	if out.String() != "$" {
		t.Errorf("output = %q, want %q", out.String(), "$")
	}
}

func TestTypeCharControl(t *testing.T) {
	c, out := testConsole("")
	c.TypeChar(0x01)
	if out.String() != "^A" {
		t.Errorf("output = %q, want %q", out.String(), "^A")
	}
}

func TestTypeCharEightBit(t *testing.T) {
	c, out := testConsole("")
	c.TypeChar(0xA3)
	if out.String() != "[a3]" {
		t.Errorf("output = %q, want %q", out.String(), "[a3]")
	}

	out.Reset()
	c.SetEightBit(true)
	c.TypeChar(0xA3)
	if out.String() != "\xa3" {
		t.Errorf("output = %q, want raw byte", out.String())
	}
}

func TestTypeCharLineFeed(t *testing.T) {
	c, out := testConsole("")
	c.TypeChar(0x0A)
	if out.String() != "\r\n" {
		t.Errorf("output = %q, want CRLF", out.String())
	}
}

func TestReadCommandPiped(t *testing.T) {
	c, _ := testConsole("1UA QA=\x1b\x1b leftovers")
	cmd, err := c.ReadCommand("*", 0)
	if err != nil {
		t.Fatalf("ReadCommand failed: %v", err)
	}
	if string(cmd) != "1UA QA=" {
		t.Errorf("command = %q, want %q", cmd, "1UA QA=")
	}
}

func TestReadCommandSurrogate(t *testing.T) {
	c, _ := testConsole("1UA``")
	cmd, err := c.ReadCommand("*", '`')
	if err != nil {
		t.Fatalf("ReadCommand failed: %v", err)
	}
	if string(cmd) != "1UA" {
		t.Errorf("command = %q, want %q", cmd, "1UA")
	}
}

func TestReadCommandEOF(t *testing.T) {
	c, _ := testConsole("")
	if _, err := c.ReadCommand("*", 0); err == nil {
		t.Error("expected EOF reading from empty input")
	}
}

func TestReadChar(t *testing.T) {
	c, _ := testConsole("x")
	n, err := c.ReadChar()
	if err != nil || n != 'x' {
		t.Errorf("ReadChar = %d,%v, want 'x',nil", n, err)
	}
	n, err = c.ReadChar()
	if err != nil || n != -1 {
		t.Errorf("ReadChar at EOF = %d,%v, want -1,nil", n, err)
	}
}
