package teco

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rmay/teco/pkg/textbuf"
)

// termStub captures typeout for assertions and replays canned input for
// the ^T command.
type termStub struct {
	out   bytes.Buffer
	input []byte
}

func (s *termStub) Type(p []byte)   { s.out.Write(p) }
func (s *termStub) TypeChar(c byte) { s.out.WriteByte(c) }

func (s *termStub) ReadChar() (int, error) {
	if len(s.input) == 0 {
		return -1, nil
	}
	c := s.input[0]
	s.input = s.input[1:]
	return int(c), nil
}

func (s *termStub) Size() (int, int) { return 80, 24 }

// newTestInterp builds an interpreter over a fresh buffer seeded with
// text and a capturing terminal stub.
func newTestInterp(text string) (*Interpreter, *termStub, *textbuf.Buffer) {
	buf := textbuf.New([]byte(text))
	term := &termStub{}
	return New(buf, term), term, buf
}

// run executes a command string and fails the test on any error.
func run(t *testing.T, ip *Interpreter, cmd string) {
	t.Helper()
	if err := ip.Execute([]byte(cmd)); err != nil {
		t.Fatalf("Execute(%q) failed: %v", cmd, err)
	}
}

// runErr executes a command string and requires it to fail with the
// given error code.
func runErr(t *testing.T, ip *Interpreter, cmd string, code Code) {
	t.Helper()
	err := ip.Execute([]byte(cmd))
	if err == nil {
		t.Fatalf("Execute(%q): expected ?%s, got success", cmd, code)
	}
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("Execute(%q): expected *Error, got %T: %v", cmd, err, err)
	}
	if te.Code != code {
		t.Fatalf("Execute(%q): expected ?%s, got %v", cmd, code, err)
	}
}

// expectOut requires the accumulated terminal output to match.
func expectOut(t *testing.T, term *termStub, want string) {
	t.Helper()
	if got := term.out.String(); got != want {
		t.Errorf("terminal output = %q, want %q", got, want)
	}
}

func TestEmptyCommandString(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "")
	if ip.est.depth() != 0 {
		t.Errorf("expected empty expression stack, depth %d", ip.est.depth())
	}
}

func TestArithmeticToQRegister(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "1+2UA QA=\x1b")
	expectOut(t, term, "3\r\n")
	if n := ip.QNum('A'); n != 3 {
		t.Errorf("QA = %d, want 3", n)
	}
}

func TestLoopLeavesStackEmpty(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "5<1+0>")
	if ip.est.depth() != 0 {
		t.Errorf("expected empty stack after loop, depth %d", ip.est.depth())
	}
}

func TestConditionalTrueBranch(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "0\"E 1UB | 2UB '")
	if n := ip.QNum('B'); n != 1 {
		t.Errorf("QB = %d, want 1 (true branch)", n)
	}
}

func TestConditionalFalseBranch(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "1\"E 1UB | 2UB '")
	if n := ip.QNum('B'); n != 2 {
		t.Errorf("QB = %d, want 2 (else branch)", n)
	}
}

func TestConditionalWithoutElse(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "1\"E 1UB ' 9UC")
	if n := ip.QNum('B'); n != 0 {
		t.Errorf("QB = %d, want 0 (branch not taken)", n)
	}
	if n := ip.QNum('C'); n != 9 {
		t.Errorf("QC = %d, want 9", n)
	}
}

func TestLoopIncrement(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "1UA 5<%A>QA=\x1b")
	expectOut(t, term, "6\r\n")
}

func TestComputedGoto(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "2Ob,c\x1b 10UA !b! 20UB !c! 30UC")
	if n := ip.QNum('A'); n != 0 {
		t.Errorf("QA = %d, want 0 (skipped by goto)", n)
	}
	if n := ip.QNum('B'); n != 0 {
		t.Errorf("QB = %d, want 0 (skipped by goto)", n)
	}
	if n := ip.QNum('C'); n != 30 {
		t.Errorf("QC = %d, want 30", n)
	}
}

func TestGotoByName(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "Oskip\x1b 1UA !skip! 2UB")
	if n := ip.QNum('A'); n != 0 {
		t.Errorf("QA = %d, want 0", n)
	}
	if n := ip.QNum('B'); n != 2 {
		t.Errorf("QB = %d, want 2", n)
	}
}

func TestCtrlAMessage(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "@\x01/hello/")
	expectOut(t, term, "hello")
}

func TestLeadingMinusIsMinusOne(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "-UA")
	if n := ip.QNum('A'); n != -1 {
		t.Errorf("QA = %d, want -1", n)
	}
}

func TestUZeroStoresZero(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "0UA")
	if n := ip.QNum('A'); n != 0 {
		t.Errorf("QA = %d, want 0", n)
	}
}

func TestUWithoutArgument(t *testing.T) {
	ip, _, _ := newTestInterp("")
	runErr(t, ip, "UA", ErrNAU)
}

func TestQRegisterRoundTrip(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "123UX QX=\x1b")
	expectOut(t, term, "123\r\n")
}

func TestEmptyMacroIsNoOp(t *testing.T) {
	ip, _, _ := newTestInterp("")
	run(t, ip, "MA")
}

func TestDelimiterIndependence(t *testing.T) {
	ip1, _, buf1 := newTestInterp("xxabcyy")
	run(t, ip1, "@S/abc/")

	ip2, _, buf2 := newTestInterp("xxabcyy")
	run(t, ip2, "Sabc\x1b")

	if buf1.Dot() != buf2.Dot() {
		t.Errorf("@S/abc/ moved dot to %d, Sabc$ to %d", buf1.Dot(), buf2.Dot())
	}
	if buf1.Dot() != 5 {
		t.Errorf("dot = %d, want 5 (after match)", buf1.Dot())
	}
}

func TestPassThroughArguments(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "1,2!x! UA =\x1b")
	if n := ip.QNum('A'); n != 2 {
		t.Errorf("QA = %d, want 2 (n argument)", n)
	}
	expectOut(t, term, "1\r\n") // the m argument passed on to =
}

func TestInterruptAborts(t *testing.T) {
	ip, _, _ := newTestInterp("")
	ip.Interrupt()
	runErr(t, ip, "1UA 2UB", ErrXAB)
}

func TestTypeoutRadixForms(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "10==\x1b")
	expectOut(t, term, "12\r\n")
	term.out.Reset()
	run(t, ip, "255===\x1b")
	expectOut(t, term, "ff\r\n")
	term.out.Reset()
	run(t, ip, "10:=\x1b")
	expectOut(t, term, "10")
}

func TestCaretLiteralValue(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "^^A=\x1b")
	expectOut(t, term, "65\r\n")
}

func TestUpArrowLiteralValue(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "\x1eB=\x1b")
	expectOut(t, term, "66\r\n")
}

func TestRadixCommands(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "^O 17UA ^D QA=\x1b")
	expectOut(t, term, "15\r\n")

	term.out.Reset()
	run(t, ip, "16^R 0FFUA ^D QA=\x1b")
	expectOut(t, term, "255\r\n")
}

func TestInvalidOctalDigit(t *testing.T) {
	ip, _, _ := newTestInterp("")
	runErr(t, ip, "8^R 9UA", ErrILN)
}

func TestInvalidRadix(t *testing.T) {
	ip, _, _ := newTestInterp("")
	runErr(t, ip, "7^R", ErrIRA)
}

func TestOnesComplement(t *testing.T) {
	ip, term, _ := newTestInterp("")
	run(t, ip, "0\x1f=\x1b") // 0^_ is all ones
	expectOut(t, term, "-1\r\n")
}
