package teco

import (
	"fmt"
	"strconv"
)

// Commands that move dot, edit buffer text, and type output. All buffer
// access goes through the Buffer collaborator.

// pushSuccess reports a colon-modified command's outcome on the stack.
func (ip *Interpreter) pushSuccess(ok bool) {
	ip.est.pushVal(boolVal(ok))
}

// lineRange resolves an m,n pair or an n line count into a buffer range.
func (ip *Interpreter) lineRange(cmd *cmdBlock) (start, end int, err error) {
	if cmd.mSet {
		start, end = cmd.mArg, cmd.nArg
		if start < 0 || end > ip.buf.Size() {
			return 0, 0, tecoErr(ErrPOP)
		}
		return start, end, nil
	}
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	dot := ip.buf.Dot()
	target := dot + ip.buf.LineDelta(n)
	if target < dot {
		return target, dot, nil
	}
	return dot, target, nil
}

// execC advances dot by n characters.
func (ip *Interpreter) execC(cmd *cmdBlock) error {
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	ok := ip.buf.SetDot(ip.buf.Dot() + n)
	if cmd.colon {
		ip.pushSuccess(ok)
		return nil
	}
	if !ok {
		return tecoErr(ErrPOP)
	}
	return nil
}

// execR backs dot up by n characters.
func (ip *Interpreter) execR(cmd *cmdBlock) error {
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	ok := ip.buf.SetDot(ip.buf.Dot() - n)
	if cmd.colon {
		ip.pushSuccess(ok)
		return nil
	}
	if !ok {
		return tecoErr(ErrPOP)
	}
	return nil
}

// execJ jumps dot to position n (the buffer start by default).
func (ip *Interpreter) execJ(cmd *cmdBlock) error {
	n := 0
	if cmd.nSet {
		n = cmd.nArg
	}
	ok := ip.buf.SetDot(n)
	if cmd.colon {
		ip.pushSuccess(ok)
		return nil
	}
	if !ok {
		return tecoErr(ErrPOP)
	}
	return nil
}

// execL moves dot by whole lines.
func (ip *Interpreter) execL(cmd *cmdBlock) error {
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	if !ip.buf.SetDot(ip.buf.Dot() + ip.buf.LineDelta(n)) {
		return tecoErr(ErrPOP)
	}
	return nil
}

// execD deletes n characters at dot, or the m,n range.
func (ip *Interpreter) execD(cmd *cmdBlock) error {
	var err error
	if cmd.mSet {
		if !ip.buf.SetDot(cmd.mArg) {
			err = tecoErr(ErrPOP)
		} else {
			err = ip.buf.Delete(cmd.nArg - cmd.mArg)
		}
	} else {
		n := 1
		if cmd.nSet {
			n = cmd.nArg
		}
		err = ip.buf.Delete(n)
	}
	if cmd.colon {
		ip.pushSuccess(err == nil)
		return nil
	}
	return err
}

// execK kills n lines, or the m,n range.
func (ip *Interpreter) execK(cmd *cmdBlock) error {
	start, end, err := ip.lineRange(cmd)
	if err != nil {
		return err
	}
	if !ip.buf.SetDot(start) {
		return tecoErr(ErrPOP)
	}
	return ip.buf.Delete(end - start)
}

// execT types n lines, or the m,n range.
func (ip *Interpreter) execT(cmd *cmdBlock) error {
	start, end, err := ip.lineRange(cmd)
	if err != nil {
		return err
	}
	ip.term.Type(ip.buf.Text(start, end))
	return nil
}

// execV types the lines around dot: the current line plus n-1 lines
// before and n-1 lines after it.
func (ip *Interpreter) execV(cmd *cmdBlock) error {
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	dot := ip.buf.Dot()
	start := dot + ip.buf.LineDelta(1-n)
	end := dot + ip.buf.LineDelta(n)
	ip.term.Type(ip.buf.Text(start, end))
	return nil
}

// execI inserts the text argument at dot; nI with an empty text inserts
// the single character with code n.
func (ip *Interpreter) execI(cmd *cmdBlock) error {
	var text []byte
	if cmd.nSet && cmd.text1.len() == 0 {
		text = []byte{byte(cmd.nArg)}
	} else {
		text = cmd.text1.data
	}
	if err := ip.buf.Insert(text); err != nil {
		return err
	}
	ip.matchLen = -len(text)
	return nil
}

// execTab inserts a tab followed by the text argument.
func (ip *Interpreter) execTab(cmd *cmdBlock) error {
	text := make([]byte, 0, cmd.text1.len()+1)
	text = append(text, tab)
	text = append(text, cmd.text1.data...)
	if err := ip.buf.Insert(text); err != nil {
		return err
	}
	ip.matchLen = -len(text)
	return nil
}

// execA is two commands: nA (operand) pushes the character n positions
// past dot, while A and :A append the next input page to the buffer.
func (ip *Interpreter) execA(cmd *cmdBlock) error {
	if cmd.nSet && !cmd.colon {
		c, ok := ip.buf.CharAt(ip.buf.Dot() + cmd.nArg)
		if !ok {
			ip.est.pushVal(-1)
			return nil
		}
		ip.est.pushVal(int(c))
		return nil
	}
	appended, err := ip.appendPage()
	if err != nil {
		return err
	}
	if cmd.colon {
		ip.pushSuccess(appended)
	}
	return nil
}

// appendPage reads the next page from the input stream onto the end of
// the buffer, leaving dot alone.
func (ip *Interpreter) appendPage() (bool, error) {
	text, ffSeen, eof, err := ip.files.ReadPage()
	if err != nil {
		return false, err
	}
	if ffSeen {
		ip.flags.ffSeen = -1
	} else {
		ip.flags.ffSeen = 0
	}
	if len(text) == 0 && eof {
		return false, nil
	}
	dot := ip.buf.Dot()
	ip.buf.SetDot(ip.buf.Size())
	err = ip.buf.Insert(text)
	ip.buf.SetDot(dot)
	return true, err
}

// execEquals types the value of n in decimal (=), octal (==), or
// hexadecimal (===). The colon form suppresses the newline; the at-sign
// form uses the text argument as a format string.
func (ip *Interpreter) execEquals(cmd *cmdBlock) error {
	if !cmd.nSet {
		return tecoErr(ErrARG)
	}

	var out string
	switch {
	case cmd.atsign && cmd.text1.len() != 0:
		out = fmt.Sprintf(string(cmd.text1.data), cmd.nArg)
	case cmd.c3 == '=':
		out = strconv.FormatInt(int64(cmd.nArg), 16)
	case cmd.c2 == '=':
		out = strconv.FormatInt(int64(cmd.nArg), 8)
	default:
		out = strconv.FormatInt(int64(cmd.nArg), 10)
	}
	ip.term.Type([]byte(out))
	if !cmd.colon {
		ip.term.Type([]byte("\r\n"))
	}
	return nil
}

// execCtrlA types the delimited message text.
func (ip *Interpreter) execCtrlA(cmd *cmdBlock) error {
	ip.term.Type(cmd.text1.data)
	return nil
}

// execQuestion toggles command tracing.
func (ip *Interpreter) execQuestion(cmd *cmdBlock) error {
	ip.trace = !ip.trace
	return nil
}

// execCtrlC stops the current command string; a doubled ^C asks the
// front end to exit the editor.
func (ip *Interpreter) execCtrlC(cmd *cmdBlock) error {
	if next, ok := ip.cb.peek(); ok && next == ctrlC {
		return ErrExitRequested
	}
	return errStop
}

// execBack is the backslash command: with n it inserts the digits of n
// at dot in the current radix; without it reads the digit string at dot
// and pushes its value, advancing dot past the digits.
func (ip *Interpreter) execBack(cmd *cmdBlock) error {
	if cmd.nSet {
		digits := strconv.FormatInt(int64(cmd.nArg), ip.radix)
		text := []byte(digits)
		if err := ip.buf.Insert(text); err != nil {
			return err
		}
		ip.matchLen = -len(text)
		return nil
	}

	pos := ip.buf.Dot()
	sign := 1
	if c, ok := ip.buf.CharAt(pos); ok && (c == '-' || c == '+') {
		if c == '-' {
			sign = -1
		}
		pos++
	}
	val := 0
	ndigits := 0
	for {
		c, ok := ip.buf.CharAt(pos)
		if !ok {
			break
		}
		var d int
		switch {
		case isDigitByte(c) && (ip.radix != 8 || c <= '7'):
			d = int(c - '0')
		case ip.radix == 16 && isHexLetter(c):
			d = int(upcase(c)-'A') + 10
		default:
			goto done
		}
		val = val*ip.radix + d
		ndigits++
		pos++
	}
done:
	if ndigits == 0 {
		ip.est.pushVal(0)
		return nil
	}
	ip.buf.SetDot(pos)
	ip.est.pushVal(sign * val)
	return nil
}
