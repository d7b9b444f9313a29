package teco

import "time"

// Operand and operator commands: they execute during the scan and leave
// their results on the expression stack.

// execOperator handles the arithmetic operators and parentheses.
func (ip *Interpreter) execOperator(cmd *cmdBlock) error {
	switch cmd.c1 {
	case '(':
		ip.nparens++
		ip.est.pushParen()
		return nil
	case ')':
		if ip.nparens == 0 {
			return tecoErr(ErrMLP)
		}
		if !ip.est.hasOperand() {
			return tecoErr(ErrNAP)
		}
		ip.nparens--
		return ip.est.closeParen()
	case ',':
		if cmd.mSet {
			return tecoErr(ErrARG)
		}
		m, ok, err := ip.est.popValue()
		if err != nil {
			return err
		}
		if !ok {
			return tecoErr(ErrARG)
		}
		cmd.mSet = true
		cmd.mArg = m
		return nil
	}
	return ip.est.pushOp(cmd.c1)
}

// execDot pushes the current buffer position.
func (ip *Interpreter) execDot(cmd *cmdBlock) error {
	ip.est.pushVal(ip.buf.Dot())
	return nil
}

// execB pushes the beginning-of-buffer position, which is always zero.
func (ip *Interpreter) execB(cmd *cmdBlock) error {
	ip.est.pushVal(0)
	return nil
}

// execZ pushes the end-of-buffer position.
func (ip *Interpreter) execZ(cmd *cmdBlock) error {
	ip.est.pushVal(ip.buf.Size())
	return nil
}

// execH is the whole-buffer operand, equivalent to the pair B,Z.
func (ip *Interpreter) execH(cmd *cmdBlock) error {
	cmd.hSet = true
	cmd.mSet = true
	cmd.mArg = 0
	ip.est.pushVal(ip.buf.Size())
	return nil
}

// execCtrlY is the text-of-last-search operand, equivalent to .+^S,.
func (ip *Interpreter) execCtrlY(cmd *cmdBlock) error {
	cmd.ctrlYSet = true
	cmd.mSet = true
	cmd.mArg = ip.buf.Dot() + ip.matchLen
	ip.est.pushVal(ip.buf.Dot())
	return nil
}

// execCtrlS pushes the negated length of the last insert or search match.
func (ip *Interpreter) execCtrlS(cmd *cmdBlock) error {
	ip.est.pushVal(ip.matchLen)
	return nil
}

// execCtrlB pushes the current date encoded TECO style:
// ((year-1900)*16 + month)*32 + day.
func (ip *Interpreter) execCtrlB(cmd *cmdBlock) error {
	now := time.Now()
	ip.est.pushVal(((now.Year()-1900)*16+int(now.Month()))*32 + now.Day())
	return nil
}

// execCtrlH pushes the time of day in seconds since midnight divided by
// two, per the TECO convention.
func (ip *Interpreter) execCtrlH(cmd *cmdBlock) error {
	now := time.Now()
	ip.est.pushVal((now.Hour()*3600 + now.Minute()*60 + now.Second()) / 2)
	return nil
}

// execCtrlF: the console-switch operand was a TECO-10 feature; with an
// argument it stays unimplemented, without one it reads as zero.
func (ip *Interpreter) execCtrlF(cmd *cmdBlock) error {
	if ip.est.hasOperand() {
		return tecoErr(ErrT10)
	}
	ip.est.pushVal(0)
	return nil
}

// execCtrlN pushes the end-of-file flag for the current input stream.
func (ip *Interpreter) execCtrlN(cmd *cmdBlock) error {
	ip.est.pushVal(boolVal(ip.files.AtEOF()))
	return nil
}

// execCtrlZ pushes the total size of all global Q-register text storage.
func (ip *Interpreter) execCtrlZ(cmd *cmdBlock) error {
	total := 0
	for _, r := range ip.qr.global {
		total += len(r.text)
	}
	ip.est.pushVal(total)
	return nil
}

// execCtrlQ converts a line count into a character offset from dot.
func (ip *Interpreter) execCtrlQ(cmd *cmdBlock) error {
	n := 0
	if cmd.nSet {
		n = cmd.nArg
	}
	ip.est.pushVal(ip.buf.LineDelta(n))
	return nil
}

// execOnesComp is the ^_ postfix operator: one's complement of the
// preceding operand.
func (ip *Interpreter) execOnesComp(cmd *cmdBlock) error {
	v, ok, err := ip.est.popValue()
	if err != nil {
		return err
	}
	if !ok {
		return tecoErr(ErrARG)
	}
	ip.est.pushVal(^v)
	return nil
}

// execEscape discards the command separator and any whitespace after it.
func (ip *Interpreter) execEscape(cmd *cmdBlock) error {
	for {
		c, ok := ip.cb.peek()
		if !ok || !isWhitespace(c) {
			break
		}
		ip.cb.pos++
	}
	return nil
}
