package teco

import "os"

// Flag commands read as operands when no expression precedes them and
// act as setters otherwise. A lone n argument replaces the flag; an m,n
// pair clears the bits of m and sets the bits of n.

func (ip *Interpreter) flagCmd(cmd *cmdBlock, p *int) error {
	if !cmd.nSet {
		ip.est.pushVal(*p)
		return nil
	}
	if cmd.mSet {
		*p = (*p &^ cmd.mArg) | cmd.nArg
	} else {
		*p = cmd.nArg
	}
	return nil
}

func (ip *Interpreter) execED(cmd *cmdBlock) error { return ip.flagCmd(cmd, &ip.flags.ed) }
func (ip *Interpreter) execEH(cmd *cmdBlock) error { return ip.flagCmd(cmd, &ip.flags.eh) }
func (ip *Interpreter) execES(cmd *cmdBlock) error { return ip.flagCmd(cmd, &ip.flags.es) }
func (ip *Interpreter) execET(cmd *cmdBlock) error { return ip.flagCmd(cmd, &ip.flags.et) }
func (ip *Interpreter) execEU(cmd *cmdBlock) error { return ip.flagCmd(cmd, &ip.flags.eu) }
func (ip *Interpreter) execEV(cmd *cmdBlock) error { return ip.flagCmd(cmd, &ip.flags.ev) }

func (ip *Interpreter) execE1(cmd *cmdBlock) error {
	if err := ip.flagCmd(cmd, &ip.flags.e1); err != nil {
		return err
	}
	ip.est.xoper = ip.flags.e1&E1Xoper != 0
	return nil
}

func (ip *Interpreter) execE2(cmd *cmdBlock) error { return ip.flagCmd(cmd, &ip.flags.e2) }

// execEE reads or sets the ESCape surrogate character.
func (ip *Interpreter) execEE(cmd *cmdBlock) error {
	if !cmd.nSet {
		ip.est.pushVal(int(ip.flags.ee))
		return nil
	}
	if cmd.nArg < 0 || cmd.nArg > 127 {
		return tecoErr(ErrCHR)
	}
	ip.flags.ee = byte(cmd.nArg)
	return nil
}

// execEJ returns environment values: -1EJ the operating system class,
// 0EJ the process id.
func (ip *Interpreter) execEJ(cmd *cmdBlock) error {
	n := 0
	if cmd.nSet {
		n = cmd.nArg
	}
	switch n {
	case -1:
		ip.est.pushVal(0) // Unix
	case 0:
		ip.est.pushVal(os.Getpid())
	default:
		return tecoErr(ErrARG)
	}
	return nil
}

// execEO reports the interpreter version. Setting it is recognized but
// unsupported.
func (ip *Interpreter) execEO(cmd *cmdBlock) error {
	if cmd.nSet {
		return tecoErr(ErrNYI)
	}
	ip.est.pushVal(version)
	return nil
}

// execCtrlE reads or sets the form-feed flag.
func (ip *Interpreter) execCtrlE(cmd *cmdBlock) error {
	return ip.flagCmd(cmd, &ip.flags.ffSeen)
}

// execCtrlX reads or sets the search case-sensitivity flag.
func (ip *Interpreter) execCtrlX(cmd *cmdBlock) error {
	return ip.flagCmd(cmd, &ip.flags.searchMode)
}

// execCtrlD sets the radix to decimal.
func (ip *Interpreter) execCtrlD(cmd *cmdBlock) error {
	ip.radix = 10
	return nil
}

// execCtrlO sets the radix to octal.
func (ip *Interpreter) execCtrlO(cmd *cmdBlock) error {
	ip.radix = 8
	return nil
}

// execCtrlR reads the radix, or sets it when preceded by 8, 10, or 16.
func (ip *Interpreter) execCtrlR(cmd *cmdBlock) error {
	if !cmd.nSet {
		ip.est.pushVal(ip.radix)
		return nil
	}
	n := cmd.nArg
	if n != 8 && n != 10 && n != 16 {
		return tecoErr(ErrIRA)
	}
	ip.radix = n
	return nil
}

// execCtrlT types the character n, or with no argument reads one
// character from the terminal and pushes it.
func (ip *Interpreter) execCtrlT(cmd *cmdBlock) error {
	if !cmd.nSet {
		c, err := ip.term.ReadChar()
		if err != nil {
			return tecoErrStr(ErrSYS, err.Error())
		}
		ip.est.pushVal(c)
		return nil
	}
	ip.term.TypeChar(byte(cmd.nArg))
	return nil
}

// execCtrlW repaints the display when display mode is active.
func (ip *Interpreter) execCtrlW(cmd *cmdBlock) error {
	if ip.display != nil && ip.display.Active() {
		ip.display.Refresh(ip.buf)
	}
	return nil
}
