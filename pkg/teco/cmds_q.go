package teco

// Q-register commands: storage, retrieval, push-down, and the G family.

// buildInfo is the text behind the G+ special register.
const buildInfo = "TECO 200 (Go)"

// execU stores n in a Q-register. An m argument passes through as the
// next command's n.
func (ip *Interpreter) execU(cmd *cmdBlock) error {
	if !cmd.nSet {
		return tecoErr(ErrNAU)
	}
	ip.qr.setNum(cmd.qname, cmd.qlocal, cmd.nArg)
	if cmd.mSet {
		ip.est.pushVal(cmd.mArg)
	}
	return nil
}

// execQ pushes a Q-register's number, or with a colon the size of its
// text.
func (ip *Interpreter) execQ(cmd *cmdBlock) error {
	if cmd.colon {
		ip.est.pushVal(len(ip.qr.getText(cmd.qname, cmd.qlocal)))
		return nil
	}
	ip.est.pushVal(ip.qr.getNum(cmd.qname, cmd.qlocal))
	return nil
}

// execPct adds n (default 1) to a Q-register's number and pushes the
// result.
func (ip *Interpreter) execPct(cmd *cmdBlock) error {
	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	n += ip.qr.getNum(cmd.qname, cmd.qlocal)
	ip.qr.setNum(cmd.qname, cmd.qlocal, n)
	ip.est.pushVal(n)
	return nil
}

// execX copies n lines (or the m,n range) of the buffer into a
// Q-register's text; the colon form appends.
func (ip *Interpreter) execX(cmd *cmdBlock) error {
	start, end, err := ip.lineRange(cmd)
	if err != nil {
		return err
	}
	text := ip.buf.Text(start, end)
	if cmd.colon {
		ip.qr.appendText(cmd.qname, cmd.qlocal, text)
		return nil
	}
	ip.qr.setText(cmd.qname, cmd.qlocal, text)
	return nil
}

// execG inserts a Q-register's text at dot, or types it with a colon.
// The special registers are * (last file name), _ (last search string),
// and + (build information).
func (ip *Interpreter) execG(cmd *cmdBlock) error {
	var text []byte
	switch cmd.qname {
	case '*':
		text = []byte(ip.lastFile)
	case '_':
		text = ip.lastSearch
	case '+':
		text = []byte(buildInfo)
	default:
		text = ip.qr.getText(cmd.qname, cmd.qlocal)
	}

	if cmd.colon {
		ip.term.Type(text)
		return nil
	}
	if err := ip.buf.Insert(text); err != nil {
		return err
	}
	ip.matchLen = -len(text)
	return nil
}

// execCtrlU stores the text argument in a Q-register (append with a
// colon); n^Uq with an empty text stores the single character n.
func (ip *Interpreter) execCtrlU(cmd *cmdBlock) error {
	text := cmd.text1.data
	if cmd.nSet && cmd.text1.len() == 0 {
		text = []byte{byte(cmd.nArg)}
	}
	if cmd.colon {
		ip.qr.appendText(cmd.qname, cmd.qlocal, text)
		return nil
	}
	ip.qr.setText(cmd.qname, cmd.qlocal, text)
	return nil
}

// execLbracket pushes a Q-register on the push-down list. Numeric
// arguments pass through to the next command.
func (ip *Interpreter) execLbracket(cmd *cmdBlock) error {
	ip.qr.push(cmd.qname, cmd.qlocal)
	ip.repushArgs(cmd)
	return nil
}

// execRbracket pops the push-down list into a Q-register. The colon
// form pushes a success value instead of failing on an empty list.
func (ip *Interpreter) execRbracket(cmd *cmdBlock) error {
	err := ip.qr.pop(cmd.qname, cmd.qlocal)
	if cmd.colon {
		ip.pushSuccess(err == nil)
		return nil
	}
	if err != nil {
		return err
	}
	ip.repushArgs(cmd)
	return nil
}

// repushArgs puts a command's own m,n back on the stack so the
// dispatcher can hand them to the following command.
func (ip *Interpreter) repushArgs(cmd *cmdBlock) {
	if cmd.nSet {
		if cmd.mSet {
			ip.est.pushVal(cmd.mArg)
		}
		ip.est.pushVal(cmd.nArg)
	}
}
