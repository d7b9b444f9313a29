package teco

import "strings"

// Control-flow commands layered over the scanner: conditionals, loops,
// tags, goto, and macros. Skipped regions are still fully parsed (via
// skipCmd) so that text delimiters and nesting stay honest.

// condTrue evaluates the comparison character of an n"X conditional.
func condTrue(kind byte, n int) (bool, error) {
	switch kind {
	case '=', 'E', 'F', 'U':
		return n == 0, nil
	case '<', 'L', 'S', 'T':
		return n < 0, nil
	case '>', 'G':
		return n > 0, nil
	case 'N':
		return n != 0, nil
	case 'A':
		c := upcase(byte(n))
		return c >= 'A' && c <= 'Z', nil
	case 'C':
		c := byte(n)
		return isAlnumByte(c) || c == '.' || c == '$' || c == '_', nil
	case 'D':
		return isDigitByte(byte(n)), nil
	case 'R':
		return isAlnumByte(byte(n)), nil
	case 'V':
		c := byte(n)
		return c >= 'a' && c <= 'z', nil
	case 'W':
		c := byte(n)
		return c >= 'A' && c <= 'Z', nil
	}
	return false, tecoErrChr(ErrILL, kind)
}

// execQuote starts a conditional. A true condition falls into the body;
// a false one skips to the matching | or '.
func (ip *Interpreter) execQuote(cmd *cmdBlock) error {
	if !cmd.nSet {
		return tecoErr(ErrARG)
	}
	ok, err := condTrue(cmd.c2, cmd.nArg)
	if err != nil {
		return err
	}
	if ok {
		cmd.level++
		return nil
	}

	// Skip the true branch, honoring nested conditionals.
	depth := 0
	var skip cmdBlock
	for {
		found, err := ip.skipCmd(&skip, "\"|'")
		if err != nil {
			return err
		}
		if !found {
			return ip.untermErr()
		}
		switch skip.c1 {
		case '"':
			depth++
		case '\'':
			if depth == 0 {
				return nil // condition never entered
			}
			depth--
		case '|':
			if depth == 0 {
				cmd.level++ // enter the else branch
				return nil
			}
		}
	}
}

// execVbar is the else separator reached at the end of a true branch:
// skip forward past the matching apostrophe.
func (ip *Interpreter) execVbar(cmd *cmdBlock) error {
	if err := ip.skipPastApos(); err != nil {
		return err
	}
	if cmd.level > 0 {
		cmd.level--
	}
	return nil
}

// execApos closes a conditional; executed in-line it has no effect
// beyond bookkeeping.
func (ip *Interpreter) execApos(cmd *cmdBlock) error {
	if cmd.level > 0 {
		cmd.level--
	}
	return nil
}

// execFApos flows to the end of the current conditional.
func (ip *Interpreter) execFApos(cmd *cmdBlock) error {
	return ip.execVbar(cmd)
}

// execFVbar flows to the else clause of the current conditional, or past
// its end when there is none.
func (ip *Interpreter) execFVbar(cmd *cmdBlock) error {
	depth := 0
	var skip cmdBlock
	for {
		found, err := ip.skipCmd(&skip, "\"|'")
		if err != nil {
			return err
		}
		if !found {
			return ip.untermErr()
		}
		switch skip.c1 {
		case '"':
			depth++
		case '\'':
			if depth == 0 {
				if cmd.level > 0 {
					cmd.level--
				}
				return nil
			}
			depth--
		case '|':
			if depth == 0 {
				return nil
			}
		}
	}
}

// skipPastApos advances past the apostrophe closing the current
// conditional.
func (ip *Interpreter) skipPastApos() error {
	depth := 0
	var skip cmdBlock
	for {
		found, err := ip.skipCmd(&skip, "\"'")
		if err != nil {
			return err
		}
		if !found {
			return ip.untermErr()
		}
		switch skip.c1 {
		case '"':
			depth++
		case '\'':
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// execLt opens a loop: n iterations, or unbounded with no argument.
// A non-positive count skips the body entirely.
func (ip *Interpreter) execLt(cmd *cmdBlock) error {
	if cmd.nSet && cmd.nArg <= 0 {
		return ip.skipPastLoopEnd()
	}
	remaining := -1
	if cmd.nSet {
		remaining = cmd.nArg
	}
	ip.loops = append(ip.loops, loopFrame{start: ip.cb.pos, remaining: remaining})
	cmd.level++
	return nil
}

// execGt closes a loop: decrement the count and either jump back to the
// start or fall through.
func (ip *Interpreter) execGt(cmd *cmdBlock) error {
	return ip.gtLogic(cmd)
}

func (ip *Interpreter) gtLogic(cmd *cmdBlock) error {
	if len(ip.loops) == 0 {
		return tecoErr(ErrBNI)
	}
	top := &ip.loops[len(ip.loops)-1]
	if top.remaining > 0 {
		top.remaining--
	}
	if top.remaining == 0 {
		ip.loops = ip.loops[:len(ip.loops)-1]
		if cmd.level > 0 {
			cmd.level--
		}
		return nil
	}
	ip.cb.pos = top.start
	return nil
}

// execSemi conditionally exits the loop: on n >= 0, or on n < 0 with the
// colon form.
func (ip *Interpreter) execSemi(cmd *cmdBlock) error {
	if len(ip.loops) == 0 {
		return tecoErr(ErrSNI)
	}
	if !cmd.nSet {
		return tecoErr(ErrARG)
	}
	exit := cmd.nArg >= 0
	if cmd.colon {
		exit = cmd.nArg < 0
	}
	if !exit {
		return nil
	}
	ip.loops = ip.loops[:len(ip.loops)-1]
	if cmd.level > 0 {
		cmd.level--
	}
	return ip.skipPastLoopEnd()
}

// execFGt flows to the end of the current iteration: the closing > takes
// effect immediately.
func (ip *Interpreter) execFGt(cmd *cmdBlock) error {
	if len(ip.loops) == 0 {
		return tecoErr(ErrBNI)
	}
	if err := ip.skipPastLoopEnd(); err != nil {
		return err
	}
	// skipPastLoopEnd consumed the >, so apply its effect by hand.
	top := &ip.loops[len(ip.loops)-1]
	if top.remaining > 0 {
		top.remaining--
	}
	if top.remaining == 0 {
		ip.loops = ip.loops[:len(ip.loops)-1]
		if cmd.level > 0 {
			cmd.level--
		}
		return nil
	}
	ip.cb.pos = top.start
	return nil
}

// execFLt restarts the current iteration from the top of the loop, or
// from the start of the command string outside one.
func (ip *Interpreter) execFLt(cmd *cmdBlock) error {
	if len(ip.loops) == 0 {
		ip.cb.pos = 0
		return nil
	}
	ip.cb.pos = ip.loops[len(ip.loops)-1].start
	return nil
}

// skipPastLoopEnd advances past the > matching the current loop,
// honoring nested loops.
func (ip *Interpreter) skipPastLoopEnd() error {
	depth := 0
	var skip cmdBlock
	for {
		found, err := ip.skipCmd(&skip, "<>")
		if err != nil {
			return err
		}
		if !found {
			return ip.untermErr()
		}
		switch skip.c1 {
		case '<':
			depth++
		case '>':
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// execBang declares a tag. Its only execution effect is passing numeric
// arguments through to the next command.
func (ip *Interpreter) execBang(cmd *cmdBlock) error {
	ip.repushArgs(cmd)
	return nil
}

// execO jumps to a tag: Otag, or nOt1,t2,t3 for a 1-based computed goto.
func (ip *Interpreter) execO(cmd *cmdBlock) error {
	if cmd.text1.len() == 0 {
		return tecoErr(ErrNOT)
	}
	if !cmd.nSet {
		return ip.findTag(strings.TrimSpace(string(cmd.text1.data)))
	}
	if cmd.nArg <= 0 {
		return tecoErr(ErrNOA)
	}
	names := strings.Split(string(cmd.text1.data), ",")
	if cmd.nArg > len(names) {
		return tecoErr(ErrBOA)
	}
	name := strings.TrimSpace(names[cmd.nArg-1])
	if name == "" {
		return nil // empty element: no jump
	}
	return ip.findTag(name)
}

// findTag scans the entire current command buffer in dry-run mode for
// the unique !tag! declaration and moves the cursor just past it.
func (ip *Interpreter) findTag(name string) error {
	savedPos := ip.cb.pos
	ip.cb.pos = 0
	tagPos := -1

	var skip cmdBlock
	for {
		found, err := ip.skipCmd(&skip, "!")
		if err != nil {
			ip.cb.pos = savedPos
			return err
		}
		if !found {
			break
		}
		if strings.TrimSpace(string(skip.text1.data)) != name {
			continue
		}
		if tagPos != -1 {
			ip.cb.pos = savedPos
			return tecoErrStr(ErrDUP, name)
		}
		tagPos = ip.cb.pos
	}

	if tagPos == -1 {
		ip.cb.pos = savedPos
		return tecoErrStr(ErrTAG, name)
	}
	ip.cb.pos = tagPos
	return nil
}

// execM runs a Q-register's text as a macro. The colon form shares the
// caller's local Q-register namespace instead of opening a new one.
func (ip *Interpreter) execM(cmd *cmdBlock) error {
	text := ip.qr.getText(cmd.qname, cmd.qlocal)
	return ip.ExecuteMacro(text, cmd, !cmd.colon)
}

// execW drives display mode: -1W turns it on, 0W turns it off, W
// refreshes, and :W pushes whether it is active.
func (ip *Interpreter) execW(cmd *cmdBlock) error {
	if ip.display == nil {
		return nil
	}
	if cmd.colon {
		ip.est.pushVal(boolVal(ip.display.Active()))
		return nil
	}
	if cmd.nSet {
		switch {
		case cmd.nArg < 0:
			return ip.display.SetActive(true)
		case cmd.nArg == 0:
			return ip.display.SetActive(false)
		}
	}
	if ip.display.Active() {
		ip.display.Refresh(ip.buf)
	}
	return nil
}
