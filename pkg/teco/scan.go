package teco

// The scanner consumes the command buffer one character at a time,
// accumulating a cmdBlock. Characters that only build expressions
// (operands and operators) execute inline and the scan continues; the
// scan returns to the dispatcher when it has a complete consuming
// command.

// isWhitespace reports the characters skipped between commands. TAB is
// not among them: it is the insert-tab command.
func isWhitespace(c byte) bool {
	return c == ' ' || c == lf || c == vt || c == ff || c == cr
}

func upcase(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

func isAlnumByte(c byte) bool {
	c = upcase(c)
	return isDigitByte(c) || (c >= 'A' && c <= 'Z')
}

func isPrintByte(c byte) bool { return c > ' ' && c < 0x7F }

// nextCmd scans the next complete consuming command. It returns nil at
// the end of the command buffer.
func (ip *Interpreter) nextCmd(cmd *cmdBlock) (execFn, error) {
	for !ip.cb.empty() {
		c, err := ip.cb.fetch()
		if err != nil {
			return nil, err
		}

		if isWhitespace(c) {
			continue
		}

		if isDigitByte(c) {
			if err := ip.scanDigits(c, false); err != nil {
				return nil, err
			}
			continue
		}

		entry, err := ip.scanCmd(cmd, c, false)
		if err != nil {
			return nil, err
		}
		if entry == nil {
			continue
		}

		opts := entry.opts

		if cmd.atsign && ip.flags.e2&E2Atsign != 0 && opts&optA == 0 {
			return nil, tecoErr(ErrATS)
		}
		if ip.flags.e2&E2Colon != 0 {
			if cmd.colon && opts&optC == 0 {
				return nil, tecoErr(ErrCOL)
			}
			if cmd.dcolon && opts&optD == 0 {
				return nil, tecoErr(ErrCOL)
			}
		}

		if opts&optQ != 0 {
			if err := ip.scanQname(cmd); err != nil {
				return nil, err
			}
		}

		if opts&optT1 != 0 {
			if err := ip.scanTexts(cmd, opts); err != nil {
				return nil, err
			}
		}

		// A is an operand when preceded by an expression and no colon;
		// ^Q is always an operand; a flag command is an operand unless
		// an expression precedes it.
		switch {
		case upcase(cmd.c1) == 'A' && ip.est.hasOperand() && !cmd.colon:
			if err := ip.endCmd(cmd, opts); err != nil {
				return nil, err
			}
			opts |= optO
		case cmd.c1 == ctrlQ:
			if ip.est.hasOperand() {
				if err := ip.endCmd(cmd, opts); err != nil {
					return nil, err
				}
			}
			opts |= optO
		case opts&optF != 0 && !ip.est.hasOperand():
			opts |= optO
		}

		if opts&optO == 0 {
			if err := ip.endCmd(cmd, opts); err != nil {
				return nil, err
			}
			return entry.exec, nil
		}

		// Operand or operator: execute now and keep scanning.
		if err := entry.exec(ip, cmd); err != nil {
			return nil, err
		}
		if opts&optA != 0 {
			cmd.atsign = false
		}
		if opts&optC != 0 {
			cmd.colon = false
			cmd.dcolon = false
		}
	}

	// End of the command string. Outside a macro, unmatched parentheses
	// are an error, and so are leftover expression values when the E2
	// args bit is set.
	if !ip.inMacro() {
		if ip.nparens != 0 {
			return nil, tecoErr(ErrMRP)
		}
		if ip.flags.e2&E2Args != 0 && ip.est.depth() != 0 {
			return nil, tecoErr(ErrARG)
		}
	}
	return nil, nil
}

func isHexLetter(c byte) bool {
	c = upcase(c)
	return c >= 'A' && c <= 'F'
}

// scanDigits accumulates a number in the current radix and pushes it. The
// first digit has already been fetched.
func (ip *Interpreter) scanDigits(c byte, skipping bool) error {
	sum := 0
	for {
		var d int
		switch {
		case isDigitByte(c):
			d = int(c - '0')
			if ip.radix == 8 && d > 7 {
				return tecoErr(ErrILN)
			}
		case ip.radix == 16 && isHexLetter(c):
			d = int(upcase(c)-'A') + 10
		default:
			ip.cb.unfetch()
			if !skipping {
				ip.est.pushVal(sum)
			}
			return nil
		}
		sum = sum*ip.radix + d

		next, ok := ip.cb.peek()
		if !ok {
			if !skipping {
				ip.est.pushVal(sum)
			}
			return nil
		}
		c = next
		ip.cb.pos++
	}
}

// scanCmd resolves one command character to its table entry, handling
// prefixes, modifiers, and the characters that need lookahead. A nil
// entry with nil error means the character was wholly consumed here
// (modifier, ^^c literal, extended operator) and scanning continues.
// With skipping set, everything is consumed identically but nothing is
// pushed on the expression stack.
func (ip *Interpreter) scanCmd(cmd *cmdBlock, c byte, skipping bool) (*cmdEntry, error) {
	cmd.c1 = c
	cmd.c2 = 0
	cmd.c3 = 0
	cmd.qname = 0
	cmd.qlocal = false

	if c >= 0x80 {
		return nil, tecoErrChr(ErrILL, c)
	}

	var entry *cmdEntry

	switch upcase(c) {
	case '"':
		c2, err := ip.cb.fetch()
		if err != nil {
			return nil, ip.untermErr()
		}
		cmd.c2 = upcase(c2)
		entry = &cmdTable['"']

	case '=':
		if next, ok := ip.cb.peek(); ok && next == '=' {
			ip.cb.pos++
			cmd.c2 = '='
			if next, ok := ip.cb.peek(); ok && next == '=' {
				ip.cb.pos++
				cmd.c3 = '='
			}
		}
		entry = &cmdTable['=']

	case ':':
		if next, ok := ip.cb.peek(); ok && next == ':' {
			ip.cb.pos++
			if cmd.dcolon && ip.flags.e2&E2Colon != 0 {
				return nil, tecoErr(ErrCOL)
			}
			cmd.dcolon = true
		}
		if !cmd.dcolon {
			cmd.colon = true
		}
		return nil, nil

	case '@':
		if cmd.atsign && ip.flags.e2&E2Atsign != 0 {
			return nil, tecoErr(ErrATS)
		}
		cmd.atsign = true
		return nil, nil

	case 'E':
		c2, err := ip.cb.fetch()
		if err != nil {
			return nil, ip.untermErr()
		}
		e, ok := cmdETable[upcase(c2)]
		if !ok {
			return nil, tecoErrChr(ErrIEC, c2)
		}
		cmd.c1 = 'E'
		cmd.c2 = upcase(c2)
		entry = &e

	case 'F':
		c2, err := ip.cb.fetch()
		if err != nil {
			return nil, ip.untermErr()
		}
		f, ok := cmdFTable[upcase(c2)]
		if !ok {
			return nil, tecoErrChr(ErrIFC, c2)
		}
		cmd.c1 = 'F'
		cmd.c2 = upcase(c2)
		entry = &f

	case 'P':
		if next, ok := ip.cb.peek(); ok && upcase(next) == 'W' {
			ip.cb.pos++
			cmd.wSet = true
		}
		entry = &cmdTable['P']

	case '^', upDown:
		var cc byte
		if c == '^' {
			c2, err := ip.cb.fetch()
			if err != nil {
				return nil, ip.untermErr()
			}
			if c2 == '^' {
				// ^^x pushes the value of the literal character x.
				c3, err := ip.cb.fetch()
				if err != nil {
					return nil, ip.untermErr()
				}
				cmd.c2 = c2
				cmd.c3 = c3
				if !skipping {
					ip.est.pushVal(int(c3))
				}
				return nil, nil
			}
			code := upcase(c2) - 'A' + 1
			if upcase(c2) < 'A' || code >= ' ' {
				return nil, tecoErrChr(ErrIUC, c2)
			}
			cc = code
		} else {
			// 0x1E pushes its single following character as a value.
			c2, err := ip.cb.fetch()
			if err != nil {
				return nil, ip.untermErr()
			}
			cmd.c2 = c2
			if !skipping {
				ip.est.pushVal(int(c2))
			}
			return nil, nil
		}
		cmd.c1 = cc
		entry = &cmdTable[cc]

	default:
		if ip.nparens != 0 && ip.flags.e1&E1Xoper != 0 {
			handled, err := ip.scanXoper(c, skipping)
			if err != nil {
				return nil, err
			}
			if handled {
				return nil, nil
			}
		}
		entry = &cmdTable[upcase(c)]
	}

	if entry.exec == nil {
		return nil, tecoErrChr(ErrILL, c)
	}
	return entry, nil
}

// scanXoper recognizes the extended C-like operators permitted inside
// parentheses when the E1 xoper bit is set. It reports whether it
// consumed the character.
func (ip *Interpreter) scanXoper(c byte, skipping bool) (bool, error) {
	var op byte
	switch c {
	case '<':
		op = opLT
		if next, ok := ip.cb.peek(); ok {
			switch next {
			case '=':
				ip.cb.pos++
				op = opLE
			case '<':
				ip.cb.pos++
				op = opSHL
			case '>':
				ip.cb.pos++
				op = opNE
			}
		}
	case '>':
		op = opGT
		if next, ok := ip.cb.peek(); ok {
			switch next {
			case '=':
				ip.cb.pos++
				op = opGE
			case '>':
				ip.cb.pos++
				op = opSHR
			}
		}
	case '=':
		next, ok := ip.cb.peek()
		if !ok || next != '=' {
			return false, nil // single = is the typeout command
		}
		ip.cb.pos++
		op = opEQ
	case '/':
		next, ok := ip.cb.peek()
		if !ok || next != '/' {
			return false, nil // single / is ordinary division
		}
		ip.cb.pos++
		op = opRem
	default:
		return false, nil
	}

	if skipping {
		return true, nil
	}
	return true, ip.est.pushOp(op)
}

// scanQname consumes the Q-register name (with optional . prefix for
// local scope) required by the command. The G family additionally
// accepts the special names *, _ and +.
func (ip *Interpreter) scanQname(cmd *cmdBlock) error {
	c, err := ip.cb.fetch()
	if err != nil {
		return ip.untermErr()
	}
	if c == '.' {
		cmd.qlocal = true
		if c, err = ip.cb.fetch(); err != nil {
			return ip.untermErr()
		}
	}
	if !isAlnumByte(c) {
		if upcase(cmd.c1) != 'G' || (c != '*' && c != '_' && c != '+') {
			return tecoErrChr(ErrIQN, c)
		}
	}
	cmd.qname = c
	return nil
}

// scanTexts extracts the text argument(s) for the command, applying the
// delimiter rules: ESCape by default, ^A for ^A, ! (or end of line) for
// tags, or the user's own delimiter after @.
func (ip *Interpreter) scanTexts(cmd *cmdBlock, opts uint16) error {
	// Only the at-sign form of = takes a text argument.
	if cmd.c1 == '=' && !cmd.atsign {
		return nil
	}

	switch cmd.c1 {
	case ctrlA:
		cmd.delim = ctrlA
	case '!':
		cmd.delim = '!'
		if ip.flags.e1&E1Bang != 0 {
			if next, ok := ip.cb.peek(); ok && next == '!' {
				ip.cb.pos++
				cmd.delim = lf // !! comment runs to end of line
			}
		}
	default:
		cmd.delim = esc
	}

	if cmd.atsign {
		for {
			next, ok := ip.cb.peek()
			if !ok || next != ' ' {
				break
			}
			ip.cb.pos++
		}
		d, err := ip.cb.fetch()
		if err != nil {
			return ip.untermErr()
		}
		if !isPrintByte(d) {
			return tecoErr(ErrATS)
		}
		cmd.delim = d
	}

	if cmd.delim != '{' || ip.flags.e1&E1Text == 0 {
		if err := ip.scanText(cmd.delim, &cmd.text1); err != nil {
			return err
		}
		if opts&optT2 != 0 {
			return ip.scanText(cmd.delim, &cmd.text2)
		}
		return nil
	}

	// Brace-delimited text: @S {foo} or @FS {foo} {baz}, whitespace
	// between the two arguments permitted.
	if err := ip.scanText('}', &cmd.text1); err != nil {
		return err
	}
	if opts&optT2 == 0 {
		return nil
	}
	for {
		next, ok := ip.cb.peek()
		if !ok || (!isWhitespace(next) && next != tab) {
			break
		}
		ip.cb.pos++
	}
	c, err := ip.cb.fetch()
	if err != nil {
		return ip.untermErr()
	}
	if c == '{' {
		return ip.scanText('}', &cmd.text2)
	}
	return ip.scanText(c, &cmd.text2)
}

// scanText records a (start, length) view up to the next delimiter.
func (ip *Interpreter) scanText(delim byte, text *tstring) error {
	off := ip.cb.find(delim)
	if off < 0 {
		return ip.untermErr()
	}
	text.data = ip.cb.view(ip.cb.pos, off)
	ip.cb.pos += off + 1
	return nil
}

// endCmd reduces the expression stack into the command's n (and m)
// arguments and enforces the argument rules for its option bits.
func (ip *Interpreter) endCmd(cmd *cmdBlock, opts uint16) error {
	n, ok, err := ip.est.popValue()
	if err != nil {
		return err
	}
	if !ok && ip.est.isLoneUnaryMinus() {
		ip.est.dropLoneMinus()
		n, ok = -1, true
	}
	cmd.nSet = ok
	cmd.nArg = n

	if opts&optE != 0 {
		cmd.mSet, cmd.nSet = false, false
		cmd.mArg, cmd.nArg = 0, 0
	}

	if cmd.mSet {
		if ip.flags.e2&E2MArg != 0 && opts&optM == 0 {
			return tecoErr(ErrIMA)
		}
		if !cmd.nSet {
			return tecoErr(ErrNON)
		}
	} else if cmd.nSet {
		if ip.flags.e2&E2NArg != 0 && opts&optN == 0 {
			return tecoErr(ErrINA)
		}
	}
	return nil
}

// skipCmd lexes commands without executing them, stopping after a
// command whose head character appears in stop. It preserves only
// lexical state: the expression stack is restored on return. Used for
// conditional branches, loop exits, and tag resolution.
func (ip *Interpreter) skipCmd(cmd *cmdBlock, stop string) (bool, error) {
	cmd.reset()
	saved := ip.est.depth()
	defer ip.est.resetTo(saved)

	for !ip.cb.empty() {
		c, err := ip.cb.fetch()
		if err != nil {
			return false, err
		}
		if isWhitespace(c) {
			continue
		}
		if isDigitByte(c) {
			if err := ip.scanDigits(c, true); err != nil {
				return false, err
			}
			continue
		}

		entry, err := ip.scanCmd(cmd, c, true)
		if err != nil {
			return false, err
		}
		if entry == nil {
			continue
		}
		if entry.opts&optQ != 0 {
			if err := ip.scanQname(cmd); err != nil {
				return false, err
			}
		}
		if entry.opts&optT1 != 0 {
			if err := ip.scanTexts(cmd, entry.opts); err != nil {
				return false, err
			}
		}

		for i := 0; i < len(stop); i++ {
			if cmd.c1 == stop[i] {
				return true, nil
			}
		}

		if entry.opts&optO == 0 {
			cmd.reset()
		}
	}
	return false, nil
}
