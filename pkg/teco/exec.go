package teco

// Execute runs one complete command string against the collaborators.
// The first error aborts the string, unwinds all loop and conditional
// state, resets the expression stack, and is returned for the prompt
// loop to report.
func (ip *Interpreter) Execute(command []byte) error {
	ip.lastCmd = append(ip.lastCmd[:0], command...)

	ip.cb = newCbuf(ip.lastCmd, false)
	ip.est.resetTo(0)
	ip.est.xoper = ip.flags.e1&E1Xoper != 0
	ip.loops = ip.loops[:0]
	ip.nparens = 0

	err := ip.execLoop(nil)
	if err == errStop {
		err = nil
	}
	if err != nil {
		ip.est.resetTo(0)
		ip.loops = ip.loops[:0]
		ip.nparens = 0
		ip.lastErr = err
	}
	ip.cb = nil
	return err
}

// execLoop is the dispatcher: it alternates scanning and executing until
// the current command buffer is exhausted. A macro invocation re-enters
// it with the caller's arguments in from.
func (ip *Interpreter) execLoop(from *cmdBlock) error {
	var cmd cmdBlock

	// A macro inherits its caller's numeric arguments.
	if from != nil {
		if from.nSet {
			ip.est.pushVal(from.nArg)
		}
		cmd.mSet = from.mSet
		cmd.mArg = from.mArg
	}

	for !ip.cb.empty() {
		exec, err := ip.nextCmd(&cmd)
		if err != nil {
			return err
		}
		if exec == nil {
			break
		}

		c := cmd.c1

		// A negative m means m,n with m > n, which only the display W
		// command accepts.
		if cmd.mSet && cmd.mArg < 0 && upcase(c) != 'W' {
			return tecoErr(ErrNCA)
		}

		ip.tracef("exec %q m=%v,%d n=%v,%d", c, cmd.mSet, cmd.mArg, cmd.nSet, cmd.nArg)

		if err := exec(ip, &cmd); err != nil {
			return err
		}

		cmd.reset()

		// Tags and Q-register push/pop pass numeric arguments through
		// to the following command instead of consuming them.
		if c == '!' || c == '[' || c == ']' {
			if err := ip.passThrough(&cmd); err != nil {
				return err
			}
		}

		if ip.ctrlCPending.Swap(false) {
			return tecoErr(ErrXAB)
		}
	}
	return nil
}

// passThrough moves residual expression values into the next command's
// m,n after one of the pass-through commands (!, [, ]).
func (ip *Interpreter) passThrough(cmd *cmdBlock) error {
	n, ok, err := ip.est.popValue()
	if err != nil {
		return err
	}
	cmd.nSet = ok
	cmd.nArg = n

	m, ok, err := ip.est.popValue()
	if err != nil {
		return err
	}
	cmd.mSet = ok
	cmd.mArg = m

	if cmd.nSet {
		ip.est.pushVal(cmd.nArg)
	}
	return nil
}

// maxMacroDepth bounds runaway macro recursion (Mq where q invokes
// itself) before the Go stack does.
const maxMacroDepth = 1024

// ExecuteMacro runs text as a macro body in the current interpreter,
// saving and restoring the surrounding command state. Used by the M and
// EI commands.
func (ip *Interpreter) ExecuteMacro(text []byte, from *cmdBlock, localFrame bool) error {
	if ip.macroDepth >= maxMacroDepth {
		return tecoErr(ErrMEM)
	}
	savedCb := ip.cb
	savedLoops := ip.loops
	savedParens := ip.nparens

	// Snapshot the body so a macro that rewrites its own Q-register
	// keeps executing the text it started with.
	body := append([]byte(nil), text...)
	ip.cb = newCbuf(body, true)
	ip.loops = nil
	ip.nparens = 0
	ip.macroDepth++

	if localFrame {
		ip.qr.pushLocalFrame()
	}

	err := ip.execLoop(from)

	if localFrame {
		ip.qr.popLocalFrame()
	}
	ip.macroDepth--
	ip.cb = savedCb
	ip.loops = savedLoops
	ip.nparens = savedParens
	return err
}
