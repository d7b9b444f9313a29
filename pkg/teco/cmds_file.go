package teco

import "strings"

// File commands. Stream handling lives in the FileSystem collaborator;
// this file owns the command semantics and the last-filespec record
// behind G*.

// textName extracts a filename argument.
func textName(cmd *cmdBlock) string {
	return strings.TrimSpace(string(cmd.text1.data))
}

// execER opens a file for input.
func (ip *Interpreter) execER(cmd *cmdBlock) error {
	name := textName(cmd)
	if name == "" {
		return tecoErr(ErrNOT)
	}
	err := ip.files.OpenInput(name)
	if err == nil {
		ip.lastFile = name
	}
	if cmd.colon {
		ip.pushSuccess(err == nil)
		return nil
	}
	return err
}

// execEW opens a file for output.
func (ip *Interpreter) execEW(cmd *cmdBlock) error {
	name := textName(cmd)
	if name == "" {
		return tecoErr(ErrNOT)
	}
	err := ip.files.OpenOutput(name, false)
	if err == nil {
		ip.lastFile = name
	}
	if cmd.colon {
		ip.pushSuccess(err == nil)
		return nil
	}
	return err
}

// execEB opens a file for editing with backup: input and output on the
// same name.
func (ip *Interpreter) execEB(cmd *cmdBlock) error {
	name := textName(cmd)
	if name == "" {
		return tecoErr(ErrNOT)
	}
	err := ip.files.OpenInput(name)
	if err == nil {
		err = ip.files.OpenOutput(name, true)
	}
	if err == nil {
		ip.lastFile = name
	}
	if cmd.colon {
		ip.pushSuccess(err == nil)
		return nil
	}
	return err
}

// writeWholeBuffer sends the entire edit buffer to the output stream.
func (ip *Interpreter) writeWholeBuffer() error {
	if !ip.files.OutputOpen() {
		return nil
	}
	return ip.files.WritePage(ip.buf.Text(0, ip.buf.Size()), ip.flags.ffSeen != 0)
}

// yank replaces the buffer contents with the next input page. It
// reports whether any text was read.
func (ip *Interpreter) yank() (bool, error) {
	text, ffSeen, eof, err := ip.files.ReadPage()
	if err != nil {
		return false, err
	}
	if ffSeen {
		ip.flags.ffSeen = -1
	} else {
		ip.flags.ffSeen = 0
	}
	ip.buf.SetDot(0)
	if err := ip.buf.Delete(ip.buf.Size()); err != nil {
		return false, err
	}
	if len(text) != 0 {
		if err := ip.buf.Insert(text); err != nil {
			return false, err
		}
		ip.buf.SetDot(0)
	}
	return len(text) != 0 || !eof, nil
}

// execY yanks the next input page into the buffer.
func (ip *Interpreter) execY(cmd *cmdBlock) error {
	ok, err := ip.yank()
	if err != nil {
		return err
	}
	if cmd.colon {
		ip.pushSuccess(ok)
	}
	return nil
}

// execEY is the yank without page protection; the protection itself is
// an ED bit this implementation does not enforce, so it matches Y.
func (ip *Interpreter) execEY(cmd *cmdBlock) error {
	return ip.execY(cmd)
}

// execP writes the buffer to the output and yanks the next page. nP
// repeats; m,nP writes just that range; the W suffix suppresses the
// yank.
func (ip *Interpreter) execP(cmd *cmdBlock) error {
	if cmd.mSet {
		if err := ip.files.WritePage(ip.buf.Text(cmd.mArg, cmd.nArg), false); err != nil {
			return err
		}
		if cmd.colon {
			ip.pushSuccess(true)
		}
		return nil
	}

	n := 1
	if cmd.nSet {
		n = cmd.nArg
	}
	ok := true
	for ; n > 0; n-- {
		if err := ip.writeWholeBuffer(); err != nil {
			return err
		}
		if cmd.wSet {
			continue
		}
		more, err := ip.yank()
		if err != nil {
			return err
		}
		if !more {
			ok = false
			break
		}
	}
	if cmd.colon {
		ip.pushSuccess(ok)
	}
	return nil
}

// execEC moves the buffer and the rest of the input to the output, then
// closes both streams.
func (ip *Interpreter) execEC(cmd *cmdBlock) error {
	if ip.files.OutputOpen() {
		for {
			if err := ip.writeWholeBuffer(); err != nil {
				return err
			}
			more, err := ip.yank()
			if err != nil {
				return err
			}
			if !more {
				break
			}
		}
		if err := ip.files.CloseOutput(); err != nil {
			return err
		}
	}
	ip.files.CloseInput()
	ip.buf.SetDot(0)
	return ip.buf.Delete(ip.buf.Size())
}

// execEF closes the output stream.
func (ip *Interpreter) execEF(cmd *cmdBlock) error {
	return ip.files.CloseOutput()
}

// execEK discards the output stream.
func (ip *Interpreter) execEK(cmd *cmdBlock) error {
	return ip.files.KillOutput()
}

// execEX finishes the output and asks the front end to exit.
func (ip *Interpreter) execEX(cmd *cmdBlock) error {
	if err := ip.execEC(cmd); err != nil {
		return err
	}
	return ErrExitRequested
}

// execEA selects the secondary output stream; execEP the secondary
// input stream.
func (ip *Interpreter) execEA(cmd *cmdBlock) error {
	return ip.files.SelectOutput(1)
}

func (ip *Interpreter) execEP(cmd *cmdBlock) error {
	return ip.files.SelectInput(1)
}

// execEI runs a command file as a macro, searching the library path.
func (ip *Interpreter) execEI(cmd *cmdBlock) error {
	name := textName(cmd)
	if name == "" {
		return nil // EI` is a no-op: a command file runs to completion below, so none stays open
	}
	text, err := ip.files.ReadFile(name)
	if err != nil {
		if cmd.colon {
			ip.pushSuccess(false)
			return nil
		}
		return err
	}
	if cmd.colon {
		ip.pushSuccess(true)
	}
	return ip.ExecuteMacro(text, nil, false)
}

// execEQ reads a file into a Q-register's text.
func (ip *Interpreter) execEQ(cmd *cmdBlock) error {
	text, err := ip.files.ReadFile(textName(cmd))
	if err != nil {
		if cmd.colon {
			ip.pushSuccess(false)
			return nil
		}
		return err
	}
	ip.qr.setText(cmd.qname, cmd.qlocal, text)
	if cmd.colon {
		ip.pushSuccess(true)
	}
	return nil
}

// execEPct writes a Q-register's text to a file.
func (ip *Interpreter) execEPct(cmd *cmdBlock) error {
	err := ip.files.WriteFile(textName(cmd), ip.qr.getText(cmd.qname, cmd.qlocal))
	if cmd.colon {
		ip.pushSuccess(err == nil)
		return nil
	}
	return err
}
