package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rmay/teco/pkg/console"
	"github.com/rmay/teco/pkg/display"
	"github.com/rmay/teco/pkg/files"
	"github.com/rmay/teco/pkg/teco"
	"github.com/rmay/teco/pkg/textbuf"
)

var (
	traceFlag   = flag.Bool("trace", false, "show command execution trace")
	displayFlag = flag.Bool("display", false, "open the display-mode window")
	pasteFlag   = flag.Bool("paste", false, "execute a command string from the clipboard first")
	noinitFlag  = flag.Bool("noinit", false, "skip the TECO_INIT startup macro")
)

func main() {
	flag.Parse()

	buf := textbuf.New()
	con := console.New()
	fs := files.New()

	ip := teco.New(buf, con, *traceFlag)
	ip.SetFiles(fs)

	var win *display.Window
	if *displayFlag {
		win = display.New()
		ip.SetDisplay(win)
	}

	// SIGINT aborts the running command string; SIGWINCH refreshes the
	// window-size record.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGWINCH)
	go func() {
		for sig := range sigs {
			if sig == syscall.SIGWINCH {
				con.UpdateSize()
			} else {
				ip.Interrupt()
			}
		}
	}()

	if !*noinitFlag {
		runInit(ip, fs)
	}

	// Edit the named file, or the one the memory file remembers.
	name := flag.Arg(0)
	if name == "" {
		name = files.Recall()
	}
	if name != "" {
		if err := ip.Execute(editCommand(name)); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	if *pasteFlag {
		if text, err := console.ReadClipboard(); err == nil {
			report(ip.Execute([]byte(text)))
		} else {
			fmt.Fprintf(os.Stderr, "clipboard: %v\n", err)
		}
	}

	if win != nil {
		go promptLoop(ip, con)
		if err := win.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}
	promptLoop(ip, con)
}

// runInit executes the TECO_INIT startup macro, if one is configured.
func runInit(ip *teco.Interpreter, fs *files.Streams) {
	name := os.Getenv("TECO_INIT")
	if name == "" {
		return
	}
	text, err := fs.ReadFile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "TECO_INIT: %v\n", err)
		return
	}
	report(ip.Execute(text))
}

// editCommand builds the EB command that opens name for editing.
func editCommand(name string) []byte {
	cmd := append([]byte("EB"), name...)
	return append(cmd, 0x1B, 'Y', 0x1B)
}

func promptLoop(ip *teco.Interpreter, con *console.Console) {
	for {
		cmd, err := con.ReadCommand("\r\n*", ip.EscapeSurrogate())
		switch {
		case errors.Is(err, console.ErrInterrupted):
			continue
		case errors.Is(err, io.EOF):
			files.Remember(ip.LastFilespec())
			return
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
			return
		}

		if done := immediate(ip, con, cmd); done {
			continue
		}

		err = ip.Execute(cmd)
		if errors.Is(err, teco.ErrExitRequested) {
			files.Remember(ip.LastFilespec())
			return
		}
		report(err)
	}
}

// immediate handles the prompt-level actions that are not commands:
// ? retypes the command that failed, *q saves the last command string
// in a Q-register.
func immediate(ip *teco.Interpreter, con *console.Console, cmd []byte) bool {
	switch {
	case len(cmd) == 1 && cmd[0] == '?':
		if ip.LastError() != nil {
			con.Type(ip.LastCommand())
			con.Type([]byte("\r\n"))
		}
		return true
	case len(cmd) == 2 && cmd[0] == '*':
		if err := ip.SaveLastCommand(cmd[1]); err != nil {
			report(err)
		}
		return true
	}
	return false
}

func report(err error) {
	if err == nil || errors.Is(err, teco.ErrExitRequested) {
		return
	}
	fmt.Fprintf(os.Stderr, "%v\r\n", err)
}
