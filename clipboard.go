package main

import (
	"io"
	"log"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"

	"github.com/odvcencio/wedit/config"
	"github.com/odvcencio/wedit/editor"
)

// terminalClipboard keeps an in-process copy of the last cut or copy and
// mirrors it to the system clipboard or, failing that, to the terminal via
// OSC 52. Reads prefer the system clipboard when one is available.
type terminalClipboard struct {
	system bool
	out    io.Writer
	local  editor.Register
	log    *log.Logger
}

// newClipboard returns the clipboard for the configured mode. out receives
// OSC 52 sequences and is normally the controlling terminal.
func newClipboard(mode string, out io.Writer, logger *log.Logger) editor.Clipboard {
	switch mode {
	case config.ClipboardInternal:
		return &editor.Register{}
	case config.ClipboardOSC52:
		return &terminalClipboard{out: out, log: logger}
	}
	if clipboard.Unsupported {
		logger.Printf("no system clipboard, using OSC 52")
	}
	return &terminalClipboard{system: !clipboard.Unsupported, out: out, log: logger}
}

func (c *terminalClipboard) ReadAll() (string, error) {
	if c.system {
		text, err := clipboard.ReadAll()
		if err == nil {
			return text, nil
		}
		c.log.Printf("clipboard read: %v", err)
	}
	return c.local.ReadAll()
}

func (c *terminalClipboard) WriteAll(text string) error {
	if err := c.local.WriteAll(text); err != nil {
		return err
	}
	if c.system {
		err := clipboard.WriteAll(text)
		if err == nil {
			return nil
		}
		c.log.Printf("clipboard write: %v, falling back to OSC 52", err)
	}
	return c.writeOSC52(text)
}

func (c *terminalClipboard) writeOSC52(text string) error {
	if c.out == nil {
		return nil
	}
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case os.Getenv("STY") != "":
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(c.out); err != nil {
		c.log.Printf("osc52 write: %v", err)
	}
	return nil
}
