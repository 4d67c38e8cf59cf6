package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/wedit/commands"
	"github.com/odvcencio/wedit/editor"
)

// app is the terminal front end: one screen, one session, and a
// single-threaded loop of event, command, redraw.
type app struct {
	screen tcell.Screen
	sess   *editor.Session
	log    *log.Logger

	view   *textView
	status *statusBar
	prompt *prompt

	lastQuery string
	quitArmed bool
	done      bool
	// failed is a fatal error raised inside a prompt callback.
	failed error

	pasting bool
	paste   strings.Builder
}

func newApp(screen tcell.Screen, sess *editor.Session, logger *log.Logger) *app {
	return &app{
		screen: screen,
		sess:   sess,
		log:    logger,
		view:   newTextView(),
		status: newStatusBar(),
	}
}

// textHeight is the number of rows available to the file; the last row is
// the status line.
func textHeight(screenHeight int) int {
	return max(screenHeight-1, 1)
}

// run draws and processes events until the user quits, ctx is cancelled or
// a fatal error occurs.
func (a *app) run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	w, h := a.screen.Size()
	if err := a.sess.Resize(textHeight(h), w); err != nil {
		return err
	}
	for !a.done {
		a.draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := a.handleEvent(ev); err != nil {
			return err
		}
	}
	return a.failed
}

func (a *app) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		a.done = true
	case *tcell.EventResize:
		a.screen.Sync()
		w, h := ev.Size()
		return a.check(a.sess.Resize(textHeight(h), w))
	case *tcell.EventPaste:
		if ev.Start() {
			a.pasting = true
			a.paste.Reset()
			return nil
		}
		a.pasting = false
		return a.check(a.sess.InsertText(a.paste.String()))
	case *tcell.EventKey:
		if a.pasting {
			a.collectPaste(ev)
			return nil
		}
		return a.handleKey(ev)
	}
	return nil
}

func (a *app) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		a.paste.WriteRune(ev.Rune())
	case tcell.KeyEnter:
		a.paste.WriteByte('\n')
	case tcell.KeyTab:
		a.paste.WriteByte('\t')
	}
}

func (a *app) handleKey(ev *tcell.EventKey) error {
	if a.prompt != nil {
		p := a.prompt
		if p.HandleKey(ev) && a.prompt == p {
			a.prompt = nil
		}
		return nil
	}
	cmd, r, ok := commands.Lookup(ev)
	if !ok {
		return nil
	}
	if cmd != commands.Quit {
		a.quitArmed = false
	}
	a.status.SetMessage("")
	return a.runCommand(cmd, r)
}

func (a *app) runCommand(cmd commands.Command, r rune) error {
	switch cmd {
	case commands.Quit:
		if a.sess.Dirty() && !a.quitArmed {
			a.quitArmed = true
			a.status.SetMessage("Unsaved changes. Press Ctrl+Q again to quit.")
			return nil
		}
		a.done = true
		return nil
	case commands.Find:
		a.openFind()
		return nil
	case commands.FindNext, commands.FindPrev:
		if a.lastQuery == "" {
			a.openFind()
			return nil
		}
		return a.find(a.lastQuery, cmd == commands.FindNext)
	case commands.GotoLine:
		a.openGotoLine()
		return nil
	case commands.Save:
		if err := a.check(a.sess.Save()); err != nil {
			return err
		}
		if a.status.message == "" {
			a.status.SetMessage("Saved %s", a.sess.Title())
		}
		return nil
	case commands.MatchBracket:
		found, err := a.sess.MatchBracket()
		if err := a.check(err); err != nil {
			return err
		}
		if !found {
			a.status.SetMessage("No matching bracket")
		}
		return nil
	}
	return a.check(commands.Run(a.sess, cmd, r))
}

func (a *app) openFind() {
	p := newFindPrompt(a.lastQuery)
	p.onSubmit = func(query string) {
		if query == "" {
			return
		}
		a.lastQuery = query
		if err := a.find(query, true); err != nil {
			a.fatal(err)
		}
	}
	a.prompt = p
}

func (a *app) find(query string, forward bool) error {
	found, err := a.sess.Find(query, forward)
	if err := a.check(err); err != nil {
		return err
	}
	if !found {
		a.status.SetMessage("Not found: %s", query)
	}
	return nil
}

func (a *app) openGotoLine() {
	p := newGotoLinePrompt()
	p.onSubmit = func(query string) {
		n, err := strconv.Atoi(strings.TrimSpace(query))
		if err != nil || n < 1 {
			a.status.SetMessage("Invalid line number")
			return
		}
		if err := a.check(a.sess.GotoLine(n)); err != nil {
			a.fatal(err)
		}
	}
	a.prompt = p
}

func (a *app) fatal(err error) {
	a.log.Printf("fatal: %v", err)
	a.done = true
	a.failed = err
}

// check decides how an editing error is surfaced. I/O failures end the
// session; anything else is reported on the status line.
func (a *app) check(err error) error {
	if err == nil {
		return nil
	}
	if editor.IsIO(err) {
		return err
	}
	if errors.Is(err, commands.ErrFrontEnd) {
		a.log.Printf("unhandled front-end command: %v", err)
		return nil
	}
	a.log.Printf("command error: %v", err)
	a.status.SetMessage("%v", err)
	return nil
}

func (a *app) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	th := textHeight(h)
	x, y := a.view.Render(a.screen, a.sess, w, th)
	if a.prompt != nil {
		px := a.prompt.Render(a.screen, th, w)
		a.screen.ShowCursor(px, th)
	} else {
		a.status.Render(a.screen, th, w, a.sess)
		a.screen.ShowCursor(x, y)
	}
	a.screen.Show()
}

// runEditor opens path and drives the editor on screen until it exits.
func runEditor(ctx context.Context, screen tcell.Screen, path string, opts editor.Options, logger *log.Logger) error {
	sess, err := editor.Open(path, opts)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer sess.Close()

	return newApp(screen, sess, logger).run(ctx)
}
