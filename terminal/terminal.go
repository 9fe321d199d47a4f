package terminal

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/esimov/particle-field/loop"
	"github.com/esimov/particle-field/render"
	"github.com/nsf/termbox-go"
)

// Terminal draws frames as braille dots. Every cell is two dots wide and
// four dots tall, so the field runs on a viewport of 2w×4h dots.
type Terminal struct {
	backbuf  []termbox.Cell
	bbw, bbh int
	canvas   canvas
	logfile  *os.File
	fn       string
}

// New returns a terminal logging to the file fn, since the screen itself
// is owned by termbox.
func New(fn string) (*Terminal, error) {
	t := new(Terminal)
	t.fn = fn

	var err error
	t.logfile, err = os.OpenFile(t.fn, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Render takes over the terminal and runs the driver on the scheduler until
// ctx is done or the user quits with Esc, q or Ctrl-C.
func (t *Terminal) Render(ctx context.Context, d *loop.Driver, sched *loop.Ticker) error {
	defer t.logfile.Close()
	log.SetOutput(t.logfile)
	defer log.SetOutput(os.Stderr)

	if err := termbox.Init(); err != nil {
		return err
	}
	defer termbox.Close()
	termbox.SetInputMode(termbox.InputEsc | termbox.InputMouse)
	termbox.SetOutputMode(termbox.Output256)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.reallocBackBuffer(termbox.Size())
	d.Resize(t.bbw*dotsX, t.bbh*dotsY)

	go t.poll(ctx, cancel, d, sched)

	err := sched.Run(ctx, func() {
		if f := d.Step(); f != nil {
			if err := t.Draw(f); err != nil {
				log.Println(err)
			}
		}
	})
	termbox.Interrupt()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// poll forwards termbox events to the scheduler goroutine.
func (t *Terminal) poll(ctx context.Context, cancel context.CancelFunc, d *loop.Driver, sched *loop.Ticker) {
	for {
		ev := termbox.PollEvent()
		if ctx.Err() != nil {
			return
		}
		switch ev.Type {
		case termbox.EventKey:
			switch {
			case ev.Key == termbox.KeyEsc, ev.Key == termbox.KeyCtrlC, ev.Ch == 'q':
				cancel()
				return
			case ev.Ch == 't':
				sched.Post(func() { d.SetTheme(d.Theme().Toggle()) })
			}
		case termbox.EventMouse:
			if ev.Key == termbox.MouseRelease {
				sched.Post(d.PointerLeave)
				continue
			}
			x, y := cellCenter(ev.MouseX, ev.MouseY)
			sched.Post(func() { d.PointerMove(x, y) })
		case termbox.EventResize:
			w, h := ev.Width, ev.Height
			sched.Post(func() {
				t.reallocBackBuffer(w, h)
				d.Resize(w*dotsX, h*dotsY)
			})
		case termbox.EventError:
			log.Printf("terminal: %v", ev.Err)
			cancel()
			return
		case termbox.EventInterrupt:
			return
		}
	}
}

func (t *Terminal) reallocBackBuffer(w, h int) {
	t.bbw, t.bbh = w, h
	t.backbuf = make([]termbox.Cell, w*h)
	t.canvas.resize(w, h)
}

// Draw renders f into the back buffer and flushes it to the screen.
func (t *Terminal) Draw(f *render.Frame) error {
	t.paint(f)
	// Clear resyncs the termbox buffer with the terminal size.
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	w, h := termbox.Size()
	blit(termbox.CellBuffer(), w, h, t.backbuf, t.bbw, t.bbh)
	return termbox.Flush()
}

// blit copies the overlapping area of src into dst row by row, so buffers
// of different sizes keep their rows aligned.
func blit(dst []termbox.Cell, dw, dh int, src []termbox.Cell, sw, sh int) {
	w, h := min(dw, sw), min(dh, sh)
	for y := 0; y < h; y++ {
		copy(dst[y*dw:y*dw+w], src[y*sw:y*sw+w])
	}
}

// paint rasterizes f into the back buffer.
func (t *Terminal) paint(f *render.Frame) {
	c := &t.canvas
	c.clear()

	for _, l := range f.Lines {
		c.line(l.X0, l.Y0, l.X1, l.Y1, f.EdgeColor, l.Alpha)
	}
	for _, p := range f.Screen {
		c.disc(p.X, p.Y, p.Size/2, f.Style.Point, f.PointAlpha)
	}
	if cur := f.Cursor; cur.Visible {
		c.ring(cur.X, cur.Y, cur.Radius, f.Style.Cursor, f.Style.CursorAlpha)
	}
	c.cells(f.Style.Background, t.backbuf)
}

// cellCenter returns the dot at the middle of a terminal cell.
func cellCenter(cx, cy int) (float64, float64) {
	return float64(cx*dotsX + dotsX/2), float64(cy*dotsY + dotsY/2)
}
