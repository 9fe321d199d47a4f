package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/esimov/particle-field/config"
	"github.com/esimov/particle-field/desktop"
	"github.com/esimov/particle-field/loop"
	"github.com/esimov/particle-field/terminal"
	"github.com/esimov/particle-field/websocket"
	"github.com/guptarohit/asciigraph"
)

var (
	mode    = flag.String("mode", "terminal", "Output surface: terminal, serve, desktop or bench")
	preset  = flag.String("preset", "constellation", "Tunables preset: "+strings.Join(config.Presets(), ", "))
	cfgFile = flag.String("config", "", "JSON file overriding the preset, reloaded on change")
	addr    = flag.String("addr", websocket.DefaultParams().Address, "Listen address of the frame server")
	root    = flag.String("root", websocket.DefaultParams().Root, "Directory with the browser client")
	frames  = flag.Int("frames", 300, "Number of frames stepped in bench mode")
	logFile = flag.String("log", "debug.log", "Log file used while the terminal is taken over")
	width   = flag.Int("width", 1280, "Viewport width in bench mode")
	height  = flag.Int("height", 720, "Viewport height in bench mode")
)

func main() {
	flag.Parse()

	tun, err := config.Preset(*preset)
	if err != nil {
		log.Fatalln(err)
	}
	if *cfgFile != "" {
		if tun, err = config.Load(*cfgFile, tun); err != nil {
			log.Fatalln(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch *mode {
	case "terminal":
		err = runTerminal(ctx, tun)
	case "serve":
		err = runServer(ctx, tun)
	case "desktop":
		err = desktop.Run(loop.NewDriver(tun), "particle field", tun.FPS)
	case "bench":
		err = runBench(ctx, tun)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalln(err)
	}
}

func runTerminal(ctx context.Context, tun config.Tunables) error {
	term, err := terminal.New(*logFile)
	if err != nil {
		return err
	}
	d := loop.NewDriver(tun)
	sched := loop.NewTicker(tun.FPS)

	if *cfgFile != "" {
		w, err := config.NewWatcher(*cfgFile, tun)
		if err != nil {
			return err
		}
		go w.Run(ctx, func(t config.Tunables) {
			sched.Post(func() { d.Apply(t) })
		})
	}
	return term.Render(ctx, d, sched)
}

func runServer(ctx context.Context, tun config.Tunables) error {
	p := websocket.DefaultParams()
	p.Address, p.Root = *addr, *root

	s, err := websocket.NewServer(p, tun)
	if err != nil {
		return err
	}
	log.Printf("serving on http://%s%s", p.Address, p.Prefix)
	return s.ListenAndServe(ctx)
}

// runBench steps the field without a surface and plots the frame times.
func runBench(ctx context.Context, tun config.Tunables) error {
	d := loop.NewDriver(tun)
	times, edges, err := bench(ctx, d, *width, *height, *frames)
	if err != nil {
		return err
	}
	fmt.Println(asciigraph.Plot(times,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s: %d particles, %d edges, frame time (ms)",
			tun.Name, d.Field().Len(), edges)),
	))
	return nil
}

// bench runs n frames of d on a w×h viewport. It returns the time of each
// frame in milliseconds and the edge count of the last one.
func bench(ctx context.Context, d *loop.Driver, w, h, n int) ([]float64, int, error) {
	if w <= 0 || h <= 0 {
		return nil, 0, fmt.Errorf("bench viewport %dx%d: size must be positive", w, h)
	}
	if n <= 0 {
		return nil, 0, fmt.Errorf("bench frames %d: must be positive", n)
	}
	d.Resize(w, h)

	var (
		times = make([]float64, 0, n)
		edges int
	)
	err := (&loop.Manual{Frames: n}).Run(ctx, func() {
		start := time.Now()
		f := d.Step()
		times = append(times, float64(time.Since(start).Microseconds())/1000)
		if f != nil {
			edges = len(f.Lines)
		}
	})
	return times, edges, err
}
