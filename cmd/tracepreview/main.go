package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/terrain-tracer/geom"
	"github.com/lixenwraith/terrain-tracer/params"
	"github.com/lixenwraith/terrain-tracer/pathgraph"
	"github.com/lixenwraith/terrain-tracer/tracer"
)

const (
	logDir      = "logs"
	logFileName = "tracepreview.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging configures log output based on the debug flag; logging is
// discarded entirely unless -debug is given.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to create log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("tracepreview-%s.log", time.Now().Format("2006-01-02-15-04-05")))
		os.Rename(logPath, rotated)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Printf("=== tracepreview started ===")
	return f
}

// buildDemoPath assembles a small forked path graph (a trunk splitting into
// two branches) to give the tracer a split to demonstrate.
func buildDemoPath(mapW, mapH int) *pathgraph.Path {
	path := pathgraph.New()

	trunk := path.NewSegment()
	trunk.Length = float64(mapW) * 0.35
	trunk.RelPosition = geom.Vec2{X: 2, Z: float64(mapH) / 2}
	trunk.RelAngle = 0
	trunk.RelWidth = 4

	left := path.AttachNew(trunk)
	left.Length = float64(mapW) * 0.3
	left.RelShift = -3
	left.RelWidth = 2

	right := path.AttachNew(trunk)
	right.Length = float64(mapW) * 0.3
	right.RelShift = 3
	right.RelWidth = 2

	return path
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging to file")
	width := flag.Int("width", 80, "map inner width (cells)")
	height := flag.Int("height", 30, "map inner height (cells)")
	attempts := flag.Int("attempts", 8, "max collision-repair attempts")
	flag.Parse()

	logFile := setupLogging(*debug)
	if logFile != nil {
		defer logFile.Close()
	}

	path := buildDemoPath(*width, *height)
	cfg := params.DefaultConfig()
	tr := tracer.New(*width, *height, 5, 2, 5, cfg)

	converged := tr.Trace(path, *attempts)
	log.Printf("trace converged=%v after up to %d attempts", converged, *attempts)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	render(screen, tr, *width, *height, converged)

	eventChan := make(chan tcell.Event, 8)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()
	for ev := range eventChan {
		switch e := ev.(type) {
		case *tcell.EventKey:
			if e.Key() == tcell.KeyEscape || e.Rune() == 'q' {
				return
			}
		case *tcell.EventResize:
			screen.Sync()
			render(screen, tr, *width, *height, converged)
		}
	}
}

// widthRamp maps a rendered main-channel width to a color, from unvisited
// (dark) through a mid-width hue to a bright color at the widest cells.
var widthRamp = func() [3]colorful.Color {
	dark, _ := colorful.Hex("#102030")
	mid, _ := colorful.Hex("#2080c0")
	bright, _ := colorful.Hex("#f0e040")
	return [3]colorful.Color{dark, mid, bright}
}()

func colorFor(main, maxWidth float64) tcell.Color {
	if main <= 0 {
		r, g, b := widthRamp[0].RGB255()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	t := main / maxWidth
	if t > 1 {
		t = 1
	}
	var c colorful.Color
	if t < 0.5 {
		c = widthRamp[0].BlendLuv(widthRamp[1], t*2)
	} else {
		c = widthRamp[1].BlendLuv(widthRamp[2], (t-0.5)*2)
	}
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func render(screen tcell.Screen, tr *tracer.Tracer, mapW, mapH int, converged bool) {
	screen.Clear()
	view := tr.Grids.MainView()
	for z := 0; z < mapH; z++ {
		for x := 0; x < mapW; x++ {
			v, ok := view.At(x, z)
			if !ok {
				continue
			}
			style := tcell.StyleDefault.Background(colorFor(v, 6))
			screen.SetContent(x, z, ' ', nil, style)
		}
	}
	status := fmt.Sprintf(" converged=%v  (q to quit) ", converged)
	for i, r := range status {
		screen.SetContent(i, mapH, r, nil, tcell.StyleDefault)
	}
	screen.Show()
}
