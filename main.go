package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/game"
	"github.com/iburimskiy/particle-sphere/internal/palette"
	"github.com/iburimskiy/particle-sphere/internal/sketch"
)

var background = color.RGBA{A: 255}

type app struct {
	session *sketch.Session
	camera  *game.Camera
	raster  *game.Raster
	track   *game.Track // nil when running without audio
	points  []sketch.Point

	pointSize int
	stroke    color.RGBA

	// asset loading
	loadDone chan error
	loading  bool
	lastErr  error

	// input edge detection
	prevKey map[ebiten.Key]bool
}

func newApp(o config.Options, track *game.Track) *app {
	// A nil *Track must not become a non-nil interface.
	var source sketch.Source
	if track != nil {
		source = track
	}

	pointSize := 1
	if o.ParticleCount <= 20000 {
		pointSize = 2
	}
	return &app{
		session:   sketch.NewSession(o, source, nil),
		camera:    game.NewCamera(o.Camera),
		raster:    game.NewRaster(config.WindowWidth, config.WindowHeight),
		track:     track,
		pointSize: pointSize,
		stroke:    palette.White.RGBA(),
		loadDone:  make(chan error, 1),
		prevKey:   map[ebiten.Key]bool{},
	}
}

// load decodes the track in the background; the sketch stays calm until it
// is ready.
func (a *app) load(ctx context.Context) {
	if a.track == nil {
		return
	}
	a.loading = true
	go func() {
		a.loadDone <- a.track.Load(ctx)
	}()
}

func (a *app) Update() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !a.prevKey[k]
		a.prevKey[k] = pressed
		return jp
	}

	select {
	case err := <-a.loadDone:
		a.loading = false
		if err != nil {
			a.lastErr = err
			logrus.WithFields(logrus.Fields{
				"function": "app.Update",
				"path":     a.track.Path(),
				"error":    err.Error(),
			}).Error("Audio track failed to load")
		}
	default:
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || justPressed(ebiten.KeySpace) {
		a.session.OnActivate()
	}
	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	a.points = a.session.AdvanceFrame(1)
	a.camera.Update(1, a.session.Features().BassPeak)
	return nil
}

func (a *app) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	a.raster.Resize(w, h)
	a.raster.Clear(background)

	for _, p := range a.points {
		x, y, ok := a.camera.Project(p.Pos, w, h)
		if !ok {
			continue
		}
		c := a.stroke
		if p.Color != nil {
			c = p.Color.RGBA()
		}
		a.raster.Plot(x, y, a.pointSize, c)
	}
	screen.WritePixels(a.raster.Pix)

	ebitenutil.DebugPrintAt(screen, a.status(), 12, 12)
}

func (a *app) status() string {
	o := a.session.Options()
	head := fmt.Sprintf("%s | %d particles | %s", o.Name, len(a.session.Particles()), a.session.Color().Colorful().Hex())

	var status string
	switch {
	case a.track == nil:
		status = "No audio - Esc/Q to quit"
	case a.loading:
		status = "Loading " + filepath.Base(a.track.Path()) + "..."
	case !a.track.Ready():
		status = "Audio unavailable"
	case a.session.Activator().Pending():
		status = "Starting audio..."
	case a.track.Playing():
		status = fmt.Sprintf("Playing %s / %s - click or Space to pause",
			game.FormatDuration(a.track.Position()), game.FormatDuration(a.track.Duration()))
	default:
		status = "Paused - click or Space to play"
	}
	if a.lastErr != nil {
		status += " | Error: " + a.lastErr.Error()
	}
	return head + "\n" + status
}

func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.session.OnResize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (a *app) close() {
	a.session.Close()
	if a.track != nil {
		a.track.Close()
	}
}

func pickAudioFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}

func main() {
	var (
		preset    = flag.String("preset", "pulse", "sketch preset")
		audioPath = flag.String("audio", "", "audio file (wav, mp3, flac); a file dialog opens when empty")
		particles = flag.Int("particles", -1, "override the preset particle count")
		seed      = flag.Uint64("seed", 0, "override the preset seed")
		workers   = flag.Int("workers", 0, "deformation workers (0 = GOMAXPROCS)")
		logLevel  = flag.String("log-level", "info", "log level")
		silent    = flag.Bool("silent", false, "run without audio")
	)
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logrus.SetLevel(level)

	o, err := config.Preset(*preset)
	if err != nil {
		logrus.WithError(err).Error("Bad preset")
		os.Exit(2)
	}
	if *particles >= 0 {
		o.ParticleCount = *particles
	}
	if *seed != 0 {
		o.Seed = *seed
	}
	o.Workers = *workers

	o.AudioPath = *audioPath
	if o.AudioPath == "" && !*silent {
		o.AudioPath, err = pickAudioFile()
		if err != nil {
			logrus.WithError(err).Warn("File dialog failed, running without audio")
		}
	}

	var track *game.Track
	if o.AudioPath != "" {
		track = game.NewTrack(o.AudioPath)
	}

	a := newApp(o, track)
	defer a.close()
	if err := a.session.Initialize(); err != nil {
		logrus.WithError(err).Error("Sketch failed to initialize")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.load(ctx)

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Particle Sphere - " + o.Name + " - Click/Space: Play/Pause, Esc/Q: Quit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TPS)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		logrus.WithError(err).Error("Game loop failed")
	}
}
