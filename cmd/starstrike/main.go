package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Demilade01/starstrike/internal/catalog"
	"github.com/Demilade01/starstrike/internal/config"
	"github.com/Demilade01/starstrike/internal/field"
	"github.com/Demilade01/starstrike/internal/game"
	"github.com/Demilade01/starstrike/internal/ledger"
	"github.com/Demilade01/starstrike/internal/logging"
	"github.com/Demilade01/starstrike/internal/render"
	"github.com/Demilade01/starstrike/internal/render/screen"
	"github.com/Demilade01/starstrike/internal/telemetry"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
)

const (
	cellWidth    = 16
	cellHeight   = 16
	screenWidth  = render.Cols * cellWidth  // 1280
	screenHeight = render.Rows * cellHeight // 720
	title        = "StarStrike"

	mineReach  = 6.0 // world units
	noticeRows = 7
)

// bindings maps each control to the keys that hold it.
var bindings = [game.ControlCount][]ebiten.Key{
	game.ControlForward:     {ebiten.KeyW, ebiten.KeyUp},
	game.ControlBackward:    {ebiten.KeyS, ebiten.KeyDown},
	game.ControlStrafeLeft:  {ebiten.KeyA},
	game.ControlStrafeRight: {ebiten.KeyD},
	game.ControlRotateLeft:  {ebiten.KeyQ, ebiten.KeyLeft},
	game.ControlRotateRight: {ebiten.KeyE, ebiten.KeyRight},
	game.ControlFire:        {ebiten.KeySpace},
}

var boardKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Game is the Ebitengine game struct. It owns rendering and input.
// All gameplay state lives in session.
type Game struct {
	renderer *screen.GridRenderer
	buffer   *render.CellBuffer
	session  *game.Session
	log      zerolog.Logger

	hub   *telemetry.Hub
	every uint64

	ctx context.Context
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// Held controls
	for c, keys := range bindings {
		down := false
		for _, k := range keys {
			down = down || ebiten.IsKeyPressed(k)
		}
		g.session.SetIntent(game.Control(c), down)
	}

	g.handleCommands()
	g.session.Tick(1 / float64(ebiten.TPS()))

	snap := g.session.Snapshot(noticeRows)
	render.DrawFrame(g.buffer, snap)

	mx, my := ebiten.CursorPosition()
	g.updateHoverInfo(snap, mx, my)

	fps := fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
	g.buffer.WriteString(render.Cols-20, render.Rows-2, fps, render.ColorDarkGray, render.ColorBlack)

	if g.hub != nil && snap.Tick%g.every == 0 {
		if _, err := g.hub.Publish("snapshot", snap); err != nil {
			g.log.Warn().Err(err).Msg("telemetry publish")
		}
	}
	return nil
}

// handleCommands issues one-shot commands. Rejections already surface as
// notices, so errors are not handled here.
func (g *Game) handleCommands() {
	s := g.session

	for i, k := range boardKeys {
		if !inpututil.IsKeyJustPressed(k) {
			continue
		}
		if board := s.Available(); i < len(board) {
			_ = s.StartMission(board[i].ID)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		_ = s.CompleteMission(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		if a, ok := render.Nearest(s.Snapshot(0), mineReach); ok {
			_ = s.Mine(a.ID)
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		cx, cy := g.renderer.CellAt(ebiten.CursorPosition())
		if a, ok := render.ScannerView.AsteroidAt(s.Snapshot(0), cx, cy); ok {
			_ = s.Mine(a.ID)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			if err := s.FullReset(g.ctx); err != nil {
				g.log.Warn().Err(err).Msg("full reset")
			}
		} else {
			s.Reset()
		}
	}
}

// updateHoverInfo describes whatever scanner cell the mouse is over.
func (g *Game) updateHoverInfo(snap game.Snapshot, mx, my int) {
	const infoY = 1
	cx, cy := g.renderer.CellAt(mx, my)

	a, ok := render.ScannerView.AsteroidAt(snap, cx, cy)
	if !ok {
		return
	}
	desc := fmt.Sprintf("%s  %s  %.1fu away", a.ID, a.Kind, a.Position.Dist(snap.Ship.Position))
	switch {
	case a.Mined:
		desc += "  [mined]"
	case a.Mining:
		desc += fmt.Sprintf("  [drilling %d%%]", a.Progress)
	}
	g.buffer.WriteString(2, infoY, desc, render.ColorYellow, render.ColorBlack)
}

func (g *Game) Draw(scr *ebiten.Image) {
	g.renderer.Draw(scr, g.buffer)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	boot := logging.New("info", os.Stderr, nil)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		boot.Fatal().Err(err).Msg("Failed to load config")
	}

	var logFile io.Writer
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			boot.Fatal().Err(err).Str("path", cfg.LogFile).Msg("Failed to create/open log file")
		}
		defer f.Close()
		logFile = f
	}
	log := logging.New(cfg.LogLevel, os.Stderr, logFile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, offline, err := newSession(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up session")
	}
	defer session.Close()

	if err := session.Begin(ctx, cfg.PlayerID); err != nil {
		log.Warn().Err(err).Msg("Starting with local state")
	}

	g := &Game{
		renderer: screen.NewGridRenderer(screen.NewFontAtlas(), cellWidth, cellHeight),
		buffer:   render.NewCellBuffer(render.Cols, render.Rows),
		session:  session,
		log:      log,
		ctx:      ctx,
	}

	if cfg.Telemetry.Addr != "" {
		g.hub = telemetry.NewHub(log.With().Str("component", "telemetry").Logger())
		g.every = uint64(cfg.Telemetry.EveryTicks)
		go g.hub.Run(ctx)

		mux := http.NewServeMux()
		mux.Handle("/", telemetry.Handler(g.hub))
		if offline != nil {
			// The offline ledger API shares the telemetry listener.
			mux.Handle("/api/", ledger.Handler(offline, cfg.Ledger.Key))
		}
		srv := &http.Server{Addr: cfg.Telemetry.Addr, Handler: mux}
		go func() {
			log.Info().Str("addr", cfg.Telemetry.Addr).Msg("Telemetry listening")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Telemetry server")
			}
		}()
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer scancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("Game loop")
	}
	log.Info().Msg("Shutting down")
}

// newSession wires the configured collaborators into a session. The offline
// ledger is returned when no ledger URL is configured.
func newSession(cfg config.Config, log zerolog.Logger) (*game.Session, *ledger.Offline, error) {
	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return nil, nil, err
	}

	var cat *catalog.YAML
	if cfg.MissionsFile == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Load(cfg.MissionsFile)
	}
	if err != nil {
		return nil, nil, err
	}

	var (
		ldg     game.Ledger
		offline *ledger.Offline
	)
	if cfg.Ledger.URL == "" {
		offline = ledger.NewOffline([]byte(cfg.Ledger.Key), log.With().Str("component", "ledger").Logger())
		ldg = offline
	} else {
		ldg = ledger.New(cfg.Ledger.URL, cfg.Ledger.Key, cfg.Ledger.Timeout)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fieldSrc, err := field.Source(cfg.FieldFile, seed)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Int64("seed", seed).Str("field", cfg.FieldFile).Msg("Asteroid field ready")

	session, err := game.NewSession(
		game.WithTuning(tuning),
		game.WithLogger(log.With().Str("component", "session").Logger()),
		game.WithCatalog(cat),
		game.WithLedger(ldg),
		game.WithField(fieldSrc),
		game.WithSubmitTimeout(cfg.Ledger.Timeout),
		game.WithPlayer(game.NewPlayer(cfg.PlayerID)),
	)
	return session, offline, err
}
