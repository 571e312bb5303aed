package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"reflect"
	"sync"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"

	"spatial3d/internal/assets"
	"spatial3d/internal/camera"
	"spatial3d/internal/world"
)

var (
	// The worldsim version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "worldsim_info",
		Help:        "Worldsim information.",
		ConstLabels: prometheus.Labels{"version": version},
	})

	visibleEntities = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "worldsim_visible_entities",
		Help: "Entities seen by the observer in the last report.",
	})
)

// Keeps the cli package from seeing obfuscated option names.
var _ = reflect.TypeOf(config{})

type config struct {
	Level          string        `cli:""        env:"WORLDSIM_LEVEL"           help:"Level file to load. A generated arena is used when empty."`
	Materials      string        `cli:""        env:"WORLDSIM_MATERIALS"       help:"Directory of material definitions loaded before the level."`
	Ticks          int           `cli:""        env:"WORLDSIM_TICKS"           help:"Number of simulation ticks. Zero runs until interrupted."`
	Tick           time.Duration `cli:""        env:"WORLDSIM_TICK"            help:"Simulated time per tick."`
	Realtime       bool          `cli:""        env:"WORLDSIM_REALTIME"        help:"Pace ticks with the wall clock."`
	Depth          int           `cli:""        env:"WORLDSIM_DEPTH"           help:"Depth of the spatial tree."`
	ReportInterval int           `cli:",hidden" env:"WORLDSIM_REPORT_INTERVAL" help:"Ticks between observer reports."`
	Crates         int           `cli:",hidden" env:"WORLDSIM_CRATES"          help:"Number of crates in the generated arena."`
	MetricsAddr    string        `cli:""        env:"WORLDSIM_METRICS_ADDR"    help:"Listening address for metrics. Disabled when empty."`
	LogLevel       string        `cli:""        env:"WORLDSIM_LOG_LEVEL"       help:"Log level (debug|info|warning|error)."`
	LogIndent      bool          `cli:""        env:"WORLDSIM_LOG_INDENT"      help:"Indent logs."`
	Version        bool          `cli:""        env:"-"                        help:"Show version."`
	Help           bool          `cli:""        env:"-"                        help:"Show help."`
}

func main() {
	conf := config{
		Ticks:          600,
		Tick:           time.Second / 60,
		Depth:          world.DefaultConfig().MaxDepth,
		ReportInterval: 60,
		Crates:         world.DefaultArenaOptions().Crates,
		LogLevel:       logs.InfoLevel.String(),
	}

	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Runs entities through a level and reports what an observer sees.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}
	errors.Encoder = json.Marshal

	w, err := loadWorld(conf)
	if err != nil {
		logs.Fatal(err)
	}
	defer w.Unload()

	var wg sync.WaitGroup
	if conf.MetricsAddr != "" {
		var admin http.ServeMux
		admin.Handle("/metrics", promhttp.Handler())

		wg.Add(1)
		go func() {
			defer wg.Done()
			listenAndServe(ctx, &http.Server{
				Addr:    conf.MetricsAddr,
				Handler: metrics.HTTPHandler(&admin, metricsPath),
			})
		}()
	}

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("level", w.Name).
		WithTag("leaves", len(w.Tree.Leaves())).
		WithTag("entities", len(w.Scene.Entities)).
		Info("starting simulation")

	simulate(ctx, w, conf)
	cancel()
	wg.Wait()
}

func loadWorld(conf config) (*world.World, error) {
	lib := assets.NewLibrary()
	if conf.Materials != "" {
		if err := lib.LoadMaterials(conf.Materials); err != nil {
			return nil, errors.New("loading materials failed").Wrap(err)
		}
	}

	var level *world.Level
	if conf.Level != "" {
		var err error
		if level, err = world.LoadLevel(conf.Level, lib); err != nil {
			return nil, err
		}
	} else {
		opts := world.DefaultArenaOptions()
		opts.Crates = conf.Crates
		level = world.GenerateArena(lib, opts)
	}

	cfg := world.DefaultConfig()
	cfg.MaxDepth = conf.Depth
	return world.NewFromLevel(level, cfg)
}

func simulate(ctx context.Context, w *world.World, conf config) {
	dt := float32(conf.Tick.Seconds())
	observer := observerCamera(w)

	var ticker *time.Ticker
	if conf.Realtime {
		ticker = time.NewTicker(conf.Tick)
		defer ticker.Stop()
	}

	start := time.Now()
	for conf.Ticks == 0 || int(w.Ticks()) < conf.Ticks {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		} else if ctx.Err() != nil {
			break
		}

		moved := w.Update(dt)
		observer.Update(dt)
		if conf.ReportInterval > 0 && int(w.Ticks())%conf.ReportInterval == 0 {
			report(w, observer.GetRaylibCamera(), moved)
		}
	}

	grounded := 0
	for _, e := range w.Scene.Entities {
		if e.Grounded() {
			grounded++
		}
	}
	logs.WithTag("ticks", w.Ticks()).
		WithTag("simulated", time.Duration(w.Ticks())*conf.Tick).
		WithTag("elapsed", time.Since(start)).
		WithTag("entities", len(w.Scene.Entities)).
		WithTag("grounded", grounded).
		Info("simulation finished")
}

// observerCamera circles the middle of the level just inside its bounds.
func observerCamera(w *world.World) *camera.OrbitCamera {
	b := w.Tree.Bounds()
	size := rl.Vector3Subtract(b.Max, b.Min)
	return camera.New(b.Center(), 0.45*min(size.X, size.Z), 0.4*size.Y)
}

func report(w *world.World, view rl.Camera3D, moved int) {
	f := world.ExtractFrustum(view, 16.0/9, w.Tree.Config().LightMaxDist)
	culled := w.Tree.Cull(f, world.Options{})
	visible := w.Tree.Sweep(f)
	visibleEntities.Set(float64(len(visible)))

	lights := 0
	for _, l := range culled.Leaves {
		lights += len(l.Lights)
	}

	logs.WithTag("tick", w.Ticks()).
		WithTag("moved", moved).
		WithTag("leaves", len(culled.Leaves)).
		WithTag("leaf_lights", lights).
		WithTag("in_frustum", len(culled.Entities())).
		WithTag("visible", len(visible)).
		Debug("observer report")
}

func listenAndServe(ctx context.Context, s *http.Server) {
	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logs.Warn(errors.New("shutting down the server failed").
				WithTag("addr", s.Addr).
				Wrap(err))
		}
	}()

	logs.WithTag("addr", s.Addr).Info("starting server")
	switch err := s.ListenAndServe(); err {
	case nil, http.ErrServerClosed:
		logs.WithTag("addr", s.Addr).Info("stopping server")
	default:
		logs.Warn(errors.New("server stopped").
			WithTag("addr", s.Addr).
			Wrap(err))
	}
}

// metricsPath drops the path label of requests that did not hit a route.
func metricsPath(statusCode int, path string) string {
	if statusCode == http.StatusNotFound || statusCode == http.StatusMethodNotAllowed {
		return ""
	}
	return path
}

func validateConfig(conf config) error {
	if conf.Tick <= 0 {
		return errors.New("tick must be positive").WithTag("tick", conf.Tick)
	}
	if conf.Ticks < 0 {
		return errors.New("ticks must not be negative").WithTag("ticks", conf.Ticks)
	}
	if conf.Depth < 0 {
		return errors.New("depth must not be negative").WithTag("depth", conf.Depth)
	}
	return nil
}
