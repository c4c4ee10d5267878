package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/chaosctl/internal/config"
	"github.com/danmuck/chaosctl/internal/controls"
	"github.com/danmuck/chaosctl/internal/modules/audit"
	"github.com/danmuck/chaosctl/internal/modules/pause"
	"github.com/danmuck/chaosctl/internal/observability"
	"github.com/danmuck/chaosctl/internal/server"
)

func main() {
	observability.ConfigureRuntime()

	path := "config.toml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	cfg := defaultServiceConfig()
	if _, err := os.Stat(path); err == nil {
		loaded, err := loadServiceConfig(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("config load failed")
		}
		cfg = loaded
	} else {
		log.Warn().Str("path", path).Msg("config file missing, using defaults")
	}

	registerBuiltins()

	dispatcher := controls.NewDispatcher(nil)

	var settings config.Settings
	if _, err := os.Stat(cfg.ControlsPath); err == nil {
		settings, err = config.Load(cfg.ControlsPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.ControlsPath).Msg("controls settings load failed")
		}
	} else {
		log.Warn().Str("path", cfg.ControlsPath).Msg("controls settings missing, serving empty inventory")
	}

	for i := range settings.Controls {
		ctl := &settings.Controls[i]
		if err := dispatcher.Validate(ctl); err != nil {
			log.Fatal().Err(err).Str("control", ctl.Name).Msg("control validation failed")
		}
		if err := dispatcher.Initialize(ctl, settings.Configuration, settings.Secrets); err != nil {
			log.Fatal().Err(err).Str("control", ctl.Name).Msg("control initialization failed")
		}
		log.Info().Str("control", ctl.Name).Str("module", ctl.Provider.Module).Msg("control ready")
	}

	srv := server.New(server.Config{
		Name:        cfg.Name,
		CORSOrigins: cfg.CORSOrigins,
	}, nil)
	srv.SetControls(settings.Controls)

	go func() {
		if err := srv.Run(cfg.Addr); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Addr).Msg("admin server failed")
		}
	}()
	log.Info().Str("addr", cfg.Addr).Int("controls", len(settings.Controls)).Msg("chaosctl admin up")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	for i := range settings.Controls {
		ctl := &settings.Controls[i]
		if err := dispatcher.Cleanup(ctl); err != nil {
			log.Error().Err(err).Str("control", ctl.Name).Msg("control cleanup failed")
		}
	}
	log.Info().Msg("chaosctl admin down")
}

func registerBuiltins() {
	if err := audit.Register(controls.Default); err != nil {
		log.Fatal().Err(err).Msg("register audit module")
	}
	if err := pause.Register(controls.Default); err != nil {
		log.Fatal().Err(err).Msg("register pause module")
	}
}
