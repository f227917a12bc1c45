package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/milk9111/vitals/common"
	"github.com/milk9111/vitals/config"
	"github.com/milk9111/vitals/prefabs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		common.NewLogger(zerolog.InfoLevel, config.LogFormatPretty, os.Stderr).Fatal().Err(err).Msg("invalid config")
	}
	log := common.LoggerFromConfig(cfg, os.Stderr)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("sandbox exited")
	}
}

// run owns the resources that need closing; main only logs its error.
func run(cfg config.Config, log zerolog.Logger) error {
	prefabs.SetDir(cfg.PrefabDir)

	var watcher *prefabs.Watcher
	if cfg.Watch {
		w, err := prefabs.NewWatcher(cfg.PrefabDir)
		if err != nil {
			log.Warn().Err(err).Str("dir", cfg.PrefabDir).Msg("hot reload disabled")
		} else {
			watcher = w
			defer watcher.Close()
		}
	}

	game, err := NewGame(log, watcher)
	if err != nil {
		return eris.Wrap(err, "build sandbox")
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("vitals sandbox")
	ebiten.SetTPS(cfg.TickRate)

	if err := ebiten.RunGame(game); err != nil {
		return eris.Wrap(err, "run game")
	}
	return nil
}
