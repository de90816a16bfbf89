package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/knights-vs-monsters/internal/config"
	"github.com/Garsondee/knights-vs-monsters/internal/game"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (defaults when empty)")
	seed := flag.Int64("seed", 0, "match seed, 0 for a clock seed")
	verbose := flag.Bool("verbose", false, "debug logging")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	var logger *zap.Logger
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	g, err := game.New(cfg, logger)
	if err != nil {
		logger.Fatal("start game", zap.Error(err))
	}
	w, h := g.Layout(0, 0)
	ebiten.SetWindowTitle("Knights vs Monsters")
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game loop", zap.Error(err))
	}
	logger.Info("session closed", zap.String("summary", g.Match().Summary().String()))
}
