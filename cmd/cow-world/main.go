package main

import (
	"flag"
	"log"

	"github.com/Carmen-Shannon/cow-world/engine/config"
	"github.com/Carmen-Shannon/cow-world/engine/loader"
	"github.com/Carmen-Shannon/cow-world/engine/renderer"
	"github.com/Carmen-Shannon/cow-world/engine/scene"
	"github.com/Carmen-Shannon/cow-world/engine/window"
)

func main() {
	configPath := flag.String("config", "cow-world.yaml", "path to the YAML configuration file")
	software := flag.Bool("software", false, "force the software fallback GPU adapter")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)
	if err != nil {
		log.Fatalf("[main] creating window: %v", err)
	}
	defer win.Close()

	r, err := renderer.NewRenderer(win,
		renderer.WithPresentMode(renderer.PresentModeVSync),
		renderer.WithMaxBones(cfg.Animation.MaxBones),
		renderer.WithForceSoftwareRenderer(*software),
	)
	if err != nil {
		log.Fatalf("[main] creating renderer: %v", err)
	}
	defer r.Release()

	ld := loader.NewLoader(loader.WithTicksPerSecond(cfg.Animation.DefaultTicksPerSecond))

	sc, err := scene.NewScene(cfg, win, r, ld)
	if err != nil {
		log.Fatalf("[main] building scene: %v", err)
	}

	win.SetUpdateCallback(sc.Tick)
	win.ProcessMessages()
}
