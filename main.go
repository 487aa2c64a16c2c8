package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	debug := flag.Bool("debug", false, "draw movement flags and contact events")
	arena := flag.String("level", "arena.yaml", "arena spec in prefabs/")
	dummy := flag.Bool("dummy", true, "spawn a scripted sparring dummy")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("brawler")

	game, err := NewGame(*arena, *debug, *dummy)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
