package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/brawler/assets"
	"github.com/milk9111/brawler/common"
	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/ecs/entity"
	"github.com/milk9111/brawler/ecs/system"
	"github.com/milk9111/brawler/player"
	"github.com/milk9111/brawler/prefabs"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	playerSpecFile = "player.yaml"
	dummySpecFile  = "dummy.yaml"

	sparForce    = 3.0
	sparDuration = 0.25
)

type Game struct {
	frames int
	debug  bool

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	scripts   *system.ScriptSystem
	watcher   *prefabs.Watcher

	arena  *prefabs.ArenaSpec
	player ecs.Entity
	dummy  ecs.Entity

	landings   int
	knockbacks int
}

func NewGame(arenaFile string, debug, spawnDummy bool) (*Game, error) {
	arena, err := prefabs.LoadArenaSpec(arenaFile)
	if err != nil {
		return nil, err
	}

	dt := 1.0 / float64(ebiten.TPS())
	gravity := system.DefaultGravity
	if arena.Gravity != 0 {
		gravity = cp.Vector{X: 0, Y: arena.Gravity}
	}

	g := &Game{
		debug:   debug,
		world:   ecs.NewWorld(),
		physics: system.NewPhysicsSystem(gravity, dt),
		scripts: system.NewScriptSystem(arena.Width / 2),
		arena:   arena,
	}

	g.scheduler = ecs.NewScheduler()
	g.scheduler.Add(system.NewLocomotionSystem())
	g.scheduler.Add(g.scripts)
	g.scheduler.Add(system.NewMovementSystem(dt))
	g.scheduler.Add(g.physics)
	g.scheduler.Add(system.NewAudioSystem())

	if _, err := entity.NewArena(g.world, arena); err != nil {
		return nil, err
	}

	g.player, err = entity.NewPlayer(g.world, playerSpecFile, entity.PlayerOptions{
		X:           arena.Width / 4,
		Y:           2,
		Environment: g.physics,
		Controller:  keyboardController{},
		LoadSound:   assets.LoadSound,
	})
	if err != nil {
		return nil, err
	}
	if err := ecs.Add(g.world, g.player, component.PlayerTagComponent, &component.PlayerTag{}); err != nil {
		return nil, err
	}

	if spawnDummy {
		g.dummy, err = entity.NewPlayer(g.world, dummySpecFile, entity.PlayerOptions{
			X:           arena.Width * 3 / 4,
			Y:           2,
			FacingLeft:  true,
			Environment: g.physics,
			LoadSound:   assets.LoadSound,
		})
		if err != nil {
			return nil, err
		}
		if err := ecs.Add(g.world, g.dummy, component.DummyTagComponent, &component.DummyTag{}); err != nil {
			return nil, err
		}
	}

	if dir, ok := prefabs.DiskDir(); ok {
		w, err := prefabs.NewWatcher(dir, filepath.Join(dir, "scripts"))
		if err != nil {
			log.Printf("prefab hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			log.Printf("close prefab watcher: %v", err)
		}
	}
}

func (g *Game) Update() error {
	g.frames++

	g.reload()

	if knockbackPressed() {
		g.spar()
	}

	g.scheduler.Update(g.world)

	for _, ev := range g.world.Events().Drain() {
		switch ev.Type {
		case ecs.EventLanded:
			g.landings++
		case ecs.EventKnockbackComplete:
			g.knockbacks++
		}
		if g.debug {
			log.Printf("event: %v %+v", ev.Type, ev.Data)
		}
	}

	return nil
}

// spar shoves the dummy away from the player.
func (g *Game) spar() {
	m, ok := ecs.Get(g.world, g.dummy, player.MovementComponent)
	if !ok {
		return
	}
	pt, ok := ecs.Get(g.world, g.player, component.TransformComponent)
	if !ok {
		return
	}
	dir := common.Sign(m.Body().Position().X - pt.X)
	if dir == 0 {
		dir = 1
	}
	dummy := g.dummy
	m.OnKnockbackComplete(func() {
		if g.debug {
			log.Printf("knockback settled: entity=%s", dummy)
		}
	})
	m.Knockback(cp.Vector{X: 1}, dir*sparForce, sparDuration)
}

func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok {
			log.Printf("prefab watcher: %v", err)
		}
	default:
	}

	for _, change := range g.watcher.Poll() {
		switch change.Kind {
		case prefabs.ChangeScript:
			g.scripts.Invalidate(change.Path)
			log.Printf("reloaded script %s", change.Name)
		case prefabs.ChangeSpec:
			var target ecs.Entity
			switch change.Name {
			case playerSpecFile:
				target = g.player
			case dummySpecFile:
				target = g.dummy
			default:
				continue
			}
			spec, err := prefabs.LoadPlayerSpec(change.Name)
			if err != nil {
				log.Printf("reload %s: %v", change.Name, err)
				continue
			}
			if err := entity.ApplyPlayerSpec(g.world, target, spec); err != nil {
				log.Printf("reload %s: %v", change.Name, err)
				continue
			}
			log.Printf("reloaded %s", change.Name)
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)

	// world is Y-up with the floor top at y=0; the view keeps a margin below it
	originX := (baseWidth - g.arena.Width*common.PixelsPerUnit) / 2
	originY := baseHeight - 2*common.PixelsPerUnit

	ecs.ForEach(g.world, component.PhysicsBodyComponent, func(e ecs.Entity, body *component.PhysicsBody) {
		t, ok := ecs.Get(g.world, e, component.TransformComponent)
		if !ok {
			return
		}
		w := body.Width * common.PixelsPerUnit
		h := body.Height * common.PixelsPerUnit
		x := originX + t.X*common.PixelsPerUnit - w/2
		y := originY - t.Y*common.PixelsPerUnit - h/2

		clr := bodyColor(g.world, e, body)
		vector.FillRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)

		if body.Role == component.BodyRoleCharacter {
			// facing marker
			fx := x + w/2 + t.Facing()*w/4
			vector.FillRect(screen, float32(fx-2), float32(y+h/4), 4, 4, colornames.White, false)
		}
	})

	ebitenutil.DebugPrint(screen, g.hud())
}

func (g *Game) hud() string {
	text := fmt.Sprintf("Frames: %d    FPS: %.2f    landings: %d    knockbacks: %d",
		g.frames, ebiten.ActualFPS(), g.landings, g.knockbacks)
	if !g.debug {
		return text
	}
	if m, ok := ecs.Get(g.world, g.player, player.MovementComponent); ok {
		s := m.State()
		v := m.Body().Velocity()
		text += fmt.Sprintf("\nspeed %.1f  vel (%.2f, %.2f)  grav %.1f", s.MovementSpeed, v.X, v.Y, m.Body().GravityScale())
		text += fmt.Sprintf("\nground %t  grounded %t  jumped %t  double %t  dash %t",
			s.TouchingGround, s.IsGrounded, s.HasJumped, s.HasDoubleJumped, s.HasAirDashed)
		text += fmt.Sprintf("\ncorner %t  on player %t  crouch %t  moving %t",
			s.IsInCorner, s.OnTopOfPlayer, s.IsCrouching, s.IsMoving)
	}
	return text
}

func bodyColor(w *ecs.World, e ecs.Entity, body *component.PhysicsBody) color.Color {
	switch {
	case body.Static:
		return colornames.Slategray
	case ecs.Has(w, e, component.PlayerTagComponent):
		return colornames.Dodgerblue
	case ecs.Has(w, e, component.DummyTagComponent):
		return colornames.Coral
	}
	return colornames.Lightgray
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
