package entity

import (
	"fmt"

	"github.com/milk9111/brawler/ecs"
	"github.com/milk9111/brawler/ecs/component"
	"github.com/milk9111/brawler/prefabs"
)

// NewArena builds the static floor and side walls. The floor's top edge sits
// at y=0 and the arena spans x in [0, Width].
func NewArena(w *ecs.World, spec *prefabs.ArenaSpec) ([]ecs.Entity, error) {
	if spec == nil {
		return nil, fmt.Errorf("arena: %w: nil spec", prefabs.ErrInvalidSpec)
	}
	t := spec.WallThickness

	pieces := []struct {
		x, y, w, h float64
		role       component.BodyRole
	}{
		{spec.Width / 2, -t / 2, spec.Width + 2*t, t, component.BodyRoleGround},
		{-t / 2, spec.Height / 2, t, spec.Height, component.BodyRoleWall},
		{spec.Width + t/2, spec.Height / 2, t, spec.Height, component.BodyRoleWall},
	}

	out := make([]ecs.Entity, 0, len(pieces))
	for _, p := range pieces {
		e := w.CreateEntity()
		if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: p.x, Y: p.y, ScaleX: 1, ScaleY: 1}); err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
		if err := ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
			Width:    p.w,
			Height:   p.h,
			Friction: spec.Friction,
			Static:   true,
			Role:     p.role,
		}); err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
