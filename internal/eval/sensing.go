package eval

import (
	"github.com/entryrt/engine/internal/keys"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

func evalIsPressSomeKey(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	raw := literalOf(b.Param(0))
	if raw == "" {
		raw = Eval(env, objectID, b.Param(0), th).AsString()
	}
	canonical := keys.Resolve(raw)
	return value.Boolean(env.Input.KeyPressed(canonical))
}

// evalReachSomething implements §4.1's touch tests: stage walls, the
// mouse pointer, or another object, each a simple axis-aligned
// bounding-box overlap against the calling object's own box.
func evalReachSomething(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	target := literalOf(b.Param(0))
	self, ok := env.Registry.Get(objectID)
	if !ok {
		return value.Boolean(false)
	}
	self.Lock()
	sx, sy := self.X, self.Y
	shw, shh := self.HalfExtents()
	self.Unlock()

	switch target {
	case "wall", "WALL":
		return value.Boolean(touchesWall(sx, sy, shw, shh, env.StageW, env.StageH))
	case "mouse", "MOUSE":
		mx, my, onStage := env.Input.MouseStagePos()
		if !onStage {
			return value.Boolean(false)
		}
		return value.Boolean(boxContains(sx, sy, shw, shh, mx, my))
	default:
		other, ok := env.Registry.Get(target)
		if !ok {
			env.warn("reach_something: unknown target", map[string]any{"target": target})
			return value.Boolean(false)
		}
		other.Lock()
		ox, oy := other.X, other.Y
		ohw, ohh := other.HalfExtents()
		other.Unlock()
		return value.Boolean(boxesOverlap(sx, sy, shw, shh, ox, oy, ohw, ohh))
	}
}

func touchesWall(x, y, hw, hh, stageW, stageH float64) bool {
	halfStageW, halfStageH := stageW/2, stageH/2
	return x-hw <= -halfStageW || x+hw >= halfStageW || y-hh <= -halfStageH || y+hh >= halfStageH
}

func boxContains(cx, cy, hw, hh, px, py float64) bool {
	return px >= cx-hw && px <= cx+hw && py >= cy-hh && py <= cy+hh
}

func boxesOverlap(ax, ay, ahw, ahh, bx, by, bhw, bhh float64) bool {
	return absf64(ax-bx) <= ahw+bhw && absf64(ay-by) <= ahh+bhh
}

func absf64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
