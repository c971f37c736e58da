package eval

import (
	"fmt"
	"time"

	"github.com/entryrt/engine/internal/entity"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

// resolveTarget resolves the "self" sentinel or a literal object id to
// a live entity, per §4.1's object reporters.
func resolveTarget(env *Env, currentObject, selector string) (*entity.Entity, bool) {
	if selector == "" || selector == "self" {
		return env.Registry.Get(currentObject)
	}
	return env.Registry.Get(selector)
}

func evalGetDate(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	field := literalOf(b.Param(0))
	now := time.Now()
	switch field {
	case "YEAR":
		return value.Number(float64(now.Year()))
	case "MONTH":
		return value.Number(float64(now.Month()))
	case "DAY":
		return value.Number(float64(now.Day()))
	case "HOUR":
		return value.String(fmt.Sprintf("%02d", now.Hour()))
	case "MINUTE":
		return value.String(fmt.Sprintf("%02d", now.Minute()))
	case "SECOND":
		return value.String(fmt.Sprintf("%02d", now.Second()))
	}
	return value.Empty
}

func evalCoordinateObject(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	target := literalOf(b.Param(0))
	field := literalOf(b.Param(1))
	e, ok := resolveTarget(env, objectID, target)
	if !ok {
		env.warn("coordinate_object: unknown entity", map[string]any{"target": target})
		return value.Number(0)
	}
	e.Lock()
	defer e.Unlock()
	switch field {
	case "x":
		return value.Number(e.X)
	case "y":
		return value.Number(e.Y)
	case "rotation":
		return value.Number(e.Rotation)
	case "direction":
		return value.Number(e.Direction)
	case "size":
		return value.Number(e.ScaleX * 100)
	case "width":
		return value.Number(e.Width * e.ScaleX)
	case "height":
		return value.Number(e.Height * e.ScaleY)
	}
	return value.Number(0)
}

func evalCostumeName(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	target := literalOf(b.Param(0))
	e, ok := resolveTarget(env, objectID, target)
	if !ok || e.Def == nil {
		return value.String("")
	}
	e.Lock()
	idx := e.CostumeIndex
	e.Unlock()
	pics := e.Def.Sprite.Pictures
	if idx < 0 || idx >= len(pics) {
		return value.String("")
	}
	return value.String(pics[idx].Name)
}

func evalCostumeIndex(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	target := literalOf(b.Param(0))
	e, ok := resolveTarget(env, objectID, target)
	if !ok {
		return value.Number(0)
	}
	e.Lock()
	defer e.Unlock()
	return value.Number(float64(e.CostumeIndex + 1)) // 1-based to scripts
}

func evalSoundDuration(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	target := literalOf(b.Param(0))
	soundName := Eval(env, objectID, b.Param(1), th).AsString()
	e, ok := resolveTarget(env, objectID, target)
	if !ok || e.Def == nil {
		return value.Number(0)
	}
	for _, s := range e.Def.Sprite.Sounds {
		if s.Name == soundName || s.ID == soundName {
			return value.Number(s.Duration)
		}
	}
	env.warn("get_sound_duration: asset missing", map[string]any{"sound": soundName})
	return value.Number(0)
}

func evalVariableValue(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	id := literalOf(b.Param(0))
	return value.String(env.Vars.Get(id, objectID))
}

func evalListValueAt(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	id := literalOf(b.Param(0))
	selector := Eval(env, objectID, b.Param(1), th).AsString()
	var rng float64
	if th != nil {
		rng = threadRNG(th).Float64()
	}
	return value.String(env.Vars.ListValueAt(id, objectID, selector, rng))
}

func evalListLength(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	id := literalOf(b.Param(0))
	return value.Number(float64(env.Vars.ListLength(id, objectID)))
}

func evalListContains(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	id := literalOf(b.Param(0))
	needle := Eval(env, objectID, b.Param(1), th).AsString()
	return value.Boolean(env.Vars.ListContains(id, objectID, needle))
}
