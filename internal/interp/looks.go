package interp

import (
	"github.com/entryrt/engine/internal/entity"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/registry"
	"github.com/entryrt/engine/internal/thread"
)

func handleShow(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Visible = true
		e.Unlock()
	}
	return ok()
}

func handleHide(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Visible = false
		e.Unlock()
	}
	return ok()
}

// handleDialog implements dialog(message[, seconds], type): a
// duration-less dialog persists until cleared explicitly (durationMs
// == 0). The optional seconds param may be omitted (compacted away by
// CompactParams), in which case only message and type are present.
func handleDialog(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	params := b.CompactParams()
	message := paramStr(ip, objectID, th, b, 0)
	dtype := entity.DialogSpeak
	durationMs := int64(0)
	switch len(params) {
	case 2:
		if paramStr(ip, objectID, th, b, 1) == string(entity.DialogThink) {
			dtype = entity.DialogThink
		}
	case 3:
		durationMs = int64(param(ip, objectID, th, b, 1) * 1000)
		if paramStr(ip, objectID, th, b, 2) == string(entity.DialogThink) {
			dtype = entity.DialogThink
		}
	}
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	e.Dialog = entity.Dialog{Active: true, Text: message, Type: dtype, StartMs: ip.nowMs(), DurationMs: durationMs}
	e.Unlock()
	return ok()
}

func handleChangeToSomeShape(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	costumeID := paramStr(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found || e.Def == nil {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	for i, pic := range e.Def.Sprite.Pictures {
		if pic.ID == costumeID {
			e.CostumeIndex = i
			return ok()
		}
	}
	ip.Env.Log.Warn("change_to_some_shape: costume missing", map[string]any{"costume": costumeID})
	return ok()
}

func handleChangeToNextShape(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	dir := paramStr(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found || e.Def == nil || len(e.Def.Sprite.Pictures) == 0 {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	n := len(e.Def.Sprite.Pictures)
	if dir == "prev" {
		e.CostumeIndex = (e.CostumeIndex - 1 + n) % n
	} else {
		e.CostumeIndex = (e.CostumeIndex + 1) % n
	}
	return ok()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func handleAddEffectAmount(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	kind := EffectKind(paramStr(ip, objectID, th, b, 0))
	delta := param(ip, objectID, th, b, 1)
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	switch kind {
	case EffectColor:
		e.Effects.Hue += delta
	case EffectBrightness:
		e.Effects.Brightness += delta
	case EffectTransparency:
		e.Effects.Alpha = clamp01(e.Effects.Alpha - delta/100)
	}
	return ok()
}

func handleChangeEffectAmount(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	kind := EffectKind(paramStr(ip, objectID, th, b, 0))
	abs := param(ip, objectID, th, b, 1)
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	switch kind {
	case EffectColor:
		e.Effects.Hue = abs
	case EffectBrightness:
		e.Effects.Brightness = abs
	case EffectTransparency:
		e.Effects.Alpha = clamp01(1 - abs/100)
	}
	return ok()
}

func handleEraseAllEffects(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Effects = entity.DefaultEffects()
		e.Unlock()
	}
	return ok()
}

func handleChangeScaleSize(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	deltaPct := param(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	factor := deltaPct / 100
	e.ScaleX += factor
	e.ScaleY += factor
	return ok()
}

func handleSetScaleSize(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	pct := param(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	factor := pct / 100
	e.ScaleX, e.ScaleY = factor, factor
	return ok()
}

func handleStretchScaleX(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	deltaPct := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.ScaleX += deltaPct / 100
		e.Unlock()
	}
	return ok()
}

func handleStretchScaleY(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	deltaPct := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.ScaleY += deltaPct / 100
		e.Unlock()
	}
	return ok()
}

func handleResetScale(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.ScaleX, e.ScaleY = 1, 1
		e.Unlock()
	}
	return ok()
}

func handleFlipX(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.ScaleX = -e.ScaleX
		e.Unlock()
	}
	return ok()
}

func handleFlipY(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.ScaleY = -e.ScaleY
		e.Unlock()
	}
	return ok()
}

func handleChangeObjectIndex(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	kind := paramStr(ip, objectID, th, b, 0)
	ip.Env.Registry.Reorder(objectID, registry.ReorderKind(kind))
	return ok()
}
