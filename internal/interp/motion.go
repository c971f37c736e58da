package interp

import (
	"math"

	"github.com/entryrt/engine/internal/entity"
	"github.com/entryrt/engine/internal/eval"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

func param(ip *Interp, objectID string, th *thread.State, b *model.Block, i int) float64 {
	return eval.Eval(ip.Env, objectID, b.Param(i), th).AsNumber()
}

func paramStr(ip *Interp, objectID string, th *thread.State, b *model.Block, i int) string {
	return eval.Eval(ip.Env, objectID, b.Param(i), th).AsString()
}

func self(ip *Interp, objectID string) (*entity.Entity, bool) {
	return ip.Env.Registry.Get(objectID)
}

// handleMoveDirection implements §4.2.1's move_direction, adopting the
// y-up sign fix §9 calls for: stage y is up-positive, so the step adds
// dist*sin(dir) rather than subtracting it.
func handleMoveDirection(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	dist := param(ip, objectID, th, b, 0)
	dir := param(ip, objectID, th, b, 1)
	rad := dir * math.Pi / 180
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	e.X += dist * math.Cos(rad)
	e.Y += dist * math.Sin(rad)
	e.Unlock()
	return ok()
}

func handleMoveX(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	delta := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.X += delta
		e.Unlock()
	}
	return ok()
}

func handleMoveY(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	delta := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Y += delta
		e.Unlock()
	}
	return ok()
}

func handleLocateX(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	x := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.X = x
		e.Unlock()
	}
	return ok()
}

func handleLocateY(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	y := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Y = y
		e.Unlock()
	}
	return ok()
}

func handleLocateXY(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	x := param(ip, objectID, th, b, 0)
	y := param(ip, objectID, th, b, 1)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.X, e.Y = x, y
		e.Unlock()
	}
	return ok()
}

// handleLocate implements locate(target): target is "mouse" (applied
// only while the pointer is on-stage) or another entity's id.
func handleLocate(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	target := paramStr(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	if target == "mouse" {
		mx, my, onStage := ip.Env.Input.MouseStagePos()
		if !onStage {
			return ok()
		}
		e.Lock()
		e.X, e.Y = mx, my
		e.Unlock()
		return ok()
	}
	other, found := ip.Env.Registry.Get(target)
	if !found {
		ip.Env.Log.Warn("locate: unknown target entity", map[string]any{"target": target})
		return ok()
	}
	other.Lock()
	ox, oy := other.X, other.Y
	other.Unlock()
	e.Lock()
	e.X, e.Y = ox, oy
	e.Unlock()
	return ok()
}

// beginTimedMove / stepTimedMove implement the frame-stepping pattern
// shared by move_xy_time, locate_xy_time, and locate_object_time:
// on first entry compute totalFrames = max(1, floor(t*fps)) and
// record the target; each tick step by remaining_delta/remainingFrames
// and decrement, snapping to the target on the last step.
func (ip *Interp) beginTimedMove(e *entity.Entity, seconds, targetX, targetY float64, followID string) {
	total := int(math.Floor(seconds * float64(ip.FPS)))
	if total < 1 {
		total = 1
	}
	e.TimedMoveState = entity.TimedMove{
		Active: true, TotalFrames: total, RemainingFrames: total,
		TargetX: targetX, TargetY: targetY, FollowTargetID: followID,
	}
}

func (ip *Interp) stepTimedMove(e *entity.Entity) {
	tm := &e.TimedMoveState
	if tm.FollowTargetID != "" {
		if target, found := ip.Env.Registry.Get(tm.FollowTargetID); found {
			target.Lock()
			tm.TargetX, tm.TargetY = target.X, target.Y
			target.Unlock()
		}
	}
	if tm.RemainingFrames <= 1 {
		e.X, e.Y = tm.TargetX, tm.TargetY
		*tm = entity.TimedMove{}
		return
	}
	stepX := (tm.TargetX - e.X) / float64(tm.RemainingFrames)
	stepY := (tm.TargetY - e.Y) / float64(tm.RemainingFrames)
	e.X += stepX
	e.Y += stepY
	tm.RemainingFrames--
}

func handleMoveXYTime(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	return ip.runTimedMove(objectID, th, b, true)
}

func handleLocateXYTime(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	return ip.runTimedMove(objectID, th, b, false)
}

// runTimedMove backs both move_xy_time (params are deltas added to the
// position recorded at dispatch) and locate_xy_time (params are the
// absolute target); relative==true selects the former.
func (ip *Interp) runTimedMove(objectID string, th *thread.State, b *model.Block, relative bool) Result {
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	if !e.TimedMoveState.Active {
		seconds := param(ip, objectID, th, b, 0)
		tx := param(ip, objectID, th, b, 1)
		ty := param(ip, objectID, th, b, 2)
		if relative {
			tx += e.X
			ty += e.Y
		}
		ip.beginTimedMove(e, seconds, tx, ty, "")
	}
	ip.stepTimedMove(e)
	if e.TimedMoveState.Active {
		th.SetWait(thread.BlockInternal, b.ID, ip.nowMs()+ip.minTickMs())
		return Result{Outcome: Suspended}
	}
	return ok()
}

func handleLocateObjectTime(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	if !e.TimedMoveState.Active {
		seconds := param(ip, objectID, th, b, 0)
		targetID := paramStr(ip, objectID, th, b, 1)
		tx, ty := e.X, e.Y
		if target, found := ip.Env.Registry.Get(targetID); found {
			target.Lock()
			tx, ty = target.X, target.Y
			target.Unlock()
		}
		ip.beginTimedMove(e, seconds, tx, ty, targetID)
	}
	ip.stepTimedMove(e)
	if e.TimedMoveState.Active {
		th.SetWait(thread.BlockInternal, b.ID, ip.nowMs()+ip.minTickMs())
		return Result{Outcome: Suspended}
	}
	return ok()
}

func normalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func handleRotateRelative(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	delta := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Rotation = normalizeAngle(e.Rotation + delta)
		e.Unlock()
	}
	return ok()
}

func handleRotateAbsolute(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	deg := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Rotation = normalizeAngle(deg)
		e.Unlock()
	}
	return ok()
}

func handleDirectionRelative(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	delta := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Direction = normalizeAngle(e.Direction + delta)
		e.Unlock()
	}
	return ok()
}

func handleDirectionAbsolute(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	deg := param(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Direction = normalizeAngle(deg)
		e.Unlock()
	}
	return ok()
}

func handleRotateByTime(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	defer e.Unlock()
	tr := &e.TimedRotationState
	if !tr.Active {
		seconds := param(ip, objectID, th, b, 0)
		deg := param(ip, objectID, th, b, 1)
		total := int(math.Floor(seconds * float64(ip.FPS)))
		if total < 1 {
			total = 1
		}
		*tr = entity.TimedRotation{
			Active: true, TotalFrames: total, RemainingFrames: total,
			TargetDeg: deg, Absolute: false, AffectsRotation: true,
		}
	}
	step := tr.TargetDeg / float64(tr.TotalFrames)
	if tr.RemainingFrames <= 1 {
		e.Rotation = normalizeAngle(e.Rotation + step*float64(tr.RemainingFrames))
		*tr = entity.TimedRotation{}
	} else {
		e.Rotation = normalizeAngle(e.Rotation + step)
		tr.RemainingFrames--
	}
	if tr.Active {
		th.SetWait(thread.BlockInternal, b.ID, ip.nowMs()+ip.minTickMs())
		return Result{Outcome: Suspended}
	}
	return ok()
}

// handleBounceWall implements §4.2.1's wall-bounce test with one-frame
// hysteresis against re-triggering on the same side.
func handleBounceWall(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	e, found := self(ip, objectID)
	if !found {
		return ok()
	}
	e.Lock()
	defer e.Unlock()

	hw, hh := e.HalfExtents()
	halfW, halfH := ip.Env.StageW/2, ip.Env.StageH/2

	var side entity.CollisionSide
	switch {
	case e.X-hw <= -halfW:
		side = entity.SideLeft
	case e.X+hw >= halfW:
		side = entity.SideRight
	case e.Y-hh <= -halfH:
		side = entity.SideBottom
	case e.Y+hh >= halfH:
		side = entity.SideTop
	default:
		e.LastCollisionSide = entity.SideNone
		return ok()
	}
	if side == e.LastCollisionSide {
		return ok()
	}
	e.LastCollisionSide = side

	currentRotation, currentDirection := e.Rotation, e.Direction

	// A free-rotating entity reflects off the wall by writing the new
	// heading into Rotation, not Direction; Direction is left alone.
	if e.RotationMethod == entity.RotateFree {
		switch side {
		case entity.SideLeft, entity.SideRight:
			e.Rotation = normalizeAngle(-currentRotation - currentDirection*2 + 180)
		case entity.SideTop, entity.SideBottom:
			e.Rotation = normalizeAngle(-currentRotation - currentDirection*2)
		}
		return ok()
	}

	angle := normalizeAngle(currentDirection)
	switch side {
	case entity.SideLeft, entity.SideRight:
		angle = normalizeAngle(180 - angle)
	case entity.SideTop, entity.SideBottom:
		angle = normalizeAngle(-angle)
	}
	e.Direction = angle
	return ok()
}
