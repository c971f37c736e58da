package interp

import (
	"github.com/entryrt/engine/internal/eval"
	"github.com/entryrt/engine/internal/ierrors"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

func handleWaitSecond(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if _, waiting := th.BodyCursor[b.ID]; waiting {
		// The scheduler only resumes this slice once waitEndMs has
		// passed, so reaching here again means the wait is over.
		delete(th.BodyCursor, b.ID)
		return ok()
	}
	seconds := param(ip, objectID, th, b, 0)
	th.BodyCursor[b.ID] = 1
	th.SetWait(thread.ExplicitWaitSecond, b.ID, ip.nowMs()+int64(seconds*1000))
	return Result{Outcome: Suspended}
}

func cleanupLoop(th *thread.State, blockID string) {
	delete(th.LoopCounters, blockID)
	delete(th.LoopTotal, blockID)
	delete(th.BodyCursor, blockID)
}

// runLoopIteration runs one pass of a loop body from wherever it was
// left off. done is false while the body is still suspended mid-pass
// (or has failed); once a pass runs to completion, done is true and
// the caller decides whether to iterate again.
func (ip *Interp) runLoopIteration(objectID string, th *thread.State, b *model.Block) (done bool, res Result) {
	body := b.Body(0)
	start := th.BodyCursor[b.ID]
	bres := ip.runBody(objectID, th, body, start)
	if bres.Outcome == Suspended {
		th.BodyCursor[b.ID] = bres.ResumeIndex
		return false, bres
	}
	if bres.Outcome == Failed {
		cleanupLoop(th, b.ID)
		return false, bres
	}
	delete(th.BodyCursor, b.ID)
	return true, ok()
}

func handleRepeatBasic(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	total, has := th.LoopTotal[b.ID]
	if !has {
		n := int(param(ip, objectID, th, b, 0))
		if n < 0 {
			return failed(ierrors.NewParamValueDomain(b.ID, b.Opcode, objectID,
				"반복 횟수는 0 이상이어야 합니다", "negative repeat_basic count"))
		}
		total = n
		th.LoopTotal[b.ID] = total
	}
	if th.LoopCounters[b.ID] >= total {
		cleanupLoop(th, b.ID)
		return ok()
	}
	done, res := ip.runLoopIteration(objectID, th, b)
	if !done {
		return res
	}
	if th.ConsumeBreak() {
		cleanupLoop(th, b.ID)
		return ok()
	}
	th.ConsumeContinue()
	th.LoopCounters[b.ID]++
	if th.LoopCounters[b.ID] >= total {
		cleanupLoop(th, b.ID)
		return ok()
	}
	th.SetWait(thread.BlockInternal, b.ID, ip.nowMs()+ip.minTickMs())
	return Result{Outcome: Suspended}
}

func handleRepeatInf(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	done, res := ip.runLoopIteration(objectID, th, b)
	if !done {
		return res
	}
	if th.ConsumeBreak() {
		cleanupLoop(th, b.ID)
		return ok()
	}
	th.ConsumeContinue()
	th.SetWait(thread.BlockInternal, b.ID, ip.nowMs()+ip.minTickMs())
	return Result{Outcome: Suspended}
}

// handleRepeatWhileTrue re-evaluates cond at the top of each fresh
// iteration only — not on every resumed tick while the body itself is
// mid-suspension, signalled by a pending BodyCursor entry.
func handleRepeatWhileTrue(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if _, mid := th.BodyCursor[b.ID]; !mid {
		if !eval.EvalBool(ip.Env, objectID, b.Param(0), th) {
			return ok()
		}
	}
	done, res := ip.runLoopIteration(objectID, th, b)
	if !done {
		return res
	}
	if th.ConsumeBreak() {
		cleanupLoop(th, b.ID)
		return ok()
	}
	th.ConsumeContinue()
	th.SetWait(thread.BlockInternal, b.ID, ip.nowMs()+ip.minTickMs())
	return Result{Outcome: Suspended}
}

func handleStopRepeat(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	th.BreakLoopRequested = true
	return ok()
}

func handleContinueRepeat(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	th.ContinueLoopRequested = true
	return ok()
}

func handleIf(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if _, mid := th.BodyCursor[b.ID]; !mid {
		if !eval.EvalBool(ip.Env, objectID, b.Param(0), th) {
			return ok()
		}
	}
	start := th.BodyCursor[b.ID]
	res := ip.runBody(objectID, th, b.Body(0), start)
	if res.Outcome == Suspended {
		th.BodyCursor[b.ID] = res.ResumeIndex
		return res
	}
	delete(th.BodyCursor, b.ID)
	return res
}

func handleIfElse(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	branch, has := th.IfElseBranch[b.ID]
	if !has {
		branch = 1
		if eval.EvalBool(ip.Env, objectID, b.Param(0), th) {
			branch = 0
		}
		th.IfElseBranch[b.ID] = branch
	}
	start := th.BodyCursor[b.ID]
	res := ip.runBody(objectID, th, b.Body(branch), start)
	if res.Outcome == Suspended {
		th.BodyCursor[b.ID] = res.ResumeIndex
		return res
	}
	delete(th.BodyCursor, b.ID)
	delete(th.IfElseBranch, b.ID)
	return res
}

func handleWaitUntilTrue(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if eval.EvalBool(ip.Env, objectID, b.Param(0), th) {
		return ok()
	}
	th.SetWait(thread.BlockInternal, b.ID, ip.nowMs()+ip.minTickMs())
	return Result{Outcome: Suspended}
}

// noThread never matches a real thread.ID, so passing it to
// Entity.TerminateAll terminates unconditionally.
const noThread thread.ID = thread.ID(^uint64(0))

// handleStopObject implements §4.2.5's stop_object. Per §9's open
// question, "otherThreadsOfThisObject" leaves the calling thread
// running; "thisObject" terminates every thread on the object
// including the caller (its current slice still finishes).
func handleStopObject(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	target := StopTarget(paramStr(ip, objectID, th, b, 0))
	switch target {
	case StopThisThread:
		th.TerminateRequested = true
	case StopOtherThreadsOfThisObject:
		if e, found := self(ip, objectID); found {
			e.TerminateAll(th.ID)
		}
	case StopThis:
		if e, found := self(ip, objectID); found {
			e.TerminateAll(noThread)
		}
	case StopAll:
		for _, id := range ip.Env.Registry.All() {
			if e, found := ip.Env.Registry.Get(id); found {
				e.TerminateAll(noThread)
			}
		}
	case StopOtherObjects:
		for _, id := range ip.Env.Registry.All() {
			if id == objectID {
				continue
			}
			if e, found := ip.Env.Registry.Get(id); found {
				e.TerminateAll(noThread)
			}
		}
	}
	return ok()
}

func handleRestartProject(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	ip.Host.RestartProject()
	th.TerminateRequested = true
	return ok()
}

func handleCreateClone(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	target := paramStr(ip, objectID, th, b, 0)
	if target == "" || target == "self" {
		target = objectID
	}
	if _, err := ip.Host.CreateClone(target, objectID); err != nil {
		ip.Env.Log.Warn("create_clone failed", map[string]any{"target": target, "error": err.Error()})
	}
	return ok()
}

func handleDeleteClone(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	ip.Host.DeleteClone(objectID)
	th.TerminateRequested = true
	return ok()
}

func handleRemoveAllClones(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	ip.Host.RemoveAllClones(objectID)
	return ok()
}
