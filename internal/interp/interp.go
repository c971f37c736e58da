// Package interp implements the statement interpreter of §4.2: each
// statement block runs to Completed, Suspended, or Failed, with
// category handlers dispatched by opcode and suspensions recorded as
// data on the calling thread-state rather than as stack unwinds.
package interp

import (
	"github.com/entryrt/engine/internal/eval"
	"github.com/entryrt/engine/internal/ierrors"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

// Outcome is the three-way result of running one statement block.
type Outcome int

const (
	Completed Outcome = iota
	Suspended
	Failed
)

// Result is what every statement handler returns. ResumeIndex is only
// meaningful when Outcome == Suspended: it is the position, within
// whatever body was being run, to resume from on the next slice.
type Result struct {
	Outcome     Outcome
	ResumeIndex int
	Err         *ierrors.ScriptBlockExecutionError
	// ScriptDone is set by RunSlice (not by individual statement
	// handlers) when Outcome == Completed and the slice ran the script
	// to its last top-level block without suspending — the thread-state
	// should be torn down, per §3's "destroyed when it ends".
	ScriptDone bool
}

func ok() Result           { return Result{Outcome: Completed} }
func suspendAt(i int) Result { return Result{Outcome: Suspended, ResumeIndex: i} }
func failed(err *ierrors.ScriptBlockExecutionError) Result {
	return Result{Outcome: Failed, Err: err}
}

// Host is the scheduler-level surface the interpreter calls into for
// operations that affect more than the calling thread: scene
// transitions, clone lifecycle, restart, and message fan-out. It is
// implemented by the scheduler to avoid an import cycle.
type Host interface {
	StartScene(sceneID string)
	NextScene(direction string)
	RestartProject()
	CreateClone(targetID, callerObjectID string) (cloneID string, err error)
	DeleteClone(objectID string)
	RemoveAllClones(originID string)
	CastMessage(messageID string)
}

// Interp holds everything the category handlers need: the reporter
// environment, the scheduler host surface, and the project's target
// tick rate (used for timed-block frame counts and wait deadlines).
type Interp struct {
	Env  *eval.Env
	Host Host
	FPS  int
}

func New(env *eval.Env, host Host, fps int) *Interp {
	if fps <= 0 {
		fps = 60
	}
	return &Interp{Env: env, Host: host, FPS: fps}
}

func (ip *Interp) nowMs() int64 { return ip.Env.Clock.NowMs() }

func (ip *Interp) minTickMs() int64 {
	if ip.FPS <= 0 {
		return 16
	}
	return int64(1000 / ip.FPS)
}

// RunSlice resumes a script's thread-state from its persisted
// resumption point and runs it until the first suspension, the end of
// the script, or a fault. It never runs more than one slice.
func (ip *Interp) RunSlice(objectID string, th *thread.State, script *model.Script) Result {
	if len(script.Blocks) == 0 {
		return ok()
	}
	body := script.Blocks[1:]
	res := ip.runBody(objectID, th, body, th.ResumeBlockIndex)
	switch res.Outcome {
	case Suspended:
		th.ResumeBlockIndex = res.ResumeIndex
	case Completed:
		th.ResumeBlockIndex = len(body)
		res.ScriptDone = true
	}
	return res
}

// runBody walks body[startIndex:], invoking the per-opcode dispatcher
// for each block. It stops and reports its position as soon as a
// block suspends, fails, or a break/continue request becomes pending
// (the latter two are left for the owning loop construct to consume).
func (ip *Interp) runBody(objectID string, th *thread.State, body []*model.Block, startIndex int) Result {
	for i := startIndex; i < len(body); i++ {
		res := ip.runStatement(objectID, th, body[i])
		if res.Outcome == Suspended {
			return suspendAt(i)
		}
		if res.Outcome == Failed {
			return res
		}
		if th.BreakLoopRequested || th.ContinueLoopRequested || th.TerminateRequested {
			return Result{Outcome: Completed, ResumeIndex: i + 1}
		}
	}
	return ok()
}

// runStatement dispatches one block by opcode and recovers a thrown
// *ierrors.ScriptBlockExecutionError (from a ParamValueDomain fault or
// a calc_basic DIVIDE raised while evaluating a reporter param) into a
// Failed result, per §7: faults never propagate past one thread.
func (ip *Interp) runStatement(objectID string, th *thread.State, b *model.Block) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			if serr, isErr := r.(*ierrors.ScriptBlockExecutionError); isErr {
				if ip.Env.Log != nil {
					ip.Env.Log.Error("script thread terminated", map[string]any{
						"block": serr.BlockID, "opcode": serr.Opcode, "object": serr.ObjectID, "message": serr.Human,
					})
				}
				res = failed(serr)
				return
			}
			panic(r)
		}
	}()
	return ip.dispatch(objectID, th, b)
}

func (ip *Interp) dispatch(objectID string, th *thread.State, b *model.Block) Result {
	switch b.Opcode {
	// Motion
	case OpMoveDirection:
		return handleMoveDirection(ip, objectID, th, b)
	case OpMoveX:
		return handleMoveX(ip, objectID, th, b)
	case OpMoveY:
		return handleMoveY(ip, objectID, th, b)
	case OpLocateX:
		return handleLocateX(ip, objectID, th, b)
	case OpLocateY:
		return handleLocateY(ip, objectID, th, b)
	case OpLocateXY:
		return handleLocateXY(ip, objectID, th, b)
	case OpLocate:
		return handleLocate(ip, objectID, th, b)
	case OpMoveXYTime:
		return handleMoveXYTime(ip, objectID, th, b)
	case OpLocateXYTime:
		return handleLocateXYTime(ip, objectID, th, b)
	case OpLocateObjectTime:
		return handleLocateObjectTime(ip, objectID, th, b)
	case OpRotateRelative:
		return handleRotateRelative(ip, objectID, th, b)
	case OpRotateAbsolute:
		return handleRotateAbsolute(ip, objectID, th, b)
	case OpDirectionRelative:
		return handleDirectionRelative(ip, objectID, th, b)
	case OpDirectionAbsolute:
		return handleDirectionAbsolute(ip, objectID, th, b)
	case OpRotateByTime:
		return handleRotateByTime(ip, objectID, th, b)
	case OpBounceWall:
		return handleBounceWall(ip, objectID, th, b)

	// Looks
	case OpShow:
		return handleShow(ip, objectID, th, b)
	case OpHide:
		return handleHide(ip, objectID, th, b)
	case OpDialog:
		return handleDialog(ip, objectID, th, b)
	case OpChangeToSomeShape:
		return handleChangeToSomeShape(ip, objectID, th, b)
	case OpChangeToNextShape:
		return handleChangeToNextShape(ip, objectID, th, b)
	case OpAddEffectAmount:
		return handleAddEffectAmount(ip, objectID, th, b)
	case OpChangeEffectAmount:
		return handleChangeEffectAmount(ip, objectID, th, b)
	case OpEraseAllEffects:
		return handleEraseAllEffects(ip, objectID, th, b)
	case OpChangeScaleSize:
		return handleChangeScaleSize(ip, objectID, th, b)
	case OpSetScaleSize:
		return handleSetScaleSize(ip, objectID, th, b)
	case OpStretchScaleX:
		return handleStretchScaleX(ip, objectID, th, b)
	case OpStretchScaleY:
		return handleStretchScaleY(ip, objectID, th, b)
	case OpResetScale:
		return handleResetScale(ip, objectID, th, b)
	case OpFlipX:
		return handleFlipX(ip, objectID, th, b)
	case OpFlipY:
		return handleFlipY(ip, objectID, th, b)
	case OpChangeObjectIndex:
		return handleChangeObjectIndex(ip, objectID, th, b)

	// Sound
	case OpPlaySound:
		return handlePlaySound(ip, objectID, th, b)
	case OpPlaySoundAndWait:
		return handlePlaySoundAndWait(ip, objectID, th, b)
	case OpPlaySoundForDuration:
		return handlePlaySoundForDuration(ip, objectID, th, b)
	case OpPlaySoundForDurationAndWait:
		return handlePlaySoundForDurationAndWait(ip, objectID, th, b)
	case OpPlaySoundFromTo:
		return handlePlaySoundFromTo(ip, objectID, th, b)
	case OpPlaySoundFromToAndWait:
		return handlePlaySoundFromToAndWait(ip, objectID, th, b)
	case OpSoundVolumeChange:
		return handleSoundVolumeChange(ip, objectID, th, b)
	case OpSoundVolumeSet:
		return handleSoundVolumeSet(ip, objectID, th, b)
	case OpSoundSpeedChange:
		return handleSoundSpeedChange(ip, objectID, th, b)
	case OpSoundSpeedSet:
		return handleSoundSpeedSet(ip, objectID, th, b)
	case OpSoundSilentAll:
		return handleSoundSilentAll(ip, objectID, th, b)
	case OpPlayBGM:
		return handlePlayBGM(ip, objectID, th, b)

	// Variables & lists
	case OpSetVariable:
		return handleSetVariable(ip, objectID, th, b)
	case OpChangeVariable:
		return handleChangeVariable(ip, objectID, th, b)
	case OpAddValueToList:
		return handleAddValueToList(ip, objectID, th, b)
	case OpRemoveValueFromList:
		return handleRemoveValueFromList(ip, objectID, th, b)
	case OpInsertValueToList:
		return handleInsertValueToList(ip, objectID, th, b)
	case OpReplaceValueInList:
		return handleReplaceValueInList(ip, objectID, th, b)
	case OpAskAndWait:
		return handleAskAndWait(ip, objectID, th, b)

	// Flow
	case OpWaitSecond:
		return handleWaitSecond(ip, objectID, th, b)
	case OpRepeatBasic:
		return handleRepeatBasic(ip, objectID, th, b)
	case OpRepeatInf:
		return handleRepeatInf(ip, objectID, th, b)
	case OpRepeatWhileTrue:
		return handleRepeatWhileTrue(ip, objectID, th, b)
	case OpStopRepeat:
		return handleStopRepeat(ip, objectID, th, b)
	case OpContinueRepeat:
		return handleContinueRepeat(ip, objectID, th, b)
	case OpIf:
		return handleIf(ip, objectID, th, b)
	case OpIfElse:
		return handleIfElse(ip, objectID, th, b)
	case OpWaitUntilTrue:
		return handleWaitUntilTrue(ip, objectID, th, b)
	case OpStopObject:
		return handleStopObject(ip, objectID, th, b)
	case OpRestartProject:
		return handleRestartProject(ip, objectID, th, b)
	case OpCreateClone:
		return handleCreateClone(ip, objectID, th, b)
	case OpDeleteClone:
		return handleDeleteClone(ip, objectID, th, b)
	case OpRemoveAllClones:
		return handleRemoveAllClones(ip, objectID, th, b)

	// TextBox
	case OpTextWrite:
		return handleTextWrite(ip, objectID, th, b)
	case OpTextAppend:
		return handleTextAppend(ip, objectID, th, b)
	case OpTextPrepend:
		return handleTextPrepend(ip, objectID, th, b)
	case OpTextChangeFontColor:
		return handleTextChangeFontColor(ip, objectID, th, b)
	case OpTextChangeBgColor:
		return handleTextChangeBgColor(ip, objectID, th, b)

	// Events
	case OpMessageCast:
		return handleMessageCast(ip, objectID, th, b)
	case OpStartScene:
		return handleStartScene(ip, objectID, th, b)
	case OpStartNeighborScene:
		return handleStartNeighborScene(ip, objectID, th, b)
	}

	if ip.Env.Log != nil {
		ip.Env.Log.Warn("unknown statement opcode", map[string]any{"opcode": b.Opcode, "block": b.ID})
	}
	return ok()
}
