package interp

import (
	"github.com/entryrt/engine/internal/entity"
	"github.com/entryrt/engine/internal/eval"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

func handleSetVariable(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	id := paramStr(ip, objectID, th, b, 0)
	v := paramStr(ip, objectID, th, b, 1)
	ip.Env.Vars.Set(id, objectID, v)
	return ok()
}

func handleChangeVariable(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	id := paramStr(ip, objectID, th, b, 0)
	delta := eval.Eval(ip.Env, objectID, b.Param(1), th)
	ip.Env.Vars.Change(id, objectID, delta.IsNumeric(), delta.AsNumber(), delta.AsString(), value.FormatNumber)
	return ok()
}

func handleAddValueToList(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	id := paramStr(ip, objectID, th, b, 0)
	v := paramStr(ip, objectID, th, b, 1)
	ip.Env.Vars.ListAdd(id, objectID, v)
	return ok()
}

func handleRemoveValueFromList(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	id := paramStr(ip, objectID, th, b, 0)
	idx := int(param(ip, objectID, th, b, 1))
	ip.Env.Vars.ListRemoveAt(id, objectID, idx)
	return ok()
}

func handleInsertValueToList(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	id := paramStr(ip, objectID, th, b, 0)
	v := paramStr(ip, objectID, th, b, 1)
	idx := int(param(ip, objectID, th, b, 2))
	ip.Env.Vars.ListInsertAt(id, objectID, idx, v)
	return ok()
}

func handleReplaceValueInList(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	id := paramStr(ip, objectID, th, b, 0)
	idx := int(param(ip, objectID, th, b, 1))
	v := paramStr(ip, objectID, th, b, 2)
	ip.Env.Vars.ListReplaceAt(id, objectID, idx, v)
	return ok()
}

// handleAskAndWait implements §4.2.4's ask_and_wait: the question is
// shown via the entity's dialog, a TEXT_INPUT wait is set, and the
// scheduler's wait-clearing step delivers the submitted text into the
// distinguished "answer" slot once the input source reports it (see
// Scheduler.waitCleared).
func handleAskAndWait(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	if _, asked := th.BodyCursor[b.ID]; asked {
		delete(th.BodyCursor, b.ID)
		return ok()
	}
	question := paramStr(ip, objectID, th, b, 0)
	if e, found := self(ip, objectID); found {
		e.Lock()
		e.Dialog = entity.Dialog{Active: true, Text: question, Type: entity.DialogSpeak, StartMs: ip.nowMs()}
		e.Unlock()
	}
	th.BodyCursor[b.ID] = 1
	th.SetWait(thread.TextInput, b.ID, 0)
	return Result{Outcome: Suspended}
}
