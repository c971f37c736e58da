package eval

import (
	"github.com/entryrt/engine/internal/ierrors"
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

// Eval recursively evaluates a block param: a literal resolves
// directly, nil resolves to Empty, and a nested block dispatches by
// opcode. Arithmetic faults (DIVIDE by zero) are signaled by a panic
// carrying a *ierrors.ScriptBlockExecutionError; Eval does not recover
// it. The interpreter's runStatement recovers it and converts it into
// a Failed result, so no call site has to special-case it.
func Eval(env *Env, objectID string, p *model.Param, th *thread.State) value.Value {
	if p == nil {
		return value.Empty
	}
	if !p.IsBlock() {
		return value.FromAny(p.Literal)
	}
	return evalBlock(env, objectID, p.Block, th)
}

// EvalBool is a convenience wrapper for boolean-typed params (loop
// conditions, if conditions).
func EvalBool(env *Env, objectID string, p *model.Param, th *thread.State) bool {
	return Eval(env, objectID, p, th).AsBool()
}

func evalBlock(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	switch b.Opcode {
	case OpCalcBasic:
		return evalCalcBasic(env, objectID, b, th)
	case OpCalcRand:
		return evalCalcRand(env, objectID, b, th)
	case OpCalcOperation:
		return evalCalcOperation(env, objectID, b, th)
	case OpQuotientAndMod:
		return evalQuotientAndMod(env, objectID, b, th)
	case OpBooleanBasicOp:
		return evalBooleanBasicOp(env, objectID, b, th)
	case OpBooleanAnd:
		return value.Boolean(EvalBool(env, objectID, b.Param(0), th) && EvalBool(env, objectID, b.Param(1), th))
	case OpBooleanOr:
		return value.Boolean(EvalBool(env, objectID, b.Param(0), th) || EvalBool(env, objectID, b.Param(1), th))
	case OpBooleanNot:
		return value.Boolean(!EvalBool(env, objectID, b.Param(0), th))

	case OpLength:
		return value.Number(float64(len([]rune(Eval(env, objectID, b.Param(0), th).AsString()))))
	case OpReverse:
		return value.String(reverseString(Eval(env, objectID, b.Param(0), th).AsString()))
	case OpConcatenate:
		return value.String(Eval(env, objectID, b.Param(0), th).AsString() + Eval(env, objectID, b.Param(1), th).AsString())
	case OpCharAt:
		return evalCharAt(env, objectID, b, th)
	case OpSubstring:
		return evalSubstring(env, objectID, b, th)
	case OpCountMatches:
		return value.Number(float64(countMatches(Eval(env, objectID, b.Param(0), th).AsString(), Eval(env, objectID, b.Param(1), th).AsString())))
	case OpIndexOf:
		return value.Number(float64(indexOf1Based(Eval(env, objectID, b.Param(0), th).AsString(), Eval(env, objectID, b.Param(1), th).AsString())))
	case OpReplace:
		return evalReplace(env, objectID, b, th)
	case OpToUpper:
		return value.String(toUpper(Eval(env, objectID, b.Param(0), th).AsString()))
	case OpToLower:
		return value.String(toLower(Eval(env, objectID, b.Param(0), th).AsString()))

	case OpRGBToHex:
		return evalRGBToHex(env, objectID, b, th)
	case OpHexToRGB:
		return evalHexToRGB(env, objectID, b, th)

	case OpTimerValue:
		return value.Number(env.TimerSeconds())
	case OpGetDate:
		return evalGetDate(env, objectID, b, th)
	case OpMouseX:
		x, _, _ := env.Input.MouseStagePos()
		return value.Number(x)
	case OpMouseY:
		_, y, _ := env.Input.MouseStagePos()
		return value.Number(y)
	case OpCoordinateObject:
		return evalCoordinateObject(env, objectID, b, th)
	case OpCostumeName:
		return evalCostumeName(env, objectID, b, th)
	case OpCostumeIndex:
		return evalCostumeIndex(env, objectID, b, th)
	case OpSoundDuration:
		return evalSoundDuration(env, objectID, b, th)
	case OpSoundVolume:
		return value.Number(env.SoundVolume() * 100)
	case OpSoundSpeed:
		return value.Number(env.SoundSpeed())
	case OpVariableValue:
		return evalVariableValue(env, objectID, b, th)
	case OpAnswer:
		return value.String(env.Vars.Answer())
	case OpListValueAt:
		return evalListValueAt(env, objectID, b, th)
	case OpListLength:
		return evalListLength(env, objectID, b, th)
	case OpListContains:
		return evalListContains(env, objectID, b, th)

	case OpIsClicked:
		return value.Boolean(env.Input.StageClicked())
	case OpIsObjectClicked:
		id, ok := env.Input.ClickedObjectID()
		return value.Boolean(ok && id == objectID)
	case OpIsPressSomeKey:
		return evalIsPressSomeKey(env, objectID, b, th)
	case OpReachSomething:
		return evalReachSomething(env, objectID, b, th)
	}

	if env.Log != nil {
		env.Log.Warn("unknown reporter opcode", map[string]any{"opcode": b.Opcode, "block": b.ID})
	}
	return value.Empty
}

// throwDivideByZero is called by calc_basic's DIVIDE case; §7
// specifies this is the one reporter path that throws rather than
// returning NaN.
func throwDivideByZero(blockID, objectID string) {
	panic(ierrors.NewDivideByZero(blockID, objectID))
}
