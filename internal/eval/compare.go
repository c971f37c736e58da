package eval

import (
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

func evalBooleanBasicOp(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	lhs := Eval(env, objectID, b.Param(0), th)
	op := CompareOp(literalOf(b.Param(1)))
	rhs := Eval(env, objectID, b.Param(2), th)
	return value.Boolean(BooleanBasicOperator(lhs, op, rhs))
}

// BooleanBasicOperator implements §4.1: if both sides coerce to
// numbers, compare numerically; otherwise EQUAL/NOT_EQUAL compare as
// strings, and ordering falls back to numeric coercion (non-numeric
// treated as 0).
func BooleanBasicOperator(lhs value.Value, op CompareOp, rhs value.Value) bool {
	bothNumeric := lhs.IsNumeric() && rhs.IsNumeric()
	switch op {
	case CmpEqual:
		if bothNumeric {
			return lhs.AsNumber() == rhs.AsNumber()
		}
		return lhs.AsString() == rhs.AsString()
	case CmpNotEqual:
		if bothNumeric {
			return lhs.AsNumber() != rhs.AsNumber()
		}
		return lhs.AsString() != rhs.AsString()
	case CmpGreater:
		return lhs.AsNumber() > rhs.AsNumber()
	case CmpLess:
		return lhs.AsNumber() < rhs.AsNumber()
	case CmpGreaterOrEqual:
		return lhs.AsNumber() >= rhs.AsNumber()
	case CmpLessOrEqual:
		return lhs.AsNumber() <= rhs.AsNumber()
	}
	return false
}
