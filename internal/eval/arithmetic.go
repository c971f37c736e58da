package eval

import (
	"math"
	"math/rand"

	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

func evalCalcBasic(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	lhs := Eval(env, objectID, b.Param(0), th)
	op := CalcOp(literalOf(b.Param(1)))
	rhs := Eval(env, objectID, b.Param(2), th)
	return CalcBasic(lhs, op, rhs, b.ID, objectID)
}

// CalcBasic implements §4.1's PLUS/MINUS/MULTI/DIVIDE. PLUS is
// polymorphic: numeric-coercible operands add as numbers, else they
// concatenate as strings. DIVIDE by zero throws per §7.
func CalcBasic(lhs value.Value, op CalcOp, rhs value.Value, blockID, objectID string) value.Value {
	switch op {
	case CalcPlus:
		if lhs.IsNumeric() && rhs.IsNumeric() {
			return value.Number(lhs.AsNumber() + rhs.AsNumber())
		}
		return value.String(lhs.AsString() + rhs.AsString())
	case CalcMinus:
		return value.Number(lhs.AsNumber() - rhs.AsNumber())
	case CalcMulti:
		return value.Number(lhs.AsNumber() * rhs.AsNumber())
	case CalcDivide:
		r := rhs.AsNumber()
		if r == 0 {
			throwDivideByZero(blockID, objectID)
		}
		return value.Number(lhs.AsNumber() / r)
	}
	return value.Empty
}

func evalCalcRand(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	min := Eval(env, objectID, b.Param(0), th).AsNumber()
	max := Eval(env, objectID, b.Param(1), th).AsNumber()
	return value.Number(CalcRand(th, min, max, env))
}

// CalcRand returns a uniform draw in [min,max] using the calling
// thread's own RNG (§4.1: "each executor thread uses a thread-local
// RNG"). min==max short-circuits; min>max logs a warning and returns
// min.
func CalcRand(th *thread.State, min, max float64, env *Env) float64 {
	if min == max {
		return min
	}
	if min > max {
		if env != nil {
			env.warn("calc_rand: min > max", map[string]any{"min": min, "max": max})
		}
		return min
	}
	rng := threadRNG(th)
	return min + rng.Float64()*(max-min)
}

func threadRNG(th *thread.State) *rand.Rand {
	if th == nil {
		return rand.New(rand.NewSource(1))
	}
	if th.Rng == nil {
		th.Rng = rand.New(rand.NewSource(rand.Int63() ^ int64(th.ID)))
	}
	return th.Rng
}

func evalCalcOperation(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	v := Eval(env, objectID, b.Param(0), th).AsNumber()
	op := MathOp(literalOf(b.Param(1)))
	return value.Number(CalcOperation(v, op, env))
}

const degToRad = math.Pi / 180
const radToDeg = 180 / math.Pi

// CalcOperation implements §4.1's math ops, including the _degree
// trig variants: degrees are converted to radians before sin/cos/tan,
// and the arc-trig results are converted back to degrees after.
// Domain violations (sqrt<0, log<=0, arc-trig outside [-1,1]) yield
// NaN with a logged warning rather than a thrown error.
func CalcOperation(v float64, op MathOp, env *Env) float64 {
	warn := func(msg string) {
		if env != nil {
			env.warn(msg, map[string]any{"value": v, "op": string(op)})
		}
	}
	switch op {
	case MathAbs:
		return math.Abs(v)
	case MathFloor:
		return math.Floor(v)
	case MathCeil:
		return math.Ceil(v)
	case MathRound:
		return math.Round(v)
	case MathSqrt:
		if v < 0 {
			warn("sqrt of negative")
			return math.NaN()
		}
		return math.Sqrt(v)
	case MathSin:
		return math.Sin(v)
	case MathCos:
		return math.Cos(v)
	case MathTan:
		return math.Tan(v)
	case MathSinDeg:
		return math.Sin(v * degToRad)
	case MathCosDeg:
		return math.Cos(v * degToRad)
	case MathTanDeg:
		return math.Tan(v * degToRad)
	case MathAsin:
		if v < -1 || v > 1 {
			warn("asin out of domain")
			return math.NaN()
		}
		return math.Asin(v)
	case MathAcos:
		if v < -1 || v > 1 {
			warn("acos out of domain")
			return math.NaN()
		}
		return math.Acos(v)
	case MathAtan:
		return math.Atan(v)
	case MathAsinDeg:
		if v < -1 || v > 1 {
			warn("asin out of domain")
			return math.NaN()
		}
		return math.Asin(v) * radToDeg
	case MathAcosDeg:
		if v < -1 || v > 1 {
			warn("acos out of domain")
			return math.NaN()
		}
		return math.Acos(v) * radToDeg
	case MathAtanDeg:
		return math.Atan(v) * radToDeg
	case MathLog:
		if v <= 0 {
			warn("log of non-positive")
			return math.NaN()
		}
		return math.Log10(v)
	case MathLn:
		if v <= 0 {
			warn("ln of non-positive")
			return math.NaN()
		}
		return math.Log(v)
	}
	return math.NaN()
}

func evalQuotientAndMod(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	a := Eval(env, objectID, b.Param(0), th).AsNumber()
	op := QuotModOp(literalOf(b.Param(1)))
	bb := Eval(env, objectID, b.Param(2), th).AsNumber()
	return value.Number(QuotientAndMod(a, op, bb, env))
}

// QuotientAndMod implements §4.1's floor-semantics integer div/mod;
// division by zero yields NaN with a logged warning, not a throw.
func QuotientAndMod(a float64, op QuotModOp, b float64, env *Env) float64 {
	if b == 0 {
		if env != nil {
			env.warn("quotient_and_mod: division by zero", map[string]any{"a": a})
		}
		return math.NaN()
	}
	switch op {
	case OpQuotient:
		return math.Floor(a / b)
	case OpMod:
		return a - b*math.Floor(a/b)
	}
	return math.NaN()
}

func literalOf(p *model.Param) string {
	if p == nil || p.IsBlock() {
		return ""
	}
	if s, ok := p.Literal.(string); ok {
		return s
	}
	return ""
}
