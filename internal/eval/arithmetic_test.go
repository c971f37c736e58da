package eval

import (
	"math"
	"testing"

	"github.com/entryrt/engine/internal/ierrors"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

func TestCalcBasicPlusIsPolymorphic(t *testing.T) {
	got := CalcBasic(value.String("2"), CalcPlus, value.String("3"), "b1", "o1")
	if got.AsString() != "5" {
		t.Errorf("2+3 = %q, want 5 (numeric)", got.AsString())
	}
	got = CalcBasic(value.String("hi"), CalcPlus, value.String("!"), "b1", "o1")
	if got.AsString() != "hi!" {
		t.Errorf(`"hi"+"!" = %q, want "hi!" (string concat)`, got.AsString())
	}
}

func TestCalcBasicMinus(t *testing.T) {
	for _, a := range []float64{-5, 0, 2.5, 100} {
		for _, b := range []float64{-3, 0, 1.25, 40} {
			got := CalcBasic(value.Number(a), CalcMinus, value.Number(b), "b1", "o1")
			if got.AsNumber() != a-b {
				t.Errorf("%v - %v = %v, want %v", a, b, got.AsNumber(), a-b)
			}
		}
	}
}

func TestCalcBasicDivideByZeroPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic on divide by zero")
		}
		if _, ok := r.(*ierrors.ScriptBlockExecutionError); !ok {
			t.Fatalf("expected *ierrors.ScriptBlockExecutionError, got %T", r)
		}
	}()
	CalcBasic(value.Number(1), CalcDivide, value.Number(0), "b1", "o1")
}

func TestCalcRandWithinBounds(t *testing.T) {
	th := &thread.State{ID: 1}
	sum := 0.0
	const n = 10000
	for i := 0; i < n; i++ {
		v := CalcRand(th, 1, 10, nil)
		if v < 1 || v > 10 {
			t.Fatalf("draw %v out of [1,10]", v)
		}
		sum += v
	}
	mean := sum / n
	if math.Abs(mean-5.5) > 0.2 {
		t.Errorf("mean %v too far from 5.5", mean)
	}
}

func TestCalcRandMinEqualsMax(t *testing.T) {
	th := &thread.State{ID: 1}
	if got := CalcRand(th, 4, 4, nil); got != 4 {
		t.Errorf("CalcRand(4,4) = %v, want 4", got)
	}
}

func TestCalcRandMinGreaterThanMax(t *testing.T) {
	th := &thread.State{ID: 1}
	if got := CalcRand(th, 9, 2, nil); got != 9 {
		t.Errorf("CalcRand(9,2) = %v, want 9 (min)", got)
	}
}

func TestCalcOperationTrigDegreeVariants(t *testing.T) {
	if got := CalcOperation(90, MathSinDeg, nil); math.Abs(got-1) > 1e-9 {
		t.Errorf("sin_degree(90) = %v, want 1", got)
	}
	if got := CalcOperation(1, MathAsinDeg, nil); math.Abs(got-90) > 1e-9 {
		t.Errorf("asin_degree(1) = %v, want 90", got)
	}
}

func TestCalcOperationDomainErrorsYieldNaN(t *testing.T) {
	if !math.IsNaN(CalcOperation(-4, MathSqrt, nil)) {
		t.Error("sqrt(-4) should be NaN")
	}
	if !math.IsNaN(CalcOperation(0, MathLog, nil)) {
		t.Error("log(0) should be NaN")
	}
	if !math.IsNaN(CalcOperation(2, MathAsin, nil)) {
		t.Error("asin(2) should be NaN")
	}
}

func TestQuotientAndModFloorSemantics(t *testing.T) {
	if got := QuotientAndMod(-7, OpQuotient, 2, nil); got != -4 {
		t.Errorf("floor(-7/2) = %v, want -4", got)
	}
	if got := QuotientAndMod(-7, OpMod, 2, nil); got != 1 {
		t.Errorf("-7 mod 2 = %v, want 1", got)
	}
}

func TestQuotientAndModDivideByZero(t *testing.T) {
	if got := QuotientAndMod(5, OpQuotient, 0, nil); !math.IsNaN(got) {
		t.Errorf("quotient by zero = %v, want NaN", got)
	}
}
