package eval

import (
	"testing"

	"github.com/entryrt/engine/internal/value"
)

func TestBooleanBasicOperatorNumeric(t *testing.T) {
	if !BooleanBasicOperator(value.String("2"), CmpLess, value.String("10")) {
		t.Error(`"2" < "10" should be true under numeric comparison`)
	}
	if BooleanBasicOperator(value.String("2"), CmpGreater, value.String("10")) {
		t.Error(`"2" > "10" should be false`)
	}
}

func TestBooleanBasicOperatorStringEquality(t *testing.T) {
	if !BooleanBasicOperator(value.String("abc"), CmpEqual, value.String("abc")) {
		t.Error(`"abc" == "abc" should be true`)
	}
	if BooleanBasicOperator(value.String("abc"), CmpNotEqual, value.String("abc")) {
		t.Error(`"abc" != "abc" should be false`)
	}
}

func TestBooleanBasicOperatorNonNumericOrderingFallsBackToZero(t *testing.T) {
	// Neither side is numeric, so ordering falls back to treating both
	// as 0 per §4.1's documented fallback.
	if BooleanBasicOperator(value.String("abc"), CmpLess, value.String("xyz")) {
		t.Error(`non-numeric "<" should fall back to 0 < 0 == false`)
	}
}

func TestRGBToHexClampsAndRounds(t *testing.T) {
	if got := RGBToHex(255, 0, 128); got != "#ff0080" {
		t.Errorf("RGBToHex(255,0,128) = %q, want #ff0080", got)
	}
	if got := RGBToHex(-10, 300, 127.6); got != "#00ff80" {
		t.Errorf("RGBToHex(-10,300,127.6) = %q, want #00ff80", got)
	}
}

func TestHexToRGBReturnsRedChannelOnly(t *testing.T) {
	if got := HexToRGBRedChannel("#ff0080"); got != 255 {
		t.Errorf("HexToRGBRedChannel(#ff0080) = %v, want 255", got)
	}
}
