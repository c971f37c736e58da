package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
	"github.com/entryrt/engine/internal/value"
)

// RGBToHex clamps and rounds each channel to [0,255] and formats
// "#RRGGBB".
func RGBToHex(r, g, b float64) string {
	clamp := func(v float64) int {
		v = math.Round(v)
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return int(v)
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

func evalRGBToHex(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	r := Eval(env, objectID, b.Param(0), th).AsNumber()
	g := Eval(env, objectID, b.Param(1), th).AsNumber()
	bl := Eval(env, objectID, b.Param(2), th).AsNumber()
	return value.String(RGBToHex(r, g, bl))
}

// HexToRGBRedChannel returns the R channel only as a number. This is
// the documented oddity inherited from the source (§9): a hex→rgb
// conversion that exposes just the red byte, preserved as contract
// rather than "fixed" into a triple.
func HexToRGBRedChannel(hex string) float64 {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) < 2 {
		return 0
	}
	n, err := strconv.ParseInt(hex[0:2], 16, 32)
	if err != nil {
		return 0
	}
	return float64(n)
}

func evalHexToRGB(env *Env, objectID string, b *model.Block, th *thread.State) value.Value {
	hex := Eval(env, objectID, b.Param(0), th).AsString()
	return value.Number(HexToRGBRedChannel(hex))
}
