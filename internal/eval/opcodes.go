package eval

// Reporter opcodes named in §4.1.
const (
	OpCalcBasic        = "calc_basic"
	OpCalcRand         = "calc_rand"
	OpCalcOperation    = "calc_operation"
	OpQuotientAndMod   = "quotient_and_mod"
	OpBooleanBasicOp   = "boolean_basic_operator"
	OpBooleanAnd       = "boolean_and"
	OpBooleanOr        = "boolean_or"
	OpBooleanNot       = "boolean_not"

	OpLength          = "get_string_length"
	OpReverse         = "reverse_of_string"
	OpConcatenate     = "combine_something"
	OpCharAt          = "char_at"
	OpSubstring       = "get_sub_string"
	OpCountMatches     = "count_match_string"
	OpIndexOf         = "index_of_string"
	OpReplace         = "replace_string"
	OpToUpper         = "change_string_case_upper"
	OpToLower         = "change_string_case_lower"

	OpRGBToHex = "change_rgb_to_hex"
	OpHexToRGB = "change_hex_to_rgb"

	OpTimerValue      = "get_project_timer_value"
	OpGetDate         = "get_date"
	OpMouseX          = "get_pictures_x"
	OpMouseY          = "get_pictures_y"
	OpCoordinateObject = "coordinate_object"
	OpCostumeName     = "get_picture_name"
	OpCostumeIndex    = "get_picture_index"
	OpSoundDuration   = "get_sound_duration"
	OpSoundVolume     = "get_sound_volume"
	OpSoundSpeed      = "get_sound_speed"
	OpVariableValue   = "get_variable"
	OpAnswer          = "get_canvas_input_value"
	OpListValueAt     = "value_of_index_from_list"
	OpListLength      = "length_of_list"
	OpListContains    = "is_included_in_list"

	OpIsClicked       = "is_clicked"
	OpIsObjectClicked = "is_object_clicked"
	OpIsPressSomeKey  = "is_press_some_key"
	OpReachSomething  = "reach_something"
)

// CalcOp enumerates calc_basic's operator param.
type CalcOp string

const (
	CalcPlus   CalcOp = "PLUS"
	CalcMinus  CalcOp = "MINUS"
	CalcMulti  CalcOp = "MULTI"
	CalcDivide CalcOp = "DIVIDE"
)

// CompareOp enumerates boolean_basic_operator's operator param.
type CompareOp string

const (
	CmpEqual           CompareOp = "EQUAL"
	CmpNotEqual        CompareOp = "NOT_EQUAL"
	CmpGreater         CompareOp = "GREATER"
	CmpLess            CompareOp = "LESS"
	CmpGreaterOrEqual  CompareOp = "GREATER_OR_EQUAL"
	CmpLessOrEqual     CompareOp = "LESS_OR_EQUAL"
)

// MathOp enumerates calc_operation's operator param, including the
// "_degree" suffixed trig variants.
type MathOp string

const (
	MathAbs   MathOp = "abs"
	MathFloor MathOp = "floor"
	MathCeil  MathOp = "ceil"
	MathRound MathOp = "round"
	MathSqrt  MathOp = "sqrt"
	MathSin   MathOp = "sin"
	MathCos   MathOp = "cos"
	MathTan   MathOp = "tan"
	MathAsin  MathOp = "asin"
	MathAcos  MathOp = "acos"
	MathAtan  MathOp = "atan"
	MathLog   MathOp = "log"
	MathLn    MathOp = "ln"

	MathSinDeg  MathOp = "sin_degree"
	MathCosDeg  MathOp = "cos_degree"
	MathTanDeg  MathOp = "tan_degree"
	MathAsinDeg MathOp = "asin_degree"
	MathAcosDeg MathOp = "acos_degree"
	MathAtanDeg MathOp = "atan_degree"
)

// QuotModOp enumerates quotient_and_mod's operator param.
type QuotModOp string

const (
	OpQuotient QuotModOp = "QUOTIENT"
	OpMod      QuotModOp = "MOD"
)
