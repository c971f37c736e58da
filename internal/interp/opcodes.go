package interp

// Statement opcodes named in §4.2.
const (
	OpMoveDirection     = "move_direction"
	OpMoveX             = "move_x"
	OpMoveY             = "move_y"
	OpLocateX           = "locate_x"
	OpLocateY           = "locate_y"
	OpLocateXY          = "locate_xy"
	OpLocate            = "locate"
	OpMoveXYTime        = "move_xy_time"
	OpLocateXYTime      = "locate_xy_time"
	OpLocateObjectTime  = "locate_object_time"
	OpRotateRelative    = "rotate_relative"
	OpRotateAbsolute    = "rotate_absolute"
	OpDirectionRelative = "direction_relative"
	OpDirectionAbsolute = "direction_absolute"
	OpRotateByTime      = "rotate_by_time"
	OpBounceWall        = "bounce_wall"

	OpShow               = "show"
	OpHide               = "hide"
	OpDialog             = "dialog"
	OpChangeToSomeShape  = "change_to_some_shape"
	OpChangeToNextShape  = "change_to_next_shape"
	OpAddEffectAmount    = "add_effect_amount"
	OpChangeEffectAmount = "change_effect_amount"
	OpEraseAllEffects    = "erase_all_effects"
	OpChangeScaleSize    = "change_scale_size"
	OpSetScaleSize       = "set_scale_size"
	OpStretchScaleX      = "stretch_scale_x"
	OpStretchScaleY      = "stretch_scale_y"
	OpResetScale         = "reset_scale"
	OpFlipX              = "flip_x"
	OpFlipY              = "flip_y"
	OpChangeObjectIndex  = "change_object_index"

	OpPlaySound                   = "play_sound"
	OpPlaySoundAndWait            = "play_sound_and_wait"
	OpPlaySoundForDuration        = "play_sound_for_duration"
	OpPlaySoundForDurationAndWait = "play_sound_for_duration_and_wait"
	OpPlaySoundFromTo             = "play_sound_from_to"
	OpPlaySoundFromToAndWait      = "play_sound_from_to_and_wait"
	OpSoundVolumeChange           = "sound_volume_change"
	OpSoundVolumeSet              = "sound_volume_set"
	OpSoundSpeedChange            = "sound_speed_change"
	OpSoundSpeedSet               = "sound_speed_set"
	OpSoundSilentAll              = "sound_silent_all"
	OpPlayBGM                     = "play_bgm"

	OpSetVariable         = "set_variable"
	OpChangeVariable      = "change_variable"
	OpAddValueToList      = "add_value_to_list"
	OpRemoveValueFromList = "remove_value_from_list"
	OpInsertValueToList   = "insert_value_to_list"
	OpReplaceValueInList  = "replace_value_to_list"
	OpAskAndWait          = "ask_and_wait"

	OpWaitSecond      = "wait_second"
	OpRepeatBasic     = "repeat_basic"
	OpRepeatInf       = "repeat_inf"
	OpRepeatWhileTrue = "repeat_while_true"
	OpStopRepeat      = "stop_repeat"
	OpContinueRepeat  = "continue_repeat"
	OpIf              = "_if"
	OpIfElse          = "if_else"
	OpWaitUntilTrue   = "wait_until_true"
	OpStopObject      = "stop_object"
	OpRestartProject  = "restart_project"
	OpCreateClone     = "create_clone"
	OpDeleteClone     = "delete_clone"
	OpRemoveAllClones = "remove_all_clones"

	OpTextWrite           = "text_write"
	OpTextAppend          = "text_append"
	OpTextPrepend         = "text_prepend"
	OpTextChangeFontColor = "text_change_font_color"
	OpTextChangeBgColor   = "text_change_bg_color"

	OpMessageCast        = "message_cast"
	OpStartScene         = "start_scene"
	OpStartNeighborScene = "start_neighbor_scene"
)

// EffectKind enumerates add_effect_amount/change_effect_amount's kind param.
type EffectKind string

const (
	EffectColor        EffectKind = "color"
	EffectBrightness   EffectKind = "brightness"
	EffectTransparency EffectKind = "transparency"
)

// StopTarget enumerates stop_object's target param.
type StopTarget string

const (
	StopThis                    StopTarget = "thisObject"
	StopOtherObjects             StopTarget = "otherObjects"
	StopAll                      StopTarget = "all"
	StopThisThread               StopTarget = "thisThread"
	StopOtherThreadsOfThisObject StopTarget = "otherThreadsOfThisObject"
)

// SilentTarget enumerates sound_silent_all's target param.
type SilentTarget string

const (
	SilentAll           SilentTarget = "all"
	SilentThisOnly       SilentTarget = "thisOnly"
	SilentOtherObjects   SilentTarget = "other_objects"
)
