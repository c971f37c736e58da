package interp

import (
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

func handlePlaySound(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	soundID := paramStr(ip, objectID, th, b, 0)
	if err := ip.Env.Audio.Play(objectID, soundID, 0, -1); err != nil {
		ip.Env.Log.Warn("play_sound: asset missing", map[string]any{"sound": soundID})
	}
	return ok()
}

func handlePlaySoundForDuration(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	soundID := paramStr(ip, objectID, th, b, 0)
	seconds := param(ip, objectID, th, b, 1)
	if err := ip.Env.Audio.Play(objectID, soundID, 0, seconds); err != nil {
		ip.Env.Log.Warn("play_sound_for_duration: asset missing", map[string]any{"sound": soundID})
	}
	return ok()
}

func handlePlaySoundFromTo(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	soundID := paramStr(ip, objectID, th, b, 0)
	from := param(ip, objectID, th, b, 1)
	to := param(ip, objectID, th, b, 2)
	if err := ip.Env.Audio.Play(objectID, soundID, from, to); err != nil {
		ip.Env.Log.Warn("play_sound_from_to: asset missing", map[string]any{"sound": soundID})
	}
	return ok()
}

// startAndWait begins (or, on resume, finishes) one of the *_and_wait
// sound variants. The per-block started flag lives in th.BodyCursor,
// keyed by this block's id, since play_*_and_wait blocks never nest a
// statement body of their own and so never otherwise use that slot.
func (ip *Interp) startAndWait(objectID string, th *thread.State, b *model.Block, soundID string, from, to float64) Result {
	if _, started := th.BodyCursor[b.ID]; started {
		delete(th.BodyCursor, b.ID)
		return ok()
	}
	th.BodyCursor[b.ID] = 1
	if err := ip.Env.Audio.Play(objectID, soundID, from, to); err != nil {
		ip.Env.Log.Warn("play_sound_and_wait: asset missing", map[string]any{"sound": soundID})
		delete(th.BodyCursor, b.ID)
		return ok()
	}
	th.SetWait(thread.SoundFinish, b.ID, 0)
	th.WaitSoundOwner = objectID
	th.WaitSoundID = soundID
	return Result{Outcome: Suspended}
}

func handlePlaySoundAndWait(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	soundID := paramStr(ip, objectID, th, b, 0)
	return ip.startAndWait(objectID, th, b, soundID, 0, -1)
}

func handlePlaySoundForDurationAndWait(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	soundID := paramStr(ip, objectID, th, b, 0)
	seconds := param(ip, objectID, th, b, 1)
	return ip.startAndWait(objectID, th, b, soundID, 0, seconds)
}

func handlePlaySoundFromToAndWait(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	soundID := paramStr(ip, objectID, th, b, 0)
	from := param(ip, objectID, th, b, 1)
	to := param(ip, objectID, th, b, 2)
	return ip.startAndWait(objectID, th, b, soundID, from, to)
}

func handleSoundVolumeChange(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	pct := param(ip, objectID, th, b, 0)
	ip.Env.SetSoundVolume(ip.Env.SoundVolume() + pct/100)
	return ok()
}

func handleSoundVolumeSet(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	pct := param(ip, objectID, th, b, 0)
	ip.Env.SetSoundVolume(pct / 100)
	return ok()
}

func handleSoundSpeedChange(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	delta := param(ip, objectID, th, b, 0)
	ip.Env.SetSoundSpeed(ip.Env.SoundSpeed() + delta)
	return ok()
}

func handleSoundSpeedSet(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	v := param(ip, objectID, th, b, 0)
	ip.Env.SetSoundSpeed(v)
	return ok()
}

func handleSoundSilentAll(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	target := SilentTarget(paramStr(ip, objectID, th, b, 0))
	switch target {
	case SilentThisOnly:
		ip.Env.Audio.StopOwner(objectID)
	case SilentOtherObjects:
		ip.Env.Audio.StopAll()
		// StopAll covers every owner; re-note this is an approximation of
		// "everyone but me" since the backend interface has no negated
		// stop-all-but. Acceptable here: Non-goals exclude precise mixing.
	default:
		ip.Env.Audio.StopAll()
	}
	return ok()
}

func handlePlayBGM(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	soundID := paramStr(ip, objectID, th, b, 0)
	ip.Env.Audio.StopBGM()
	if err := ip.Env.Audio.PlayBGM(soundID); err != nil {
		ip.Env.Log.Warn("play_bgm: asset missing", map[string]any{"sound": soundID})
	}
	return ok()
}
