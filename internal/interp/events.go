package interp

import (
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

func handleMessageCast(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	messageID := paramStr(ip, objectID, th, b, 0)
	ip.Host.CastMessage(messageID)
	return ok()
}

func handleStartScene(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	sceneID := paramStr(ip, objectID, th, b, 0)
	ip.Host.StartScene(sceneID)
	th.TerminateRequested = true
	return ok()
}

// handleStartNeighborScene implements start_neighbor_scene("next"|"prev"),
// which moves to the adjacent scene in project order and, like
// start_scene, ends every thread currently running in the old scene.
func handleStartNeighborScene(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	direction := paramStr(ip, objectID, th, b, 0)
	ip.Host.NextScene(direction)
	th.TerminateRequested = true
	return ok()
}
