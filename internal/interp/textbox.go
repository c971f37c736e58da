package interp

import (
	"github.com/entryrt/engine/internal/model"
	"github.com/entryrt/engine/internal/thread"
)

func handleTextWrite(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	text := paramStr(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found || e.ObjectType != model.ObjectTextBox {
		return ok()
	}
	e.Lock()
	e.Text = text
	e.Unlock()
	return ok()
}

func handleTextAppend(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	text := paramStr(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found || e.ObjectType != model.ObjectTextBox {
		return ok()
	}
	e.Lock()
	e.Text += text
	e.Unlock()
	return ok()
}

func handleTextPrepend(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	text := paramStr(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found || e.ObjectType != model.ObjectTextBox {
		return ok()
	}
	e.Lock()
	e.Text = text + e.Text
	e.Unlock()
	return ok()
}

func handleTextChangeFontColor(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	color := paramStr(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found || e.ObjectType != model.ObjectTextBox {
		return ok()
	}
	e.Lock()
	e.FontColor = color
	e.Unlock()
	return ok()
}

func handleTextChangeBgColor(ip *Interp, objectID string, th *thread.State, b *model.Block) Result {
	color := paramStr(ip, objectID, th, b, 0)
	e, found := self(ip, objectID)
	if !found || e.ObjectType != model.ObjectTextBox {
		return ok()
	}
	e.Lock()
	e.BGColor = color
	e.Unlock()
	return ok()
}
