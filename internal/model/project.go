package model

import (
	"encoding/json"
	"fmt"
)

// Picture is one costume entry of a sprite.
type Picture struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Filename string `json:"filename"`
	FileURL  string `json:"fileurl"`
}

// Sound is one sound-bank entry of a sprite.
type Sound struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Filename string  `json:"filename"`
	FileURL  string  `json:"fileurl"`
	Ext      string  `json:"ext"`
	Duration float64 `json:"duration"`
}

// SpriteData groups the costume/sound banks of a sprite object.
type SpriteData struct {
	Pictures []Picture `json:"pictures"`
	Sounds   []Sound   `json:"sounds"`
}

// EntityData is the authored initial transform/visual state of an
// object, as loaded from the project file (before any live mutation).
type EntityData struct {
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	RegX             float64 `json:"regX"`
	RegY             float64 `json:"regY"`
	ScaleX           float64 `json:"scaleX"`
	ScaleY           float64 `json:"scaleY"`
	Rotation         float64 `json:"rotation"`
	Direction        float64 `json:"direction"`
	Width            float64 `json:"width"`
	Height           float64 `json:"height"`
	Visible          bool    `json:"visible"`
	Text             string  `json:"text,omitempty"`
	Colour           string  `json:"colour,omitempty"`
	Font             string  `json:"font,omitempty"`
	TextAlign        string  `json:"textAlign,omitempty"`
}

// ObjectType distinguishes stage sprites from textbox objects.
type ObjectType string

const (
	ObjectSprite  ObjectType = "sprite"
	ObjectTextBox ObjectType = "textBox"
)

// ObjectDef is one authored project object: static data plus its
// script source. It is distinct from the live Entity built from it.
type ObjectDef struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	ObjectType        ObjectType `json:"objectType"`
	Scene             string     `json:"scene"`
	SelectedPictureID string     `json:"selectedPictureId"`
	Sprite            SpriteData `json:"sprite"`
	Entity            EntityData `json:"entity"`
	ScriptRaw         string     `json:"script"`
	Scripts           []*Script  `json:"-"`
}

// SceneDef is one authored scene.
type SceneDef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VariableDef is one authored variable or list.
type VariableDef struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Value        string   `json:"value"`
	VariableType string   `json:"variableType"`
	Object       string   `json:"object,omitempty"`
	IsCloud      bool     `json:"isCloud"`
	Visible      bool     `json:"visible"`
	Array        []string `json:"array,omitempty"`
}

// SpecialConfig carries cosmetic project-wide UI toggles consumed by
// the (external) HUD; the core only reads BrandName for log banners.
type SpecialConfig struct {
	BrandName        string `json:"brandName"`
	ShowProjectNameUI bool  `json:"showProjectNameUI"`
	ShowZoomSliderUI bool   `json:"showZoomSliderUI"`
	ShowFPS          bool   `json:"showFPS"`
}

// StartRef is either a bare scene id string or {"sceneId": "..."}.
type StartRef struct {
	SceneID string
}

func (s *StartRef) UnmarshalJSON(data []byte) error {
	var obj struct {
		SceneID string `json:"sceneId"`
	}
	if err := json.Unmarshal(data, &obj); err == nil && obj.SceneID != "" {
		s.SceneID = obj.SceneID
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		s.SceneID = str
		return nil
	}
	return fmt.Errorf("start: unrecognized shape")
}

// Project is the fully decoded project file.
type Project struct {
	Name          string        `json:"name"`
	Speed         int           `json:"speed"`
	SpecialConfig SpecialConfig `json:"specialConfig"`
	Objects       []*ObjectDef  `json:"objects"`
	Scenes        []SceneDef    `json:"scenes"`
	Start         *StartRef     `json:"start"`
	StartScene    *StartRef     `json:"startScene"`
	Variables     []VariableDef `json:"variables"`
}

// DefaultFPS is used when the project omits "speed".
const DefaultFPS = 60

// TargetFPS returns the project's configured tick rate, defaulting
// per §6.
func (p *Project) TargetFPS() int {
	if p.Speed > 0 {
		return p.Speed
	}
	return DefaultFPS
}

// StartSceneID resolves whichever of "start"/"startScene" the project
// supplied.
func (p *Project) StartSceneID() string {
	if p.Start != nil && p.Start.SceneID != "" {
		return p.Start.SceneID
	}
	if p.StartScene != nil && p.StartScene.SceneID != "" {
		return p.StartScene.SceneID
	}
	if len(p.Scenes) > 0 {
		return p.Scenes[0].ID
	}
	return ""
}

// Parse decodes a project file and its per-object nested script
// strings. The "script" field is itself a JSON string encoding
// `[ [block, ...], ... ]` — an array of top-level scripts, each an
// ordered block sequence.
func Parse(data []byte) (*Project, error) {
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	for _, obj := range p.Objects {
		if obj.ScriptRaw == "" {
			continue
		}
		var scriptLists [][]*Block
		if err := json.Unmarshal([]byte(obj.ScriptRaw), &scriptLists); err != nil {
			return nil, fmt.Errorf("object %s: decode nested script: %w", obj.ID, err)
		}
		for _, blocks := range scriptLists {
			if len(blocks) == 0 {
				continue
			}
			obj.Scripts = append(obj.Scripts, &Script{Blocks: blocks})
		}
	}
	return &p, nil
}
