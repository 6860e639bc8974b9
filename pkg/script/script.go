// Package script holds the narrative content for the game: the stages the
// player walks through, the options offered at each stage, and the framing
// text spoken by Gem. Content is embedded at build time; there is no runtime
// authoring surface.
package script

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

// OutcomeKind classifies what an adventure option resolves to.
type OutcomeKind string

const (
	OutcomeGlory  OutcomeKind = "gloria"
	OutcomeScar   OutcomeKind = "cicatriz"
	OutcomeMystic OutcomeKind = "mistico"
)

// Slot names the hero field a choice stage fills.
const (
	SlotWorld  = "world"
	SlotOrigin = "origin"
	SlotPower  = "power"
	SlotLegacy = "legacy"
)

// Option is a single selectable entry at a stage.
type Option struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Description string         `json:"description,omitempty"`
	Deltas      map[string]int `json:"deltas,omitempty"`       // attribute deltas applied on selection
	Outcome     OutcomeKind    `json:"outcome,omitempty"`      // set on adventure-event options only
	Flag        string         `json:"flag,omitempty"`         // story flag granted by this option
	Next        string         `json:"next,omitempty"`         // overrides the stage successor for branching
	AccentColor string         `json:"accent_color,omitempty"` // hex color, world options only
}

// Stage is one story beat: a prompt plus its options and successor.
type Stage struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Intro   string   `json:"intro,omitempty"` // transition text shown when the stage is entered
	Prompt  string   `json:"prompt"`
	Slot    string   `json:"slot,omitempty"` // world|origin|power|legacy, empty for event stages
	Flag    string   `json:"flag,omitempty"` // story flag granted on stage completion
	Next    string   `json:"next,omitempty"` // successor stage ID; empty means terminal
	Options []Option `json:"options"`
}

// Script is the full narrative content for one game.
type Script struct {
	Name           string           `json:"name"`
	Banner         string           `json:"banner"`
	Opening        string           `json:"opening"`
	Greeting       string           `json:"greeting"`
	NamePrompt     string           `json:"name_prompt"`
	NameAdmonition string           `json:"name_admonition"`
	ChoicePrompt   string           `json:"choice_prompt"`
	InvalidChoice  string           `json:"invalid_choice"`
	Farewell       string           `json:"farewell"`
	Start          string           `json:"start"`
	Stages         map[string]Stage `json:"stages"`
}

// Stage returns the stage with the given ID.
func (s *Script) Stage(id string) (Stage, bool) {
	st, ok := s.Stages[id]
	return st, ok
}

// Path walks successor links from the start stage, following the stage-level
// Next only. It is the canonical stage order for the shipped linear script.
func (s *Script) Path() []string {
	var path []string
	seen := make(map[string]bool)
	for id := s.Start; id != "" && !seen[id]; {
		seen[id] = true
		path = append(path, id)
		st, ok := s.Stages[id]
		if !ok {
			break
		}
		id = st.Next
	}
	return path
}

//go:embed script.json
var scriptFS embed.FS

var (
	defaultOnce   sync.Once
	defaultScript *Script
	defaultErr    error
)

// Default returns the embedded game script. The embedded content is validated
// by tests and by cmd/validate, so an error here means a broken build.
func Default() (*Script, error) {
	defaultOnce.Do(func() {
		data, err := scriptFS.ReadFile("script.json")
		if err != nil {
			defaultErr = fmt.Errorf("failed to read embedded script: %w", err)
			return
		}
		var s Script
		if err := json.Unmarshal(data, &s); err != nil {
			defaultErr = fmt.Errorf("failed to parse embedded script: %w", err)
			return
		}
		defaultScript = &s
	})
	return defaultScript, defaultErr
}
