package script

import (
	"fmt"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/jwebster45206/isekai-sim/pkg/hero"
)

// Validator accumulates structural problems found in a script.
// The embedded script is checked by tests and by cmd/validate; a script that
// fails validation would abort startup.
type Validator struct {
	errors []string
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

var validSlots = map[string]bool{
	SlotWorld:  true,
	SlotOrigin: true,
	SlotPower:  true,
	SlotLegacy: true,
}

var validOutcomes = map[OutcomeKind]bool{
	OutcomeGlory:  true,
	OutcomeScar:   true,
	OutcomeMystic: true,
}

// Validate checks the whole script: ID formats, graph shape, attribute names,
// outcome kinds and accent colors. It returns an error listing every problem.
func (v *Validator) Validate(s *Script) error {
	v.errors = nil

	if s.Start == "" {
		v.addError("script has no start stage")
	} else if _, ok := s.Stages[s.Start]; !ok {
		v.addError(fmt.Sprintf("start stage '%s' does not exist", s.Start))
	}

	for id, stage := range s.Stages {
		v.validateIDFormat("stage ID", id)
		if stage.ID != id {
			v.addError(fmt.Sprintf("stage '%s' declares mismatched ID '%s'", id, stage.ID))
		}
		v.validateStage(s, &stage)
	}

	v.validateGraph(s)

	if len(v.errors) > 0 {
		return fmt.Errorf("script validation errors:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *Validator) validateStage(s *Script, stage *Stage) {
	if stage.Prompt == "" {
		v.addError(fmt.Sprintf("stage '%s' has no prompt", stage.ID))
	}
	if stage.Slot != "" && !validSlots[stage.Slot] {
		v.addError(fmt.Sprintf("stage '%s' has unknown slot '%s'", stage.ID, stage.Slot))
	}
	if stage.Flag != "" {
		v.validateIDFormat("stage flag", stage.Flag)
	}
	if stage.Next != "" {
		if _, ok := s.Stages[stage.Next]; !ok {
			v.addError(fmt.Sprintf("stage '%s' has dangling successor '%s'", stage.ID, stage.Next))
		}
	}
	if len(stage.Options) == 0 {
		v.addError(fmt.Sprintf("stage '%s' offers no options", stage.ID))
	}

	for i := range stage.Options {
		v.validateOption(s, stage, &stage.Options[i])
	}
}

func (v *Validator) validateOption(s *Script, stage *Stage, opt *Option) {
	v.validateIDFormat("option ID", opt.ID)
	if opt.Label == "" {
		v.addError(fmt.Sprintf("option '%s' in stage '%s' has no label", opt.ID, stage.ID))
	}
	if opt.Flag != "" {
		v.validateIDFormat("option flag", opt.Flag)
	}
	if opt.Outcome != "" && !validOutcomes[opt.Outcome] {
		v.addError(fmt.Sprintf("option '%s' in stage '%s' has unknown outcome '%s'", opt.ID, stage.ID, opt.Outcome))
	}
	if opt.Next != "" {
		if _, ok := s.Stages[opt.Next]; !ok {
			v.addError(fmt.Sprintf("option '%s' in stage '%s' has dangling successor '%s'", opt.ID, stage.ID, opt.Next))
		}
	}

	for attr := range opt.Deltas {
		if !hero.IsAttribute(attr) {
			v.addError(fmt.Sprintf("option '%s' in stage '%s' references unknown attribute '%s'", opt.ID, stage.ID, attr))
		}
	}

	if opt.AccentColor != "" {
		if stage.Slot != SlotWorld {
			v.addError(fmt.Sprintf("option '%s' in stage '%s' sets an accent color outside the world stage", opt.ID, stage.ID))
		}
		if _, err := colorful.Hex(opt.AccentColor); err != nil {
			v.addError(fmt.Sprintf("option '%s' in stage '%s' has unparseable accent color '%s'", opt.ID, stage.ID, opt.AccentColor))
		}
	}
}

// validateGraph checks that every path from the start reaches the terminal
// without revisiting a stage. The stage graph must be a directed path/tree.
func (v *Validator) validateGraph(s *Script) {
	if s.Start == "" {
		return
	}
	if _, ok := s.Stages[s.Start]; !ok {
		return
	}

	reached := make(map[string]bool)
	v.walk(s, s.Start, make(map[string]bool), reached)

	for id := range s.Stages {
		if !reached[id] {
			v.addError(fmt.Sprintf("stage '%s' is unreachable from start", id))
		}
	}
}

func (v *Validator) walk(s *Script, id string, onPath, reached map[string]bool) {
	if onPath[id] {
		v.addError(fmt.Sprintf("stage '%s' is reachable twice on one path (cycle)", id))
		return
	}
	stage, ok := s.Stages[id]
	if !ok {
		return
	}
	onPath[id] = true
	reached[id] = true

	successors := make(map[string]bool)
	if stage.Next != "" {
		successors[stage.Next] = true
	}
	for _, opt := range stage.Options {
		if opt.Next != "" {
			successors[opt.Next] = true
		}
	}
	for next := range successors {
		v.walk(s, next, onPath, reached)
	}
	delete(onPath, id)
}

func (v *Validator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}
	if !validIDRegex.MatchString(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *Validator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}
