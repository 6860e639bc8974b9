package script

import (
	"testing"

	"github.com/jwebster45206/isekai-sim/pkg/hero"
)

func TestDefault_Loads(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	if s.Start != "mundo" {
		t.Errorf("Expected start stage 'mundo', got %q", s.Start)
	}
	if len(s.Stages) != 7 {
		t.Errorf("Expected 7 stages, got %d", len(s.Stages))
	}
	for _, text := range []string{s.Banner, s.Opening, s.Greeting, s.NamePrompt, s.NameAdmonition, s.Farewell} {
		if text == "" {
			t.Error("Expected all framing texts to be present")
		}
	}
}

func TestDefault_Valid(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}
	v := &Validator{}
	if err := v.Validate(s); err != nil {
		t.Errorf("Embedded script failed validation: %v", err)
	}
}

func TestDefault_Path(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}

	expected := []string{
		"mundo",
		"origem",
		"poder",
		"legado",
		"festival_da_reencarnacao",
		"biblioteca_serpentina",
		"provacao_do_crepusculo",
	}
	path := s.Path()
	if len(path) != len(expected) {
		t.Fatalf("Expected path of %d stages, got %d", len(expected), len(path))
	}
	for i, id := range expected {
		if path[i] != id {
			t.Errorf("Expected stage %d to be %q, got %q", i, id, path[i])
		}
	}

	last, _ := s.Stage(path[len(path)-1])
	if last.Next != "" {
		t.Errorf("Expected final stage to be terminal, got successor %q", last.Next)
	}
}

func TestDefault_ChoiceStages(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}

	tests := []struct {
		stageID string
		slot    string
		flag    string
	}{
		{"mundo", SlotWorld, "mundo_escolhido"},
		{"origem", SlotOrigin, "origem_escolhida"},
		{"poder", SlotPower, "poder_escolhido"},
		{"legado", SlotLegacy, "legado_escolhido"},
	}

	for _, tt := range tests {
		t.Run(tt.stageID, func(t *testing.T) {
			stage, ok := s.Stage(tt.stageID)
			if !ok {
				t.Fatalf("Stage %q not found", tt.stageID)
			}
			if stage.Slot != tt.slot {
				t.Errorf("Expected slot %q, got %q", tt.slot, stage.Slot)
			}
			if stage.Flag != tt.flag {
				t.Errorf("Expected flag %q, got %q", tt.flag, stage.Flag)
			}
			if len(stage.Options) != 3 {
				t.Errorf("Expected 3 options, got %d", len(stage.Options))
			}
			for _, opt := range stage.Options {
				if len(opt.Deltas) == 0 {
					t.Errorf("Expected option %q to carry deltas", opt.ID)
				}
				for attr := range opt.Deltas {
					if !hero.IsAttribute(attr) {
						t.Errorf("Option %q references unknown attribute %q", opt.ID, attr)
					}
				}
			}
		})
	}
}

func TestDefault_WorldDeltas(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}

	stage, ok := s.Stage("mundo")
	if !ok {
		t.Fatal("Stage 'mundo' not found")
	}

	first := stage.Options[0]
	if first.Label != "Reino de Aerilon" {
		t.Errorf("Expected first world to be Reino de Aerilon, got %q", first.Label)
	}
	if first.Deltas[hero.AttrMana] != 10 || first.Deltas[hero.AttrCarisma] != 5 {
		t.Errorf("Unexpected deltas for Reino de Aerilon: %v", first.Deltas)
	}
	if first.AccentColor == "" {
		t.Error("Expected world options to carry accent colors")
	}
}

func TestDefault_EventStages(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("Default returned error: %v", err)
	}

	events := []string{"festival_da_reencarnacao", "biblioteca_serpentina", "provacao_do_crepusculo"}
	for _, id := range events {
		t.Run(id, func(t *testing.T) {
			stage, ok := s.Stage(id)
			if !ok {
				t.Fatalf("Stage %q not found", id)
			}
			if stage.Slot != "" {
				t.Errorf("Expected event stage to have no slot, got %q", stage.Slot)
			}

			kinds := make(map[OutcomeKind]bool)
			for _, opt := range stage.Options {
				if opt.Outcome == "" {
					t.Errorf("Expected option %q to carry an outcome", opt.ID)
				}
				kinds[opt.Outcome] = true
			}
			for _, kind := range []OutcomeKind{OutcomeGlory, OutcomeScar, OutcomeMystic} {
				if !kinds[kind] {
					t.Errorf("Expected event %q to offer a %s outcome", id, kind)
				}
			}
		})
	}
}
