package script

import (
	"strings"
	"testing"
)

// minimalScript builds a small valid two-stage script for mutation tests.
func minimalScript() *Script {
	return &Script{
		Name:  "test",
		Start: "inicio",
		Stages: map[string]Stage{
			"inicio": {
				ID:     "inicio",
				Title:  "Início",
				Prompt: "Escolha.",
				Slot:   SlotWorld,
				Flag:   "inicio_feito",
				Next:   "fim",
				Options: []Option{
					{ID: "a", Label: "A", Deltas: map[string]int{"mana": 5}, AccentColor: "#8a63d2"},
					{ID: "b", Label: "B", Deltas: map[string]int{"vigor": 5}},
				},
			},
			"fim": {
				ID:     "fim",
				Title:  "Fim",
				Prompt: "Último desafio.",
				Options: []Option{
					{ID: "c", Label: "C", Outcome: OutcomeGlory},
				},
			},
		},
	}
}

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Script)
		expectError string
	}{
		{
			name:   "valid script",
			mutate: func(s *Script) {},
		},
		{
			name: "missing start",
			mutate: func(s *Script) {
				s.Start = ""
			},
			expectError: "no start stage",
		},
		{
			name: "dangling start",
			mutate: func(s *Script) {
				s.Start = "nada"
			},
			expectError: "does not exist",
		},
		{
			name: "dangling stage successor",
			mutate: func(s *Script) {
				st := s.Stages["inicio"]
				st.Next = "nada"
				s.Stages["inicio"] = st
			},
			expectError: "dangling successor",
		},
		{
			name: "dangling option successor",
			mutate: func(s *Script) {
				st := s.Stages["inicio"]
				st.Options[0].Next = "nada"
				s.Stages["inicio"] = st
			},
			expectError: "dangling successor",
		},
		{
			name: "cycle",
			mutate: func(s *Script) {
				st := s.Stages["fim"]
				st.Next = "inicio"
				s.Stages["fim"] = st
			},
			expectError: "cycle",
		},
		{
			name: "stage ID not snake_case",
			mutate: func(s *Script) {
				s.Stages["MeuInicio"] = Stage{
					ID:      "MeuInicio",
					Prompt:  "x",
					Options: []Option{{ID: "x", Label: "X"}},
				}
			},
			expectError: "snake_case",
		},
		{
			name: "mismatched stage ID",
			mutate: func(s *Script) {
				st := s.Stages["fim"]
				st.ID = "outro"
				s.Stages["fim"] = st
			},
			expectError: "mismatched ID",
		},
		{
			name: "unknown slot",
			mutate: func(s *Script) {
				st := s.Stages["inicio"]
				st.Slot = "classe"
				s.Stages["inicio"] = st
			},
			expectError: "unknown slot",
		},
		{
			name: "unknown attribute",
			mutate: func(s *Script) {
				st := s.Stages["inicio"]
				st.Options[0].Deltas = map[string]int{"forca": 5}
				s.Stages["inicio"] = st
			},
			expectError: "unknown attribute",
		},
		{
			name: "unknown outcome",
			mutate: func(s *Script) {
				st := s.Stages["fim"]
				st.Options[0].Outcome = "tragedia"
				s.Stages["fim"] = st
			},
			expectError: "unknown outcome",
		},
		{
			name: "unparseable accent color",
			mutate: func(s *Script) {
				st := s.Stages["inicio"]
				st.Options[0].AccentColor = "roxo"
				s.Stages["inicio"] = st
			},
			expectError: "unparseable accent color",
		},
		{
			name: "accent color outside world stage",
			mutate: func(s *Script) {
				st := s.Stages["fim"]
				st.Options[0].AccentColor = "#8a63d2"
				s.Stages["fim"] = st
			},
			expectError: "outside the world stage",
		},
		{
			name: "stage without options",
			mutate: func(s *Script) {
				st := s.Stages["fim"]
				st.Options = nil
				s.Stages["fim"] = st
			},
			expectError: "offers no options",
		},
		{
			name: "stage without prompt",
			mutate: func(s *Script) {
				st := s.Stages["fim"]
				st.Prompt = ""
				s.Stages["fim"] = st
			},
			expectError: "has no prompt",
		},
		{
			name: "unreachable stage",
			mutate: func(s *Script) {
				s.Stages["ilha"] = Stage{
					ID:      "ilha",
					Prompt:  "x",
					Options: []Option{{ID: "x", Label: "X"}},
				}
			},
			expectError: "unreachable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := minimalScript()
			tt.mutate(s)

			v := &Validator{}
			err := v.Validate(s)

			if tt.expectError == "" {
				if err != nil {
					t.Errorf("Expected valid script, got error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Expected error containing %q, got nil", tt.expectError)
			}
			if !strings.Contains(err.Error(), tt.expectError) {
				t.Errorf("Expected error containing %q, got: %v", tt.expectError, err)
			}
		})
	}
}

func TestValidator_ReusableAcrossCalls(t *testing.T) {
	v := &Validator{}

	bad := minimalScript()
	bad.Start = "nada"
	if err := v.Validate(bad); err == nil {
		t.Fatal("Expected error for broken script")
	}

	// Errors from the first run must not leak into the second
	if err := v.Validate(minimalScript()); err != nil {
		t.Errorf("Expected clean validation on reuse, got: %v", err)
	}
}
