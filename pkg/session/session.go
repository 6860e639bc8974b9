// Package session drives one narrative session: the name prompt, the stage
// walk, outcome resolution and the closing epilogue. A session is owned by a
// single goroutine; all mutation happens through SetName and Choose.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jwebster45206/isekai-sim/pkg/hero"
	"github.com/jwebster45206/isekai-sim/pkg/script"
	"github.com/jwebster45206/isekai-sim/pkg/textfilter"
)

// Phase is where the session is in its life.
type Phase string

const (
	PhaseName   Phase = "name"   // waiting for the hero name
	PhaseChoice Phase = "choice" // walking the stage graph
	PhaseDone   Phase = "done"   // epilogue rendered
)

var (
	// ErrEmptyName is returned when the name prompt yields no printable text.
	ErrEmptyName = errors.New("hero name cannot be empty")
	// ErrInvalidSelection is returned when input does not match an offered
	// option. The session state is left untouched; callers re-prompt.
	ErrInvalidSelection = errors.New("selection does not match an offered option")
	// ErrSessionDone is returned for input after the epilogue.
	ErrSessionDone = errors.New("session already reached its epilogue")
)

// storyWidth is the wrap column for narrative text.
const storyWidth = 88

// DefaultSeed keeps sessions repeatable unless a seed is injected.
const DefaultSeed = 1

// Session is one run of the game from name prompt to epilogue.
type Session struct {
	id     uuid.UUID
	script *script.Script
	hero   *hero.Hero
	logger *slog.Logger
	roller dice.Roller
	tracer trace.Tracer
	filter *textfilter.NameFilter

	phase      Phase
	current    string // current stage ID while in PhaseChoice
	glory      int
	scars      int
	transcript []Entry
	epilogue   string
}

// New creates a session at the name prompt, with the opening and Gem's
// greeting already on the transcript.
func New(scr *script.Script, logger *slog.Logger) (*Session, error) {
	if scr == nil {
		return nil, fmt.Errorf("script cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	id := uuid.New()
	h, err := hero.New(id.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create hero: %w", err)
	}

	s := &Session{
		id:         id,
		script:     scr,
		hero:       h,
		logger:     logger,
		roller:     NewSeededRoller(DefaultSeed),
		filter:     textfilter.NewNameFilter(),
		phase:      PhaseName,
		current:    scr.Start,
		transcript: make([]Entry, 0),
	}

	s.append(RoleNarrator, wrap(scr.Opening))
	s.append(RoleNarrator, wrap(scr.Greeting))
	s.append(RoleSystem, scr.NamePrompt)

	logger.Debug("session created", "session_id", id)
	return s, nil
}

// WithRoller sets the dice roller used for outcome resolution.
// Returns the Session for method chaining.
func (s *Session) WithRoller(r dice.Roller) *Session {
	if r != nil {
		s.roller = r
	}
	return s
}

// WithTracer sets the tracer used to record choice spans.
// Returns the Session for method chaining.
func (s *Session) WithTracer(t trace.Tracer) *Session {
	s.tracer = t
	return s
}

// SetName records the hero name and enters the first stage. An input with no
// printable content returns ErrEmptyName and leaves the session at the name
// prompt.
func (s *Session) SetName(ctx context.Context, raw string) error {
	if s.phase != PhaseName {
		return fmt.Errorf("name already set: %w", ErrSessionDone)
	}

	name := s.filter.Normalize(raw)
	if name == "" {
		return ErrEmptyName
	}

	s.hero.Spec.Name = name
	s.append(RolePlayer, name)
	s.phase = PhaseChoice
	s.enterStage(s.current)

	s.logger.Debug("hero named", "session_id", s.id, "name", name)
	return nil
}

// Choose resolves one selection at the current stage. Input that is not a
// 1-based integer within the offered options returns ErrInvalidSelection
// and leaves hero, stage and transcript untouched. A valid selection applies
// the option, resolves its outcome, and advances; reaching the terminal
// renders the epilogue and moves the session to PhaseDone.
func (s *Session) Choose(ctx context.Context, input string) error {
	switch s.phase {
	case PhaseDone:
		return ErrSessionDone
	case PhaseName:
		return fmt.Errorf("hero has no name yet: %w", ErrInvalidSelection)
	}

	stage, ok := s.script.Stage(s.current)
	if !ok {
		return fmt.Errorf("stage %q not found in script", s.current)
	}

	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("input %q is not a number: %w", input, ErrInvalidSelection)
	}
	if n < 1 || n > len(stage.Options) {
		return fmt.Errorf("selection %d outside 1-%d: %w", n, len(stage.Options), ErrInvalidSelection)
	}
	opt := stage.Options[n-1]

	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, "session.choose",
			trace.WithAttributes(
				attribute.String("session.id", s.id.String()),
				attribute.String("stage.id", stage.ID),
				attribute.String("option.id", opt.ID),
				attribute.String("option.outcome", string(opt.Outcome)),
			))
		defer span.End()
	}

	s.append(RolePlayer, opt.Label)

	if err := s.hero.ApplyDeltas(opt.Deltas); err != nil {
		return fmt.Errorf("failed to apply choice %q: %w", opt.ID, err)
	}
	s.recordSlot(stage.Slot, opt.Label)

	if opt.Outcome != "" {
		narration, err := s.resolveOutcome(stage.ID, opt.Outcome)
		if err != nil {
			return fmt.Errorf("failed to resolve outcome for %q: %w", opt.ID, err)
		}
		s.append(RoleNarrator, wrap(fmt.Sprintf("Você opta por %s. %s", strings.ToLower(opt.Label), narration)))
	}

	s.hero.AddFlag(opt.Flag)
	s.hero.AddFlag(stage.Flag)

	s.logger.Debug("choice resolved",
		"session_id", s.id,
		"stage", stage.ID,
		"option", opt.ID,
		"glory", s.glory,
		"scars", s.scars)

	next := stage.Next
	if opt.Next != "" {
		next = opt.Next
	}
	if next == "" {
		s.finish()
		return nil
	}
	s.current = next
	s.enterStage(next)
	return nil
}

// resolveOutcome applies one adventure outcome and returns its narration.
// All randomness flows through the injected roller.
func (s *Session) resolveOutcome(stageID string, kind script.OutcomeKind) (string, error) {
	switch kind {
	case script.OutcomeGlory:
		roll, err := s.roller.Roll(3)
		if err != nil {
			return "", err
		}
		bonus := roll - 1 + max(s.hero.Modifier(hero.AttrSorte), s.hero.Modifier(hero.AttrCarisma))/2
		s.glory++
		if err := s.hero.Bless("inspiracao_"+stageID, bonus); err != nil {
			return "", err
		}
		return fmt.Sprintf("O mundo sorri para você. Seus aliados celebram, e o deus Gem concede"+
			" uma bênção adicional de %d pontos de inspiração.", bonus), nil

	case script.OutcomeScar:
		roll, err := s.roller.Roll(3)
		if err != nil {
			return "", err
		}
		setback := roll - 1 - min(s.hero.Modifier(hero.AttrVigor), s.hero.Modifier(hero.AttrSorte))/3
		s.scars++
		if err := s.hero.Wound(1 + max(0, setback)); err != nil {
			return "", err
		}
		return fmt.Sprintf("O desafio cobra seu preço; uma nova cicatriz surge, mas também"+
			" deixa lições que reforçam sua determinação (%+d).", setback), nil

	case script.OutcomeMystic:
		roll, err := s.roller.Roll(6)
		if err != nil {
			return "", err
		}
		ecos := roll + s.hero.Modifier(hero.AttrMana)
		if err := s.hero.ApplyDeltas(map[string]int{hero.AttrMana: 5}); err != nil {
			return "", err
		}
		return fmt.Sprintf("Seu poder místico pulsa intensamente, revelando segredos antigos."+
			" Você acumula %d ecos arcanos e aperfeiçoa sua mana.", ecos), nil

	default:
		return "As engrenagens do destino giram silenciosamente dessa vez.", nil
	}
}

func (s *Session) recordSlot(slot, label string) {
	switch slot {
	case script.SlotWorld:
		s.hero.Spec.World = label
	case script.SlotOrigin:
		s.hero.Spec.Origin = label
	case script.SlotPower:
		s.hero.Spec.Power = label
	case script.SlotLegacy:
		s.hero.Spec.Legacy = label
	}
}

// enterStage appends the stage's transition text and prompt to the
// transcript. Choice rounds use the original's dashed header, adventure
// events the double-ruled one.
func (s *Session) enterStage(id string) {
	stage, ok := s.script.Stage(id)
	if !ok {
		return
	}
	if stage.Intro != "" {
		s.append(RoleNarrator, wrap(stage.Intro))
	}
	if stage.Slot != "" {
		s.append(RoleSystem, fmt.Sprintf("--- %s ---", stage.Title))
	} else {
		s.append(RoleSystem, fmt.Sprintf("=== %s ===", stage.Title))
	}
	s.append(RoleNarrator, wrap(stage.Prompt))
}

func (s *Session) finish() {
	s.epilogue = RenderEpilogue(s.hero, s.glory, s.scars)
	s.append(RoleNarrator, s.epilogue)
	s.append(RoleSystem, s.script.Farewell)
	s.phase = PhaseDone

	s.logger.Debug("session finished",
		"session_id", s.id,
		"glory", s.glory,
		"scars", s.scars,
		"flags", len(s.hero.Spec.Flags))
}

func (s *Session) append(role, content string) {
	s.transcript = append(s.transcript, Entry{Role: role, Content: content})
}

func wrap(text string) string {
	return wordwrap.String(text, storyWidth)
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Phase returns the session's current phase.
func (s *Session) Phase() Phase { return s.phase }

// Hero returns the player state.
func (s *Session) Hero() *hero.Hero { return s.hero }

// Glory returns the glorious deeds counter.
func (s *Session) Glory() int { return s.glory }

// Scars returns the memorable scars counter.
func (s *Session) Scars() int { return s.scars }

// Script returns the narrative content driving this session.
func (s *Session) Script() *script.Script { return s.script }

// CurrentStage returns the stage awaiting a choice, if any.
func (s *Session) CurrentStage() (script.Stage, bool) {
	if s.phase != PhaseChoice {
		return script.Stage{}, false
	}
	return s.script.Stage(s.current)
}

// Transcript returns the accumulated transcript entries.
func (s *Session) Transcript() []Entry { return s.transcript }

// Epilogue returns the rendered epilogue, or "" before PhaseDone.
func (s *Session) Epilogue() string { return s.epilogue }

// Farewell returns the closing line shown after the epilogue.
func (s *Session) Farewell() string { return s.script.Farewell }
