// Package hero holds the player state: the attributes, flags and blessings
// accumulated over one reincarnation.
package hero

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/jwebster45206/d20"
)

// The four attributes every hero carries. Values live on a 0-100 scale
// around the baseline; choice deltas move them in steps of 5.
const (
	AttrVigor   = "vigor"
	AttrMana    = "mana"
	AttrSorte   = "sorte"
	AttrCarisma = "carisma"
)

// Attributes lists the attribute names in display order.
var Attributes = []string{AttrVigor, AttrMana, AttrSorte, AttrCarisma}

const (
	Baseline = 50
	AttrMin  = 0
	AttrMax  = 100

	baseVitality = 20
	baseGuard    = 10
)

// IsAttribute reports whether name is one of the hero attributes.
func IsAttribute(name string) bool {
	return slices.Contains(Attributes, name)
}

// HeroSpec is the serializable specification for the player's hero.
type HeroSpec struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	World  string `json:"world,omitempty"`
	Origin string `json:"origin,omitempty"`
	Power  string `json:"power,omitempty"`
	Legacy string `json:"legacy,omitempty"`

	Attributes map[string]int `json:"attributes"`
	HP         int            `json:"hp,omitempty"`     // Current vitality (for serialization)
	MaxHP      int            `json:"max_hp,omitempty"` // Maximum vitality
	AC         int            `json:"ac,omitempty"`     // Guard against misfortune

	Flags     []string       `json:"flags,omitempty"`     // Story flags, monotonic within a session
	Blessings map[string]int `json:"blessings,omitempty"` // Named inspiration bonuses from glory
}

// Hero is the runtime representation of the player's character.
type Hero struct {
	Spec  *HeroSpec
	Actor *d20.Actor // Built at runtime from HeroSpec
}

// New creates a hero with baseline attributes and derived vitality and guard.
func New(id string) (*Hero, error) {
	attrs := make(map[string]int, len(Attributes))
	for _, name := range Attributes {
		attrs[name] = Baseline
	}
	spec := &HeroSpec{
		ID:         id,
		Attributes: attrs,
	}
	spec.MaxHP = baseVitality
	spec.HP = spec.MaxHP
	spec.AC = baseGuard
	return NewFromSpec(spec)
}

// NewFromSpec creates a Hero from a HeroSpec and builds its d20.Actor.
func NewFromSpec(spec *HeroSpec) (*Hero, error) {
	if spec == nil {
		return nil, fmt.Errorf("spec cannot be nil")
	}
	h := &Hero{Spec: spec}
	if err := h.rebuild(); err != nil {
		return nil, err
	}
	return h, nil
}

// Attribute returns the current value of a hero attribute.
func (h *Hero) Attribute(name string) int {
	if h.Actor != nil {
		if val, ok := h.Actor.Attribute(name); ok {
			return val
		}
	}
	return h.Spec.Attributes[name]
}

// Modifier converts an attribute value to its modifier: one step of 5 above
// or below the baseline is one point.
func (h *Hero) Modifier(name string) int {
	return (h.Attribute(name) - Baseline) / 5
}

// ApplyDeltas shifts attributes by the given amounts, clamping each to the
// 0-100 range, and recomputes derived vitality and guard. Damage already
// taken carries over to the new maximum.
func (h *Hero) ApplyDeltas(deltas map[string]int) error {
	if len(deltas) == 0 {
		return nil
	}
	for name, delta := range deltas {
		if !IsAttribute(name) {
			return fmt.Errorf("unknown attribute %q", name)
		}
		val := h.Spec.Attributes[name] + delta
		if val < AttrMin {
			val = AttrMin
		}
		if val > AttrMax {
			val = AttrMax
		}
		h.Spec.Attributes[name] = val
	}

	damage := h.Spec.MaxHP - h.Spec.HP
	h.Spec.MaxHP = h.maxVitality()
	h.Spec.HP = h.Spec.MaxHP - damage
	if h.Spec.HP < 1 {
		h.Spec.HP = 1
	}
	h.Spec.AC = h.guard()
	return h.rebuild()
}

// Wound reduces vitality by n, never below 1. Scars sting but do not kill.
func (h *Hero) Wound(n int) error {
	if n <= 0 {
		return nil
	}
	hp := h.Spec.HP - n
	if hp < 1 {
		hp = 1
	}
	h.Spec.HP = hp
	if h.Actor != nil {
		if err := h.Actor.SetHP(hp); err != nil {
			return fmt.Errorf("failed to set HP: %w", err)
		}
	}
	return nil
}

// Bless records a named inspiration bonus, carried as a d20 combat modifier.
func (h *Hero) Bless(name string, value int) error {
	if h.Spec.Blessings == nil {
		h.Spec.Blessings = make(map[string]int)
	}
	h.Spec.Blessings[name] = value
	return h.rebuild()
}

// AddFlag records a story flag. Flags only grow; adding an existing flag is
// a no-op and returns false.
func (h *Hero) AddFlag(name string) bool {
	if name == "" || h.HasFlag(name) {
		return false
	}
	h.Spec.Flags = append(h.Spec.Flags, name)
	return true
}

// HasFlag reports whether the hero has encountered the given story flag.
func (h *Hero) HasFlag(name string) bool {
	return slices.Contains(h.Spec.Flags, name)
}

func (h *Hero) maxVitality() int {
	mod := (h.Spec.Attributes[AttrVigor] - Baseline) / 5
	hp := baseVitality + 2*mod
	if hp < 1 {
		hp = 1
	}
	return hp
}

func (h *Hero) guard() int {
	return baseGuard + (h.Spec.Attributes[AttrSorte]-Baseline)/5
}

// rebuild constructs the d20.Actor from the current spec.
func (h *Hero) rebuild() error {
	attrs := make(map[string]int, len(h.Spec.Attributes))
	maps.Copy(attrs, h.Spec.Attributes)

	actor, err := d20.NewActor(h.Spec.ID).
		WithHP(h.Spec.MaxHP).
		WithAC(h.Spec.AC).
		WithAttributes(attrs).
		WithCombatModifiers(h.Spec.Blessings).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build actor: %w", err)
	}
	if h.Spec.HP != h.Spec.MaxHP && h.Spec.HP > 0 {
		if err := actor.SetHP(h.Spec.HP); err != nil {
			return fmt.Errorf("failed to set HP: %w", err)
		}
	}
	h.Actor = actor
	return nil
}

// MarshalJSON serializes the hero in HeroSpec format, reading current
// runtime state from the Actor.
func (h *Hero) MarshalJSON() ([]byte, error) {
	if h == nil {
		return []byte("null"), nil
	}
	if h.Actor == nil {
		return json.Marshal(h.Spec)
	}

	resp := *h.Spec
	resp.HP = h.Actor.HP()
	resp.MaxHP = h.Actor.MaxHP()
	resp.AC = h.Actor.AC()

	resp.Attributes = make(map[string]int, len(Attributes))
	for _, name := range Attributes {
		if val, ok := h.Actor.Attribute(name); ok {
			resp.Attributes[name] = val
		}
	}

	mods := h.Actor.GetCombatModifiers()
	if len(mods) > 0 {
		resp.Blessings = make(map[string]int, len(mods))
		for _, mod := range mods {
			resp.Blessings[mod.Reason] = mod.Value
		}
	}

	return json.Marshal(resp)
}

// UnmarshalJSON reconstructs a Hero from JSON and rebuilds its Actor.
func (h *Hero) UnmarshalJSON(data []byte) error {
	var spec HeroSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("failed to unmarshal hero spec: %w", err)
	}
	h.Spec = &spec
	return h.rebuild()
}
