package session

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/isekai-sim/pkg/hero"
)

// Destiny tiers keyed on glory minus scars.
const (
	destinyLegend = "Você se torna uma lenda viva, venerado em canções e invocado" +
		" como patrono de heróis por gerações."
	destinyRemembered = "Sua jornada foi marcada por vitórias e amizades sinceras;" +
		" seu nome permanece em memória nas guildas locais."
	destinyBalanced = "Você encontra um equilíbrio delicado entre desafios e glórias," +
		" levando uma vida tranquila mas cheia de histórias para contar."
	destinyScarred = "As cicatrizes acumuladas cobram seu preço. Ainda assim," +
		" você segue firme, provando que coragem também é resistir."
)

// RenderEpilogue produces the closing narrative for a finished hero. It is a
// deterministic function of the final state: same hero and counters, same
// text. The chosen world and power appear verbatim.
func RenderEpilogue(h *hero.Hero, glory, scars int) string {
	var destiny string
	switch diff := glory - scars; {
	case diff >= 3:
		destiny = destinyLegend
	case diff >= 1:
		destiny = destinyRemembered
	case diff == 0:
		destiny = destinyBalanced
	default:
		destiny = destinyScarred
	}

	caser := cases.Title(language.BrazilianPortuguese)
	parts := make([]string, 0, len(hero.Attributes))
	for _, name := range hero.Attributes {
		parts = append(parts, fmt.Sprintf("%s: %d", caser.String(name), h.Attribute(name)))
	}

	return wrap(fmt.Sprintf(
		"No fim da aventura, %s de %s, portador da bênção %s, registra %d feitos gloriosos"+
			" e %d cicatrizes memoráveis. %s A síntese do seu potencial: %s.",
		h.Spec.Name, h.Spec.World, h.Spec.Power, glory, scars, destiny,
		strings.Join(parts, ", ")))
}
