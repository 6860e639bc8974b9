package session

import (
	"fmt"
	"math/rand"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// SeededRoller is a dice.Roller backed by a seeded PRNG. With the same seed
// and the same input sequence a session replays byte for byte, which keeps
// the game repeatable by default. The SEED env var varies runs.
type SeededRoller struct {
	rng *rand.Rand
}

var _ dice.Roller = (*SeededRoller)(nil)

// NewSeededRoller creates a roller seeded with the given value.
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a uniform value in [1, size].
func (r *SeededRoller) Roll(size int) (int, error) {
	if size < 1 {
		return 0, fmt.Errorf("invalid die size %d", size)
	}
	return r.rng.Intn(size) + 1, nil
}

// RollN rolls count dice of the given size.
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("invalid roll count %d", count)
	}
	rolls := make([]int, count)
	for i := range rolls {
		roll, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		rolls[i] = roll
	}
	return rolls, nil
}
