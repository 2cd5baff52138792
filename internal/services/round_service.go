package services

import (
	"fmt"
	"sync"

	"github.com/latestcomment/headline-bias-game/internal/models"
)

// Shuffler is the randomness a RoundService consumes. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// RoundService shuffles headlines for presentation and scores answers.
type RoundService struct {
	rng Shuffler
	mu  sync.Mutex // guards rng
}

func NewRoundService(rng Shuffler) *RoundService {
	return &RoundService{rng: rng}
}

// Present returns the headlines in random order and the canonical answer key.
func (s *RoundService) Present(set models.HeadlineSet) (models.PresentedRound, []models.BiasLabel) {
	presented := make(models.PresentedRound, 0, len(models.CanonicalOrder))
	for _, label := range models.CanonicalOrder {
		presented = append(presented, models.Headline{Label: label, Text: set[label]})
	}
	s.mu.Lock()
	s.rng.Shuffle(len(presented), func(i, j int) {
		presented[i], presented[j] = presented[j], presented[i]
	})
	s.mu.Unlock()

	answer := make([]models.BiasLabel, len(models.CanonicalOrder))
	copy(answer, models.CanonicalOrder)
	return presented, answer
}

// Score counts the positions where the label picked by the player matches
// the answer key. order[i] indexes into presented.
func (s *RoundService) Score(presented models.PresentedRound, answer []models.BiasLabel, order []int) (int, error) {
	if err := ValidateOrder(order, len(presented)); err != nil {
		return 0, err
	}
	if len(answer) != len(presented) {
		return 0, fmt.Errorf("answer key has %d labels for %d headlines", len(answer), len(presented))
	}

	score := 0
	for i, idx := range order {
		if presented[idx].Label == answer[i] {
			score++
		}
	}
	return score, nil
}

// ValidateOrder checks that order is a permutation of 0..n-1.
func ValidateOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%w: expected %d indices, got %d", ErrInvalidOrder, n, len(order))
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: index %d out of range", ErrInvalidOrder, idx)
		}
		if seen[idx] {
			return fmt.Errorf("%w: index %d repeated", ErrInvalidOrder, idx)
		}
		seen[idx] = true
	}
	return nil
}
