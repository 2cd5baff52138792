package models

import (
	"sync"
	"time"
)

const (
	// MaxRounds is the number of rounds in a game
	MaxRounds = 10

	// PointsPerRound is the best score a single round can give
	PointsPerRound = 4

	// MaxScore is the best score a whole game can give
	MaxScore = MaxRounds * PointsPerRound
)

type GameState string

const (
	StateIdle        GameState = "idle"
	StateRoundActive GameState = "round_active"
	StateComplete    GameState = "complete"
)

// PendingRound is the round waiting for an answer.
type PendingRound struct {
	Fact      string
	Presented PresentedRound
	Answer    []BiasLabel
}

// GameSession is one player's game. Fields are guarded by the session lock.
type GameSession struct {
	Token     string
	Round     int
	Score     int
	Pending   *PendingRound // nil when no round is active
	CreatedAt time.Time

	generating bool
	finished   bool
	mu         sync.Mutex
}

func NewGameSession(token string) *GameSession {
	return &GameSession{
		Token:     token,
		CreatedAt: time.Now(),
	}
}

// Lock acquires the session lock
func (g *GameSession) Lock() {
	g.mu.Lock()
}

// Unlock releases the session lock
func (g *GameSession) Unlock() {
	g.mu.Unlock()
}

// State reports the state machine position (must be called with lock held)
func (g *GameSession) State() GameState {
	switch {
	case g.Pending != nil:
		return StateRoundActive
	case g.Round >= MaxRounds:
		return StateComplete
	default:
		return StateIdle
	}
}

// BeginGenerating reserves the next round for the caller. It returns false if
// another caller already holds the reservation (must be called with lock held).
func (g *GameSession) BeginGenerating() bool {
	if g.generating {
		return false
	}
	g.generating = true
	return true
}

// EndGenerating releases the reservation (must be called with lock held)
func (g *GameSession) EndGenerating() {
	g.generating = false
}

// Finished reports whether the game has been finished (must be called with lock held)
func (g *GameSession) Finished() bool {
	return g.finished
}

// MarkFinished ends the session for good (must be called with lock held)
func (g *GameSession) MarkFinished() {
	g.finished = true
	g.Pending = nil
}
