package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/latestcomment/headline-bias-game/internal/models"
)

const (
	MessageStarted  = "game started"
	MessageFinished = "game already finished"
)

// HeadlineGenerator produces one headline per bias label for a fact.
type HeadlineGenerator interface {
	Generate(ctx context.Context, fact string) (models.HeadlineSet, error)
}

// FactSource returns the fact played in a round (zero-based).
type FactSource interface {
	Fact(round int) (string, error)
}

// GameService runs the round life cycle of every session in the registry.
type GameService struct {
	Registry  *SessionRegistry
	facts     FactSource
	generator HeadlineGenerator
	rounds    *RoundService
	logger    *zap.Logger
}

func NewGameService(registry *SessionRegistry, facts FactSource, generator HeadlineGenerator, rounds *RoundService, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		Registry:  registry,
		facts:     facts,
		generator: generator,
		rounds:    rounds,
		logger:    logger,
	}
}

func (s *GameService) Start() models.StartResponse {
	session := s.Registry.Create()
	s.logger.Info("game started", zap.String("session", session.Token))
	return models.StartResponse{SessionToken: session.Token, Message: MessageStarted}
}

// RequestRound opens the next round. The session lock is released while the
// headlines are generated, so a failed generation leaves the session as it was.
func (s *GameService) RequestRound(ctx context.Context, token string) (models.RoundResponse, error) {
	session, err := s.Registry.Get(token)
	if err != nil {
		return models.RoundResponse{}, err
	}

	session.Lock()
	if session.Finished() {
		session.Unlock()
		return models.RoundResponse{}, ErrSessionNotFound
	}
	switch session.State() {
	case models.StateComplete:
		session.Unlock()
		return models.RoundResponse{Message: MessageFinished}, nil
	case models.StateRoundActive:
		session.Unlock()
		return models.RoundResponse{}, ErrRoundInProgress
	}
	if !session.BeginGenerating() {
		session.Unlock()
		return models.RoundResponse{}, ErrRoundInProgress
	}
	round := session.Round
	session.Unlock()

	pending, err := s.prepareRound(ctx, round)

	session.Lock()
	defer session.Unlock()
	session.EndGenerating()
	if session.Finished() {
		return models.RoundResponse{}, ErrSessionNotFound
	}
	if err != nil {
		s.logger.Error("round generation failed",
			zap.String("session", token),
			zap.Int("round", round+1),
			zap.Error(err),
		)
		return models.RoundResponse{}, err
	}

	session.Round++
	session.Pending = pending
	s.logger.Info("round opened",
		zap.String("session", token),
		zap.Int("round", session.Round),
	)

	return models.RoundResponse{
		Round:     session.Round,
		Fact:      pending.Fact,
		Headlines: pending.Presented.Pairs(),
	}, nil
}

func (s *GameService) prepareRound(ctx context.Context, round int) (*models.PendingRound, error) {
	fact, err := s.facts.Fact(round)
	if err != nil {
		return nil, err
	}
	set, err := s.generator.Generate(ctx, fact)
	if err != nil {
		return nil, err
	}
	presented, answer := s.rounds.Present(set)
	return &models.PendingRound{Fact: fact, Presented: presented, Answer: answer}, nil
}

// SubmitAnswer scores the pending round. An invalid order leaves the round
// pending so it can be answered again.
func (s *GameService) SubmitAnswer(token string, order []int) (models.AnswerResponse, error) {
	session, err := s.Registry.Get(token)
	if err != nil {
		return models.AnswerResponse{}, err
	}

	session.Lock()
	defer session.Unlock()

	if session.Finished() {
		return models.AnswerResponse{}, ErrSessionNotFound
	}
	if session.Pending == nil {
		return models.AnswerResponse{}, ErrNoActiveRound
	}
	score, err := s.rounds.Score(session.Pending.Presented, session.Pending.Answer, order)
	if err != nil {
		return models.AnswerResponse{}, err
	}

	session.Score += score
	session.Pending = nil
	s.logger.Info("round answered",
		zap.String("session", token),
		zap.Int("round", session.Round),
		zap.Int("round_score", score),
		zap.Int("total_score", session.Score),
	)

	return models.AnswerResponse{RoundScore: score, TotalScore: session.Score}, nil
}

// Finish ends the game and removes it from the registry.
func (s *GameService) Finish(token string) (models.FinishResponse, error) {
	session, err := s.Registry.Get(token)
	if err != nil {
		return models.FinishResponse{}, err
	}

	// the session lock is held until the registry entry is gone, so no
	// round or answer can land between the final score and the teardown
	session.Lock()
	if session.Finished() {
		session.Unlock()
		return models.FinishResponse{}, ErrSessionNotFound
	}
	session.MarkFinished()
	score := session.Score
	rounds := session.Round
	s.Registry.Destroy(token)
	session.Unlock()
	s.logger.Info("game finished",
		zap.String("session", token),
		zap.Int("rounds", rounds),
		zap.Int("final_score", score),
	)

	explanation := make(map[models.BiasLabel]string, len(models.Explanations))
	for label, text := range models.Explanations {
		explanation[label] = text
	}
	return models.FinishResponse{
		FinalScore:  score,
		MaxScore:    models.MaxScore,
		Explanation: explanation,
	}, nil
}

// State reports where a session is in its life cycle
func (s *GameService) State(token string) (models.GameState, error) {
	session, err := s.Registry.Get(token)
	if err != nil {
		return "", err
	}
	session.Lock()
	defer session.Unlock()
	if session.Finished() {
		return "", ErrSessionNotFound
	}
	return session.State(), nil
}

// Describe summarises the progress of a session.
func (s *GameService) Describe(token string) (string, error) {
	session, err := s.Registry.Get(token)
	if err != nil {
		return "", err
	}
	session.Lock()
	defer session.Unlock()
	if session.Finished() {
		return "", ErrSessionNotFound
	}
	return fmt.Sprintf("round %d of %d, score %d", session.Round, models.MaxRounds, session.Score), nil
}
