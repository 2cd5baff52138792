package services

import "errors"

var (
	ErrSessionNotFound = errors.New("game not found")
	ErrNoActiveRound   = errors.New("no active round")
	ErrRoundInProgress = errors.New("round already in progress")
	ErrInvalidOrder    = errors.New("invalid headline order")
	ErrInvalidFact     = errors.New("fact must not be empty")

	ErrGenerationFormat  = errors.New("no JSON object found in generator reply")
	ErrGenerationParse   = errors.New("could not decode generator JSON")
	ErrGenerationSchema  = errors.New("generator JSON is missing headlines")
	ErrGenerationTimeout = errors.New("headline generation timed out")
	ErrUpstream          = errors.New("text generation request failed")
)
