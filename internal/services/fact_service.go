package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/latestcomment/headline-bias-game/internal/models"
)

// DefaultFacts are played in order, one per round.
var DefaultFacts = []string{
	"A vacina contra COVID-19 reduz em 90% o risco de hospitalização",
	"A taxa de desemprego caiu 2% no último trimestre",
	"Um novo recorde de temperatura foi registrado no Ártico",
	"O PIB do país cresceu 3% no último ano",
	"Um asteroide passou a 7 milhões de km da Terra",
	"A poluição do ar nas grandes cidades caiu 15% em 2024",
	"Cientistas descobriram um novo exoplaneta parecido com a Terra",
	"O uso de energia solar aumentou 25% em 2025",
	"O consumo de carne vermelha caiu 10% no Brasil",
	"O transporte público recebeu investimento de 5 bilhões em 2025",
}

// FactService serves one fact per round index.
type FactService struct {
	facts []string
}

// NewFactService copies facts, which must hold one non-empty entry per round.
func NewFactService(facts []string) (*FactService, error) {
	if len(facts) != models.MaxRounds {
		return nil, fmt.Errorf("expected %d facts, got %d", models.MaxRounds, len(facts))
	}
	out := make([]string, len(facts))
	for i, f := range facts {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("fact %d is empty", i+1)
		}
		out[i] = f
	}
	return &FactService{facts: out}, nil
}

// LoadFacts reads a JSON array of strings from path
func LoadFacts(path string) (*FactService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var facts []string
	if err := json.Unmarshal(data, &facts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewFactService(facts)
}

func (s *FactService) Fact(round int) (string, error) {
	if round < 0 || round >= len(s.facts) {
		return "", fmt.Errorf("no fact for round %d", round+1)
	}
	return s.facts[round], nil
}
