package models

type BiasLabel string

const (
	BiasNeutral        BiasLabel = "neutral"
	BiasSensationalist BiasLabel = "sensationalist"
	BiasOmissive       BiasLabel = "omissive"
	BiasManipulative   BiasLabel = "manipulative"
)

// CanonicalOrder is the answer key for every round.
var CanonicalOrder = []BiasLabel{
	BiasNeutral,
	BiasSensationalist,
	BiasOmissive,
	BiasManipulative,
}

// Descriptions are sent to the generator as the bias taxonomy.
var Descriptions = map[BiasLabel]string{
	BiasNeutral:        "present the fact clearly and objectively",
	BiasSensationalist: "exaggerate or dramatize the fact to cause impact",
	BiasOmissive:       "leave out important details or show only part of the fact",
	BiasManipulative:   "distort the fact to push a biased interpretation",
}

// Explanations are returned to the player when a game is finished.
var Explanations = map[BiasLabel]string{
	BiasNeutral:        "Presents the fact objectively, without exaggeration.",
	BiasSensationalist: "Exaggerates or dramatizes the fact to grab attention.",
	BiasOmissive:       "Hides relevant information or shows only part of the fact.",
	BiasManipulative:   "Distorts the fact to induce a biased interpretation.",
}

// HeadlineSet holds exactly one generated headline per label.
type HeadlineSet map[BiasLabel]string

// Headline is one entry of a presented round.
type Headline struct {
	Label BiasLabel
	Text  string
}

// PresentedRound is a shuffled view of a HeadlineSet.
type PresentedRound []Headline

// Pairs renders the round as [label, text] pairs for the wire.
func (p PresentedRound) Pairs() [][2]string {
	out := make([][2]string, 0, len(p))
	for _, h := range p {
		out = append(out, [2]string{string(h.Label), h.Text})
	}
	return out
}
