package models

type StartResponse struct {
	SessionToken string `json:"session_token"`
	Message      string `json:"message"`
}

type RoundResponse struct {
	Round     int         `json:"round,omitempty"`
	Fact      string      `json:"fact,omitempty"`
	Headlines [][2]string `json:"headlines,omitempty"`
	Message   string      `json:"message,omitempty"` // set only when the game is over
}

type AnswerRequest struct {
	SessionToken string `json:"session_token"`
	Order        []int  `json:"order"` // indices into the presented headlines
}

type AnswerResponse struct {
	RoundScore int `json:"round_score"`
	TotalScore int `json:"total_score"`
}

type FinishResponse struct {
	FinalScore  int                  `json:"final_score"`
	MaxScore    int                  `json:"max_score"`
	Explanation map[BiasLabel]string `json:"explanation"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ClientMessage is read from a game websocket
type ClientMessage struct {
	Type  string `json:"type"`            // "round", "answer", "finish"
	Order []int  `json:"order,omitempty"` // answer
}

// ServerMessage is written to a game websocket
type ServerMessage struct {
	Type    string `json:"type"` // "round", "answer", "finish", "info", "error"
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}
