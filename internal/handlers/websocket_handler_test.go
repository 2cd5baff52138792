package handlers

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latestcomment/headline-bias-game/internal/models"
	"github.com/latestcomment/headline-bias-game/internal/services"
)

// liveContextGenerator fails when handed a context that is already done.
type liveContextGenerator struct {
	stubGenerator
}

func (g *liveContextGenerator) Generate(ctx context.Context, fact string) (models.HeadlineSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return g.stubGenerator.Generate(ctx, fact)
}

type wsReply struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Error   string          `json:"error"`
}

func listen(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})
	return ln.Addr().String()
}

func dialGame(t *testing.T, addr, token string) *fastws.Conn {
	t.Helper()
	conn, _, err := fastws.DefaultDialer.Dial("ws://"+addr+"/ws/"+token, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func readReply(t *testing.T, conn *fastws.Conn) wsReply {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	return decode[wsReply](t, data)
}

func TestWebSocketPlaysFullRound(t *testing.T) {
	app, _ := newTestApp(t, &liveContextGenerator{})
	token := startGame(t, app)
	conn := dialGame(t, listen(t, app), token)

	info := readReply(t, conn)
	assert.Equal(t, "info", info.Type)

	require.NoError(t, conn.WriteJSON(models.ClientMessage{Type: "round"}))
	reply := readReply(t, conn)
	require.Equal(t, "round", reply.Type, reply.Error)
	round := decode[models.RoundResponse](t, reply.Payload)
	assert.Equal(t, 1, round.Round)
	require.Len(t, round.Headlines, 4)

	require.NoError(t, conn.WriteJSON(models.ClientMessage{Type: "answer", Order: perfectOrder(round.Headlines)}))
	reply = readReply(t, conn)
	require.Equal(t, "answer", reply.Type, reply.Error)
	answer := decode[models.AnswerResponse](t, reply.Payload)
	assert.Equal(t, models.PointsPerRound, answer.RoundScore)

	require.NoError(t, conn.WriteJSON(models.ClientMessage{Type: "finish"}))
	reply = readReply(t, conn)
	require.Equal(t, "finish", reply.Type, reply.Error)
	finish := decode[models.FinishResponse](t, reply.Payload)
	assert.Equal(t, models.PointsPerRound, finish.FinalScore)
}

func TestWebSocketReportsErrorsAndKeepsSession(t *testing.T) {
	app, game := newTestApp(t, &liveContextGenerator{})
	token := startGame(t, app)
	conn := dialGame(t, listen(t, app), token)
	readReply(t, conn)

	require.NoError(t, conn.WriteJSON(models.ClientMessage{Type: "answer", Order: []int{0, 1, 2, 3}}))
	reply := readReply(t, conn)
	assert.Equal(t, "error", reply.Type)
	assert.Equal(t, services.ErrNoActiveRound.Error(), reply.Error)

	require.NoError(t, conn.WriteJSON(models.ClientMessage{Type: "dance"}))
	reply = readReply(t, conn)
	assert.Equal(t, "error", reply.Type)

	state, err := game.State(token)
	require.NoError(t, err)
	assert.Equal(t, models.StateIdle, state)
}
