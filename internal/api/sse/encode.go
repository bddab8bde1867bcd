package sse

import (
	"time"

	"github.com/mcoot/rpsarena/internal/api/response"
	"github.com/mcoot/rpsarena/internal/model"
)

// eventMessage is the JSON body of every domain event frame
type eventMessage struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	MatchID   string    `json:"match_id,omitempty"`
	Data      any       `json:"data"`
}

type matchStartedData struct {
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
}

func encodeEvent(event model.Event) eventMessage {
	msg := eventMessage{
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		MatchID:   string(event.MatchID),
	}

	switch p := event.Payload.(type) {
	case model.PlayerRegisteredPayload:
		msg.Data = response.PlayerFromModel(&p.Player)
	case model.MatchStartedPayload:
		msg.Data = matchStartedData{Player1: p.Player1, Player2: p.Player2}
	case model.RoundPlayedPayload:
		msg.Data = response.RoundResultFromModel(&p.Result)
	default:
		msg.Data = p
	}

	return msg
}
