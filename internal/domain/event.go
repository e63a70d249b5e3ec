package domain

import (
	"encoding/json"
	"errors"
	"time"
)

type EventType string

const (
	EventCreated    EventType = "BspaohCreated"
	EventDuplicated EventType = "BspaohDuplicated"
	EventUpdated    EventType = "BspaohUpdated"
	EventPublished  EventType = "BspaohPublished"
	EventSigned     EventType = "BspaohSigned"
)

// Event regista uma mutação de um bordereau. Data é o merge patch da alteração.
type Event struct {
	ID        string          `json:"id"`
	StreamID  string          `json:"streamId"`
	Type      EventType       `json:"type"`
	Actor     string          `json:"actor"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ErrStatusConflict indica que o estado persistido já não é o esperado pela escrita.
var ErrStatusConflict = errors.New("bspaoh status changed concurrently")
