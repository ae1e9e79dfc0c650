package domain

import "time"

type ItemEventType string

const (
	ItemCreated ItemEventType = "ITEM_CREATED"
	ItemUpdated ItemEventType = "ITEM_UPDATED"
)

// ItemEvent is published after an item write commits in a tenant partition.
type ItemEvent struct {
	Type       ItemEventType `json:"type"`
	Schema     string        `json:"schema"`
	Item       Item          `json:"item"`
	OccurredAt time.Time     `json:"occurred_at"`
}
