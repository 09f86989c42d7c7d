package domain

import "time"

type ConnectionStatus string

const (
	ConnectionIdle       ConnectionStatus = "idle"
	ConnectionConnecting ConnectionStatus = "connecting"
	ConnectionConnected  ConnectionStatus = "connected"
	ConnectionError      ConnectionStatus = "error"
)

// FeedState is published by a feed controller after every transition.
// Version increases strictly with each publish.
type FeedState[T Record] struct {
	Version          uint64           `json:"version"`
	ConnectionStatus ConnectionStatus `json:"connectionStatus"`
	CurrentOptions   FilterOptions    `json:"currentOptions"`
	VisibleRecords   []T              `json:"visibleRecords"`
	Failure          *Failure         `json:"failure,omitempty"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}
