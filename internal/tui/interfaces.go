package tui

import (
	"botdeck/internal/chat"
	"botdeck/internal/store"
)

// Services bundles the dependencies injected into the TUI. Screens never
// fetch data themselves: they dispatch request events and render whatever
// state the store publishes back.
type Services struct {
	Store        *store.Store
	Conversation *chat.Conversation
}
