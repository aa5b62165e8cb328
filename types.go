package main

// EventKind classifies one received protocol line.
type EventKind int

const (
	// EventOther is a well-formed line the bot has no interest in
	// (server notices, other people's chatter, numerics).
	EventOther EventKind = iota
	// EventPing is a keep-alive ping that must be answered immediately.
	EventPing
	// EventCommand is a channel message addressed to the bot.
	EventCommand
	// EventUnparseable is a line that failed a split step. Such lines
	// are skipped silently; they are never fatal.
	EventUnparseable
)

// Event is the transient parsed form of one received line. It is created
// per line, consumed immediately and never persisted.
type Event struct {
	Kind EventKind

	// Nick is the sender's nick, set for EventCommand.
	Nick string
	// Text is the command text after the address prefix, set for
	// EventCommand.
	Text string
}
