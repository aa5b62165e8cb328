package main

import "strings"

// This bot speaks only the sliver of IRC it needs: registration, one JOIN,
// PING/PONG and channel messages addressed to its nick. Everything else is
// classified as uninteresting and dropped.

// splitToken splits off the first whitespace-delimited token and returns
// it with the remainder, both trimmed of the separating whitespace.
func splitToken(s string) (token, rest string) {
	s = strings.TrimLeft(s, " \t")
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeft(s[i:], " \t")
}

// parseEvent classifies one received line. A line qualifies as a command
// when it is a PRIVMSG whose payload starts with ":" + the bot's nick;
// the sender nick is the prefix up to "!" with the leading ":" stripped,
// and the command text is everything after the address token. Lines that
// fail any split step come back as EventUnparseable.
func parseEvent(line, botnick string) Event {
	if strings.HasPrefix(line, "PING ") {
		return Event{Kind: EventPing}
	}

	sender, cmd := splitToken(line)
	if cmd == "" {
		return Event{Kind: EventUnparseable}
	}
	if !strings.HasPrefix(cmd, "PRIVMSG") {
		return Event{Kind: EventOther}
	}

	_, rest := splitToken(cmd)
	_, payload := splitToken(rest)
	if payload == "" {
		return Event{Kind: EventUnparseable}
	}
	if !strings.HasPrefix(payload, ":"+botnick) {
		return Event{Kind: EventOther}
	}

	nick := strings.TrimPrefix(sender, ":")
	if i := strings.IndexByte(nick, '!'); i >= 0 {
		nick = nick[:i]
	}

	// Drop the ":botnick" address token; what remains is the command.
	_, text := splitToken(payload)
	if text == "" {
		return Event{Kind: EventUnparseable}
	}

	return Event{Kind: EventCommand, Nick: nick, Text: text}
}
