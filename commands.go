package main

import (
	"context"
	"strings"

	"lunchbot/menu"
)

// Router turns a command line issued by a channel member into the channel
// message payloads to send back. Payloads are plain text; the session
// wraps each one in "PRIVMSG <channel> :".
type Router struct {
	restaurants []*menu.Restaurant
}

// NewRouter creates a router over the configured restaurants. Order is
// preserved: replies always follow configuration order.
func NewRouter(restaurants []*menu.Restaurant) *Router {
	return &Router{restaurants: restaurants}
}

// Dispatch parses and executes one command. Unknown commands get a usage
// hint addressed to the issuing nick.
func (r *Router) Dispatch(ctx context.Context, nick, text string) []string {
	switch {
	case strings.HasPrefix(text, "menu"):
		_, args := splitToken(text)
		return r.menuCommand(ctx, args)
	case strings.HasPrefix(text, "list"):
		return r.listCommand()
	default:
		return []string{nick + ": try 'menu [<restaurant>]' or 'list'"}
	}
}

// menuCommand fetches and formats menus. With no arguments every
// restaurant is reported in configured order. With arguments each
// whitespace-separated keyword is matched as a case-insensitive substring
// of restaurant names; every match is fetched and reported, even when two
// keywords hit the same restaurant twice.
func (r *Router) menuCommand(ctx context.Context, args string) []string {
	var out []string

	if args != "" {
		matched := false
		for _, keyword := range strings.Fields(strings.ToLower(args)) {
			for _, rest := range r.restaurants {
				if rest.Match(keyword) {
					out = append(out, menuReply(rest.Name, rest.Menu(ctx))...)
					matched = true
				}
			}
		}
		if !matched {
			return []string{" No such restaurant '" + args + "'"}
		}
		return out
	}

	for _, rest := range r.restaurants {
		out = append(out, menuReply(rest.Name, rest.Menu(ctx))...)
	}
	return out
}

// listCommand reports the configured restaurant names.
func (r *Router) listCommand() []string {
	if len(r.restaurants) == 0 {
		return nil
	}
	names := make([]string, len(r.restaurants))
	for i, rest := range r.restaurants {
		names[i] = rest.Name
	}
	return []string{" " + strings.Join(names, ", ")}
}

// menuReply formats one restaurant's menu. A single-line menu fits on the
// restaurant's own line; longer menus get a header line followed by one
// "|"-prefixed line per entry.
func menuReply(name string, lines []string) []string {
	switch len(lines) {
	case 0:
		return []string{" " + name + ": No menu for today :("}
	case 1:
		return []string{" " + name + ": " + lines[0]}
	default:
		out := make([]string, 0, len(lines)+1)
		out = append(out, " "+name+":")
		for _, line := range lines {
			out = append(out, " | "+line)
		}
		return out
	}
}
