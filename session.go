package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"lunchbot/ratelimit"
)

const (
	// Inactivity deadline for the read loop. IRC servers ping well within
	// this, so silence this long means the connection is gone.
	readTimeout = 360 * time.Second
	// Time allowed to write a line to the server.
	writeWait = 10 * time.Second
	// Fixed pause between registration and JOIN; joining in the same
	// breath as NICK races the server's registration handling.
	registerDelay = time.Second
	// Longest protocol line accepted. Anything that overruns this without
	// a newline is drained and discarded rather than buffered further.
	maxLineSize = 2048
)

// Session owns one live connection from dial to disconnect. Exactly one
// session is active at a time; the Bot creates a fresh one per attempt
// and tears it down on any exit.
type Session struct {
	id      string
	conn    net.Conn
	reader  *bufio.Reader
	nick    string
	channel string
	router  *Router
	limiter *ratelimit.Limiter
	log     *slog.Logger
	debug   bool

	// writeMu serializes writes; the shutdown QUIT may race the loop.
	writeMu sync.Mutex
}

// NewSession wraps an established connection. The connection is owned by
// the session from here on.
func NewSession(conn net.Conn, nick, channel string, router *Router, limiter *ratelimit.Limiter, debug bool) *Session {
	id := uuid.New().String()
	return &Session{
		id:      id,
		conn:    conn,
		reader:  bufio.NewReaderSize(conn, maxLineSize),
		nick:    nick,
		channel: channel,
		router:  router,
		limiter: limiter,
		log:     slog.With("session", shortID(id)),
		debug:   debug,
	}
}

// Run registers, joins the channel and listens until the connection dies.
// The returned error is the reason the session ended; the Bot classifies
// it to pick the reconnect tier.
func (s *Session) Run(ctx context.Context) error {
	defer s.conn.Close()

	if err := s.register(); err != nil {
		return err
	}

	select {
	case <-time.After(registerDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := s.sendLine("JOIN " + s.channel); err != nil {
		return err
	}
	s.log.Info("joined channel", "channel", s.channel)

	return s.listen(ctx)
}

// register sends the identity and nickname messages.
func (s *Session) register() error {
	if err := s.sendLine(fmt.Sprintf("USER %s %s %s Lunch bot", s.nick, s.nick, s.nick)); err != nil {
		return err
	}
	return s.sendLine("NICK " + s.nick)
}

// listen is the read loop: one line at a time, each under the inactivity
// deadline. It only returns when a read or write fails.
func (s *Session) listen(ctx context.Context) error {
	for {
		if err := s.conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
			return err
		}
		line, err := s.readLine()
		if err != nil {
			return err
		}

		if err := s.handleLine(ctx, trimLine(line)); err != nil {
			return err
		}
	}
}

// readLine returns the next newline-terminated line. A line that overruns
// maxLineSize is drained to its newline and returned empty; the server does
// not send lines that long, so the content is garbage either way.
func (s *Session) readLine() (string, error) {
	raw, err := s.reader.ReadSlice('\n')
	if err == nil {
		return string(raw), nil
	}
	for err == bufio.ErrBufferFull {
		_, err = s.reader.ReadSlice('\n')
	}
	if err != nil {
		return "", err
	}
	s.log.Debug("discarded oversized line")
	return "", nil
}

// handleLine processes one received line. The keep-alive ping is checked
// first, before any command handling, so a slow fetch can never delay it
// to the next line. Returned errors are write failures; everything else
// is absorbed here.
func (s *Session) handleLine(ctx context.Context, line string) error {
	if s.debug {
		s.log.Debug("recv", "line", line)
	}

	ev := parseEvent(line, s.nick)
	switch ev.Kind {
	case EventPing:
		return s.sendLine("PONG " + s.nick)

	case EventCommand:
		if !s.limiter.Allow(ev.Nick) {
			s.log.Debug("command dropped, nick over rate limit", "nick", ev.Nick)
			return nil
		}
		s.log.Info("command", "nick", ev.Nick, "text", ev.Text)
		for _, payload := range s.router.Dispatch(ctx, ev.Nick, ev.Text) {
			if err := s.sendLine("PRIVMSG " + s.channel + " :" + payload); err != nil {
				return err
			}
		}
	}
	return nil
}

// sendLine writes one newline-terminated protocol line.
func (s *Session) sendLine(line string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	_, err := s.conn.Write([]byte(line + "\n"))
	return err
}

// Close tears the connection down, unblocking a pending read.
func (s *Session) Close() error {
	return s.conn.Close()
}
