package main

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"log/slog"
	"net"
	"time"

	"lunchbot/config"
	"lunchbot/ratelimit"
)

const (
	dialTimeout = 10 * time.Second
	// Wait before retrying after a hard connect or socket error. Timeouts
	// and graceful disconnects reconnect immediately.
	retryDelay = 60 * time.Second
)

// Bot owns the connection lifecycle: it dials, runs one session at a time
// and reconnects forever. There is no retry cap; the process runs until
// it is told to stop.
type Bot struct {
	cfg     *config.Config
	router  *Router
	limiter *ratelimit.Limiter
}

// NewBot creates a bot over the given configuration and command router.
func NewBot(cfg *config.Config, router *Router) *Bot {
	return &Bot{
		cfg:     cfg,
		router:  router,
		limiter: ratelimit.New(cfg.Limits.CommandsPerMinute, time.Minute),
	}
}

// Run connects and reconnects until ctx is cancelled. Session exits are
// classified into three tiers: graceful disconnects and inactivity
// timeouts reconnect immediately, hard errors back off for a fixed delay.
func (b *Bot) Run(ctx context.Context) {
	for {
		err := b.runSession(ctx)
		if ctx.Err() != nil {
			slog.Info("shutting down")
			return
		}

		switch {
		case isDisconnect(err):
			slog.Info("disconnected, reconnecting")
		case isTimeout(err):
			slog.Warn("socket timed out, reconnecting right away")
		default:
			slog.Error("socket error, retrying after delay", "error", err, "delay", retryDelay)
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				slog.Info("shutting down")
				return
			}
		}
	}
}

// runSession dials, hands the connection to a fresh session and runs it
// to completion. Cancelling ctx sends a best-effort QUIT and closes the
// connection, which unblocks the session's read loop.
func (b *Bot) runSession(ctx context.Context) error {
	conn, err := b.dial(ctx)
	if err != nil {
		return err
	}

	session := NewSession(conn, botNick, b.cfg.IRC.Channel, b.router, b.limiter, b.cfg.Debug)
	stop := context.AfterFunc(ctx, func() {
		session.sendLine("QUIT :Lunch break is over")
		session.Close()
	})
	defer stop()

	return session.Run(ctx)
}

// dial opens the transport, wrapping it in TLS after the raw connection
// succeeds when SSL is configured.
func (b *Bot) dial(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", b.cfg.IRC.Addr())
	if err != nil {
		return nil, err
	}
	slog.Info("connected", "addr", b.cfg.IRC.Addr(), "ssl", b.cfg.IRC.SSL)

	if !b.cfg.IRC.SSL {
		return conn, nil
	}
	tlsConn := tls.Client(conn, &tls.Config{ServerName: b.cfg.IRC.Server})
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// isDisconnect reports whether the session ended with the peer closing
// the connection cleanly.
func isDisconnect(err error) bool {
	return err == nil || errors.Is(err, io.EOF)
}

// isTimeout reports whether the session ended on the inactivity deadline.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
