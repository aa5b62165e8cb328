package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"lunchbot/menu"
	"lunchbot/ratelimit"
)

// testSession wires a session to the near end of a pipe and runs its read
// loop. The far end plays the IRC server.
func testSession(t *testing.T, restaurants []*menu.Restaurant, limit int) (server net.Conn, done chan error) {
	t.Helper()
	client, srv := net.Pipe()

	s := NewSession(client, botNick, "#lunch", NewRouter(restaurants), ratelimit.New(limit, time.Minute), false)
	done = make(chan error, 1)
	go func() {
		done <- s.listen(context.Background())
	}()
	t.Cleanup(func() {
		srv.Close()
		<-done
	})
	return srv, done
}

func sendLine(t *testing.T, conn net.Conn, line string) {
	t.Helper()
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := conn.Write([]byte(line + "\r\n")); err != nil {
		t.Fatalf("write %q: %v", line, err)
	}
}

func readLine(t *testing.T, r *bufio.Reader, conn net.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(time.Second))
	line, err := r.ReadString('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return trimLine(line)
}

func TestSession_AnswersPing(t *testing.T) {
	srv, _ := testSession(t, nil, 10)
	r := bufio.NewReader(srv)

	sendLine(t, srv, "PING :server123")

	if got := readLine(t, r, srv); got != "PONG lunchbot" {
		t.Errorf("reply = %q, want PONG lunchbot", got)
	}
}

func TestSession_DiscardsOversizedLine(t *testing.T) {
	srv, _ := testSession(t, nil, 10)
	r := bufio.NewReader(srv)

	long := make([]byte, 3*maxLineSize)
	for i := range long {
		long[i] = 'x'
	}
	long = append(long, '\n')
	srv.SetWriteDeadline(time.Now().Add(time.Second))
	if _, err := srv.Write(long); err != nil {
		t.Fatalf("write oversized line: %v", err)
	}

	// The loop must survive the oversized line and keep serving.
	sendLine(t, srv, "PING :server123")

	if got := readLine(t, r, srv); got != "PONG lunchbot" {
		t.Errorf("reply = %q, want PONG lunchbot", got)
	}
}

func TestSession_DispatchesAddressedCommand(t *testing.T) {
	restaurants := []*menu.Restaurant{
		{Name: "Sumo", Sources: []menu.Source{&staticSource{lines: []string{"Sushi lajitelma"}}}},
	}
	srv, _ := testSession(t, restaurants, 10)
	r := bufio.NewReader(srv)

	sendLine(t, srv, ":matti!user@host PRIVMSG #lunch :lunchbot menu")

	want := "PRIVMSG #lunch : Sumo: Sushi lajitelma"
	if got := readLine(t, r, srv); got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestSession_MultiLineMenuFraming(t *testing.T) {
	restaurants := []*menu.Restaurant{
		{Name: "Ukkohauki", Sources: []menu.Source{
			&staticSource{lines: []string{"Lohikeitto ja ruisleipa", "Nakkikastike aterialla"}},
		}},
	}
	srv, _ := testSession(t, restaurants, 10)
	r := bufio.NewReader(srv)

	sendLine(t, srv, ":matti!user@host PRIVMSG #lunch :lunchbot menu ukko")

	want := []string{
		"PRIVMSG #lunch : Ukkohauki:",
		"PRIVMSG #lunch : | Lohikeitto ja ruisleipa",
		"PRIVMSG #lunch : | Nakkikastike aterialla",
	}
	for _, w := range want {
		if got := readLine(t, r, srv); got != w {
			t.Errorf("reply = %q, want %q", got, w)
		}
	}
}

func TestSession_IgnoresMalformedAndUnaddressedLines(t *testing.T) {
	srv, _ := testSession(t, nil, 10)
	r := bufio.NewReader(srv)

	sendLine(t, srv, "ERROR")
	sendLine(t, srv, ":server 372 lunchbot :- motd")
	sendLine(t, srv, ":matti!user@host PRIVMSG #lunch :anyone hungry?")
	// A ping proves the loop survived all of the above without replying.
	sendLine(t, srv, "PING :server123")

	if got := readLine(t, r, srv); got != "PONG lunchbot" {
		t.Errorf("reply = %q, want PONG lunchbot", got)
	}
}

func TestSession_RateLimitsCommands(t *testing.T) {
	restaurants := []*menu.Restaurant{
		{Name: "Sumo", Sources: []menu.Source{&staticSource{lines: []string{"Sushi"}}}},
	}
	srv, _ := testSession(t, restaurants, 1)
	r := bufio.NewReader(srv)

	sendLine(t, srv, ":matti!user@host PRIVMSG #lunch :lunchbot list")
	if got := readLine(t, r, srv); got != "PRIVMSG #lunch : Sumo" {
		t.Errorf("reply = %q, want list reply", got)
	}

	// Second command inside the window is dropped without a reply.
	sendLine(t, srv, ":matti!user@host PRIVMSG #lunch :lunchbot list")
	sendLine(t, srv, "PING :server123")
	if got := readLine(t, r, srv); got != "PONG lunchbot" {
		t.Errorf("reply = %q, want PONG lunchbot", got)
	}
}

func TestSession_GracefulDisconnect(t *testing.T) {
	client, srv := net.Pipe()
	s := NewSession(client, botNick, "#lunch", NewRouter(nil), ratelimit.New(10, time.Minute), false)

	done := make(chan error, 1)
	go func() {
		done <- s.listen(context.Background())
	}()

	srv.Close()

	select {
	case err := <-done:
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
			t.Errorf("listen() error = %v, want EOF", err)
		}
	case <-time.After(time.Second):
		t.Fatal("listen() did not return after peer close")
	}
}
