package game

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"
)

// Dispatcher executes a command for the connected player.
// Returning true indicates the connection should terminate.
type Dispatcher func(*World, *Player, string) bool

const (
	welcomeAtmosphere = "Torchlight gutters along the walls of Ashen Keep as the gate groans open."
	welcomePrompt     = "Type 'help' to learn the essentials or 'look' to survey your surroundings."
	farewellLine      = "The gate of Ashen Keep closes behind you."
)

// ListenAndServe accepts telnet connections on addr and runs one
// session loop per connection. It returns when the listener encounters
// a fatal error.
func ListenAndServe(addr string, world *World, dispatcher Dispatcher) error {
	if dispatcher == nil {
		return fmt.Errorf("dispatcher must not be nil")
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	fmt.Printf("Ashen Keep listening on %s (telnet + ANSI ready)\n", ln.Addr())

	return acceptConnections(ln, func(conn net.Conn) {
		go func() {
			session := NewTelnetSession(conn)
			defer session.Close()
			handleSession(session, world, dispatcher)
		}()
	})
}

// handleSession runs the full lifetime of one player on one session: a
// name handshake, the writer goroutine, and the blocking read-dispatch
// loop. Both the telnet and websocket listeners funnel into it.
func handleSession(session Session, world *World, dispatcher Dispatcher) {
	name, err := promptForName(session)
	if err != nil {
		return
	}

	p := NewPlayer(name, session, world.Graph().StartID())

	// Writer goroutine: the session is the only writer consumer, so a
	// closed Output channel cleanly ends it. The first failed write is
	// logged; the rest are the same dead connection repeating itself.
	go func() {
		logged := false
		for out := range p.Output {
			if err := session.WriteString(out); err != nil && !logged {
				fmt.Printf("Write to %s failed: %v\n", p.Name, err)
				logged = true
			}
		}
	}()

	world.AddPlayer(p)

	p.Send(Ansi("\r\n" + Style(welcomeAtmosphere, AnsiMagenta, AnsiBold) + "\r\n"))
	p.Send(Ansi("Welcome, " + HighlightName(p.Name) + Style("!\r\n", AnsiMagenta)))
	p.Send(Ansi(Style(welcomePrompt+"\r\n", AnsiGreen)))
	world.BroadcastToRoom(p.Room(), Ansi(fmt.Sprintf("\r\n%s arrives.", HighlightName(p.Name))), p)
	dispatcher(world, p, "look")
	if room, ok := world.Graph().Room(p.Room()); ok {
		world.NotifyEnter(room, p)
	}

	for {
		line, err := session.ReadLine()
		if err != nil {
			break
		}
		line = Trim(line)
		if line == "" {
			p.Send(Prompt(p))
			continue
		}
		if strings.EqualFold(line, "quit") {
			break
		}
		if !p.Alive() {
			break
		}
		if quit := dispatcher(world, p, line); quit {
			break
		}
		p.Send(Prompt(p))
	}

	p.Send(Ansi("\r\n" + Style(farewellLine, AnsiMagenta, AnsiBold) + "\r\n"))
	p.Send(Ansi("Until next time, " + HighlightName(p.Name) + Style(".\r\n", AnsiMagenta)))
	world.BroadcastToRoom(p.Room(), Ansi(fmt.Sprintf("\r\n%s leaves.", HighlightName(p.Name))), p)
	world.RemovePlayer(p)
}

func promptForName(session Session) (string, error) {
	if err := session.WriteString(Ansi("What is your name? ")); err != nil {
		return "", err
	}
	line, err := session.ReadLine()
	if err != nil {
		return "", err
	}
	name := SanitizeName(line)
	if name == "" {
		name = "Someone"
	}
	return name, nil
}

const (
	acceptBackoffStart = 50 * time.Millisecond
	acceptBackoffMax   = time.Second
)

var acceptSleep = time.Sleep

func acceptConnections(ln net.Listener, handle func(net.Conn)) error {
	backoff := acceptBackoffStart
	for {
		conn, err := ln.Accept()
		if err != nil {
			if isTemporaryAcceptError(err) {
				fmt.Printf("Temporary error accepting connection: %v; retrying in %s\n", err, backoff)
				acceptSleep(backoff)
				backoff *= 2
				if backoff > acceptBackoffMax {
					backoff = acceptBackoffMax
				}
				continue
			}
			return err
		}
		backoff = acceptBackoffStart
		handle(conn)
	}
}

func isTemporaryAcceptError(err error) bool {
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() || ne.Temporary() {
			return true
		}
	}
	return errors.Is(err, os.ErrDeadlineExceeded)
}
