package commands

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"AshenKeep/internal/game"
)

// Definition describes a single command's metadata. ZeroArg commands
// take no target: any remainder after the command word is discarded.
type Definition struct {
	Name        string
	Aliases     []string
	ZeroArg     bool
	Usage       string
	Description string
}

// Handler executes a command.
// Returning true indicates the connection should terminate.
type Handler func(*Context) bool

// Command couples metadata with the executable handler.
type Command struct {
	Definition
	Handler Handler
}

// Context provides the runtime data available to a command handler.
type Context struct {
	World  *game.World
	Player *game.Player
	Arg    string
	Input  string
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Command)
	ordered    []*Command
)

// Define registers a new command using the provided definition and handler.
// It panics when metadata is incomplete or duplicates an existing command.
func Define(def Definition, handler Handler) *Command {
	if handler == nil {
		panic("commands: handler must not be nil")
	}
	if strings.TrimSpace(def.Name) == "" {
		panic("commands: command must have a name")
	}

	cmd := &Command{Definition: def, Handler: handler}

	registryMu.Lock()
	defer registryMu.Unlock()

	registerName := func(name string) {
		key := strings.ToLower(name)
		if _, exists := registry[key]; exists {
			panic(fmt.Sprintf("commands: duplicate registration for %q", name))
		}
		registry[key] = cmd
	}

	registerName(def.Name)
	for _, alias := range def.Aliases {
		if strings.TrimSpace(alias) == "" {
			continue
		}
		registerName(alias)
	}

	ordered = append(ordered, cmd)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})

	return cmd
}

// All returns the registered commands sorted by primary name.
func All() []*Command {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]*Command, len(ordered))
	copy(out, ordered)
	return out
}

// Find resolves a command by name or alias.
func Find(name string) (*Command, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	cmd, ok := registry[strings.ToLower(name)]
	return cmd, ok
}

// deadAllowed lists what a player awaiting revival may still do.
var deadAllowed = map[string]bool{
	"help":      true,
	"look":      true,
	"who":       true,
	"inventory": true,
	"say":       true,
}

// Dispatch splits the input line on the first whitespace, looks up the
// command, and executes exactly one handler on the calling player's own
// goroutine. Unrecognized commands are rejected here, not by the
// connection loop, so a typo never terminates the session.
func Dispatch(world *game.World, player *game.Player, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	name := strings.ToLower(parts[0])

	cmd, ok := Find(name)
	if !ok {
		player.Send(game.Ansi(game.Style("\r\nYou cannot do that.", game.AnsiYellow)))
		return false
	}
	if player.Dead() && !deadAllowed[cmd.Name] {
		player.Send(game.Ansi(game.Style("\r\nYou are dead. Only a revival can free you.", game.AnsiYellow)))
		return false
	}

	arg := ""
	if !cmd.ZeroArg {
		arg = strings.TrimSpace(strings.TrimPrefix(line, parts[0]))
	}
	ctx := &Context{
		World:  world,
		Player: player,
		Arg:    arg,
		Input:  parts[0],
	}
	return cmd.Handler(ctx)
}
