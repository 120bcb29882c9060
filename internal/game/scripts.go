package game

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// NPCScriptContext is handed to NPC reaction scripts. Speaker names the
// player whose arrival or speech triggered the hook.
type NPCScriptContext struct {
	world   *World
	room    *Room
	npc     *NPC
	Speaker string
	Message string
}

func (ctx *NPCScriptContext) Say(text string) {
	if ctx == nil || ctx.world == nil {
		return
	}
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return
	}
	message := Ansi(fmt.Sprintf("\r\n%s says, \"%s\"", HighlightNPCName(ctx.npc.Name), cleaned))
	ctx.world.BroadcastToRoom(ctx.room.ID, message, nil)
}

func (ctx *NPCScriptContext) Emote(action string) {
	if ctx == nil || ctx.world == nil {
		return
	}
	cleaned := strings.TrimSpace(action)
	if cleaned == "" {
		return
	}
	message := Ansi(fmt.Sprintf("\r\n%s %s", HighlightNPCName(ctx.npc.Name), cleaned))
	ctx.world.BroadcastToRoom(ctx.room.ID, message, nil)
}

func (ctx *NPCScriptContext) Tell(player *Player, text string) {
	if ctx == nil || ctx.world == nil || player == nil {
		return
	}
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return
	}
	message := Ansi(fmt.Sprintf("\r\n%s tells you, \"%s\"", HighlightNPCName(ctx.npc.Name), cleaned))
	ctx.world.deliver(player, message)
}

type scriptEntry struct {
	script *compiledScript
	err    error
}

type compiledScript struct {
	onEnter func(map[string]any)
	onSay   func(map[string]any)
}

// ScriptEngine compiles and caches NPC reaction scripts. Scripts are
// plain Go source evaluated with yaegi; the cache key is a hash of the
// source so identical scripts shared between NPCs compile once.
type ScriptEngine struct {
	mu      sync.RWMutex
	scripts map[string]*scriptEntry
}

func NewScriptEngine() *ScriptEngine {
	return &ScriptEngine{scripts: make(map[string]*scriptEntry)}
}

func (e *ScriptEngine) callOnEnter(world *World, room *Room, npc *NPC, p *Player) {
	if e == nil || npc == nil {
		return
	}
	script, err := e.scriptFor(npc.Script)
	if err != nil {
		fmt.Printf("NPC %s script failed to load: %v\n", npc.Name, err)
		return
	}
	if script == nil || script.onEnter == nil {
		return
	}
	ctx := &NPCScriptContext{world: world, room: room, npc: npc, Speaker: p.Name}
	e.invoke(npc.Name, "OnEnter", func() {
		script.onEnter(e.payload(ctx, p))
	})
}

func (e *ScriptEngine) callOnSay(world *World, room *Room, npc *NPC, p *Player, message string) {
	if e == nil || npc == nil {
		return
	}
	script, err := e.scriptFor(npc.Script)
	if err != nil {
		fmt.Printf("NPC %s script failed to load: %v\n", npc.Name, err)
		return
	}
	if script == nil || script.onSay == nil {
		return
	}
	ctx := &NPCScriptContext{world: world, room: room, npc: npc, Speaker: p.Name, Message: message}
	e.invoke(npc.Name, "OnSay", func() {
		script.onSay(e.payload(ctx, p))
	})
}

// invoke isolates script panics so a broken script cannot take down the
// player's connection goroutine.
func (e *ScriptEngine) invoke(name, hook string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("script %s %s panic: %v\n", name, hook, r)
		}
	}()
	fn()
}

func (e *ScriptEngine) payload(ctx *NPCScriptContext, p *Player) map[string]any {
	payload := map[string]any{
		"say": func(text string) {
			ctx.Say(text)
		},
		"emote": func(action string) {
			ctx.Emote(action)
		},
		"tell": func(text string) {
			ctx.Tell(p, text)
		},
		"npc":     ctx.npc.Name,
		"room":    ctx.room.Name,
		"speaker": ctx.Speaker,
	}
	if strings.TrimSpace(ctx.Message) != "" {
		payload["message"] = ctx.Message
	}
	return payload
}

func (e *ScriptEngine) scriptFor(source string) (*compiledScript, error) {
	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return nil, nil
	}
	key := hashScript(trimmed)
	e.mu.RLock()
	entry, ok := e.scripts[key]
	e.mu.RUnlock()
	if ok {
		return entry.script, entry.err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if entry, ok := e.scripts[key]; ok {
		return entry.script, entry.err
	}
	script, err := e.compile(trimmed)
	e.scripts[key] = &scriptEntry{script: script, err: err}
	return script, err
}

func (e *ScriptEngine) compile(source string) (*compiledScript, error) {
	interpreter := interp.New(interp.Options{})
	interpreter.Use(stdlib.Symbols)
	if _, err := interpreter.Eval(source); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	compiled := &compiledScript{}
	if value, err := interpreter.Eval("OnEnter"); err == nil {
		fn, ok := value.Interface().(func(map[string]any))
		if !ok {
			return nil, fmt.Errorf("OnEnter has unexpected type %T", value.Interface())
		}
		compiled.onEnter = fn
	} else if !isUndefinedSymbol(err) {
		return nil, fmt.Errorf("OnEnter: %w", err)
	}
	if value, err := interpreter.Eval("OnSay"); err == nil {
		fn, ok := value.Interface().(func(map[string]any))
		if !ok {
			return nil, fmt.Errorf("OnSay has unexpected type %T", value.Interface())
		}
		compiled.onSay = fn
	} else if !isUndefinedSymbol(err) {
		return nil, fmt.Errorf("OnSay: %w", err)
	}
	return compiled, nil
}

func hashScript(src string) string {
	sum := sha1.Sum([]byte(src))
	return hex.EncodeToString(sum[:])
}

func isUndefinedSymbol(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "undefined") || strings.Contains(msg, "not declared")
}
