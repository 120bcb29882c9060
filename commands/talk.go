package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Talk = Define(Definition{
	Name:        "talk",
	Aliases:     []string{"greet"},
	Usage:       "talk <creature>",
	Description: "strike up a conversation",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nTalk to whom?"))
		return false
	}
	room, ok := ctx.World.Graph().Room(ctx.Player.Room())
	if !ok {
		ctx.Player.Send(game.Ansi(game.Style("\r\nYou see only void.", game.AnsiYellow)))
		return false
	}
	npc, found := room.FindNPC(target, ctx.Player.Stat(game.StatPerception))
	if !found {
		ctx.Player.Send(game.Ansi("\r\nYou don't see them here."))
		return false
	}
	// Enemies answer with steel, not words.
	if npc.Faction() == game.FactionEnemy {
		ctx.Player.Send(game.Ansi(game.Style(fmt.Sprintf("\r\n%s has no interest in talk!", game.HighlightNPCName(npc.Name)), game.AnsiRed)))
		enc, err := ctx.World.EngageCombat(ctx.Player, npc, room)
		if err != nil {
			ctx.Player.Send(game.Ansi(game.Style("\r\n"+capitalize(err.Error())+".", game.AnsiYellow)))
			return false
		}
		return enc.Run(ctx.Player)
	}
	conv, err := ctx.World.BeginConversation(ctx.Player, npc)
	if err != nil {
		ctx.Player.Send(game.Ansi(game.Style("\r\n"+capitalize(err.Error())+".", game.AnsiYellow)))
		return false
	}
	return conv.Run()
})
