package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Attack = Define(Definition{
	Name:        "attack",
	Aliases:     []string{"kill", "fight"},
	Usage:       "attack <creature>",
	Description: "engage a creature in combat",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nAttack what?"))
		return false
	}
	room, ok := ctx.World.Graph().Room(ctx.Player.Room())
	if !ok {
		ctx.Player.Send(game.Ansi(game.Style("\r\nYou see only void.", game.AnsiYellow)))
		return false
	}
	npc, found := room.FindNPC(target, ctx.Player.Stat(game.StatPerception))
	if !found {
		ctx.Player.Send(game.Ansi("\r\nYou don't see that here."))
		return false
	}
	enc, err := ctx.World.EngageCombat(ctx.Player, npc, room)
	if err != nil {
		ctx.Player.Send(game.Ansi(game.Style("\r\n"+capitalize(err.Error())+".", game.AnsiYellow)))
		return false
	}
	ctx.World.BroadcastToRoom(room.ID, game.Ansi(fmt.Sprintf("\r\n%s squares off against %s!",
		game.HighlightName(ctx.Player.Name), game.HighlightNPCName(npc.Name))), ctx.Player)
	return enc.Run(ctx.Player)
})
