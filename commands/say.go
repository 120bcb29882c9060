package commands

import (
	"fmt"

	"AshenKeep/internal/game"
)

var Say = Define(Definition{
	Name:        "say",
	Usage:       "say <message>",
	Description: "speak to everyone in the room",
}, func(ctx *Context) bool {
	msg := ctx.Arg
	if msg == "" {
		ctx.Player.Send(game.Ansi(game.Style("\r\nSay what?", game.AnsiYellow)))
		return false
	}
	ctx.World.BroadcastToRoom(ctx.Player.Room(), game.Ansi(fmt.Sprintf("\r\n%s says: %s", game.HighlightName(ctx.Player.Name), msg)), ctx.Player)
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\n%s %s", game.Style("You say:", game.AnsiBold, game.AnsiYellow), msg)))
	if room, ok := ctx.World.Graph().Room(ctx.Player.Room()); ok {
		ctx.World.NotifySay(room, ctx.Player, msg)
	}
	return false
})
