package commands

import (
	"fmt"

	"AshenKeep/internal/game"
)

// yes and no exist as free-standing commands so a stray answer outside
// a prompt reads as an emote instead of an error.

var Yes = Define(Definition{
	Name:        "yes",
	Aliases:     []string{"y"},
	ZeroArg:     true,
	Usage:       "yes",
	Description: "nod in agreement",
}, func(ctx *Context) bool {
	ctx.Player.Send(game.Ansi("\r\nYou nod."))
	ctx.World.BroadcastToRoom(ctx.Player.Room(), game.Ansi(fmt.Sprintf("\r\n%s nods.", game.HighlightName(ctx.Player.Name))), ctx.Player)
	return false
})

var No = Define(Definition{
	Name:        "no",
	Aliases:     []string{"n"},
	ZeroArg:     true,
	Usage:       "no",
	Description: "shake your head",
}, func(ctx *Context) bool {
	ctx.Player.Send(game.Ansi("\r\nYou shake your head."))
	ctx.World.BroadcastToRoom(ctx.Player.Room(), game.Ansi(fmt.Sprintf("\r\n%s shakes their head.", game.HighlightName(ctx.Player.Name))), ctx.Player)
	return false
})
