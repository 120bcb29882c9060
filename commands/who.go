package commands

import (
	"fmt"

	"AshenKeep/internal/game"
)

var Who = Define(Definition{
	Name:        "who",
	ZeroArg:     true,
	Usage:       "who",
	Description: "list everyone in the keep",
}, func(ctx *Context) bool {
	players := ctx.World.Players()
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\n%s (%d)", game.Style("Souls within the walls", game.AnsiBold, game.AnsiCyan), len(players))))
	for _, p := range players {
		marker := ""
		if p == ctx.Player {
			marker = game.Style(" (you)", game.AnsiDim)
		}
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\n  %s%s", game.HighlightName(p.Name), marker)))
	}
	return false
})
