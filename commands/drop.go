package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Drop = Define(Definition{
	Name:        "drop",
	Usage:       "drop <item>",
	Description: "leave a carried item on the ground",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nDrop what?"))
		return false
	}
	room, ok := ctx.World.Graph().Room(ctx.Player.Room())
	if !ok {
		ctx.Player.Send(game.Ansi(game.Style("\r\nYou see only void.", game.AnsiYellow)))
		return false
	}

	inv := ctx.Player.Inventory()
	item, found := inv.Find(target)
	if found {
		inv.Remove(item)
	} else {
		released, err := ctx.Player.Release(target)
		if err != nil {
			ctx.Player.Send(game.Ansi("\r\nYou aren't carrying that."))
			return false
		}
		item = released
	}

	room.AddItem(item)
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou drop %s.", game.HighlightItemName(item.Name))))
	ctx.World.BroadcastToRoom(room.ID, game.Ansi(fmt.Sprintf("\r\n%s drops %s.", game.HighlightName(ctx.Player.Name), game.HighlightItemName(item.Name))), ctx.Player)
	return false
})
