package commands

import (
	"errors"
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Get = Define(Definition{
	Name:        "get",
	Aliases:     []string{"take", "pickup"},
	Usage:       "get <item>",
	Description: "pick up an item in the room",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nGet what?"))
		return false
	}
	room, ok := ctx.World.Graph().Room(ctx.Player.Room())
	if !ok {
		ctx.Player.Send(game.Ansi(game.Style("\r\nYou see only void.", game.AnsiYellow)))
		return false
	}
	item, found := room.FindItem(target)
	if !found {
		ctx.Player.Send(game.Ansi("\r\nYou don't see that here."))
		return false
	}
	if !item.Allows("take") {
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\n%s cannot be taken.", game.HighlightItemName(item.Name))))
		return false
	}
	if !ctx.Player.Inventory().Fits(item.Weight) {
		ctx.Player.Send(game.Ansi(game.Style("\r\nThat is too heavy for your pack.", game.AnsiYellow)))
		return false
	}
	// TakeItem re-resolves under the room lock: another player may have
	// grabbed it between the look and the grab.
	taken, err := room.TakeItem(item.Name)
	if err != nil {
		if errors.Is(err, game.ErrItemGone) {
			ctx.Player.Send(game.Ansi("\r\nIt is no longer there."))
		} else {
			ctx.Player.Send(game.Ansi("\r\n" + err.Error()))
		}
		return false
	}
	ctx.Player.Inventory().Add(taken)
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou pick up %s.", game.HighlightItemName(taken.Name))))
	ctx.World.BroadcastToRoom(room.ID, game.Ansi(fmt.Sprintf("\r\n%s picks up %s.", game.HighlightName(ctx.Player.Name), game.HighlightItemName(taken.Name))), ctx.Player)
	return false
})
