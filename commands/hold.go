package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Hold = Define(Definition{
	Name:        "hold",
	Aliases:     []string{"wield"},
	Usage:       "hold <item>",
	Description: "grip a carried item in hand",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nHold what?"))
		return false
	}
	inv := ctx.Player.Inventory()
	item, ok := inv.Find(target)
	if !ok {
		ctx.Player.Send(game.Ansi("\r\nYou aren't carrying that."))
		return false
	}
	inv.Remove(item)
	if err := ctx.Player.Hold(item); err != nil {
		inv.Add(item)
		ctx.Player.Send(game.Ansi(game.Style("\r\n"+capitalize(err.Error())+".", game.AnsiYellow)))
		return false
	}
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou grip %s.", game.HighlightItemName(item.Name))))
	return false
})

var Release = Define(Definition{
	Name:        "release",
	Aliases:     []string{"lower"},
	Usage:       "release <item>",
	Description: "return a held item to your pack",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nRelease what?"))
		return false
	}
	item, err := ctx.Player.Release(target)
	if err != nil {
		ctx.Player.Send(game.Ansi("\r\nYou aren't holding that."))
		return false
	}
	if !ctx.Player.Inventory().Fits(item.Weight) {
		// A hand just opened up, so gripping it again cannot fail.
		_ = ctx.Player.Hold(item)
		ctx.Player.Send(game.Ansi(game.Style("\r\nYour pack is too full to take that.", game.AnsiYellow)))
		return false
	}
	ctx.Player.Inventory().Add(item)
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou stow %s.", game.HighlightItemName(item.Name))))
	return false
})
