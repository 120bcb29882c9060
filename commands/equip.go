package commands

import (
	"fmt"
	"strings"

	"AshenKeep/internal/game"
)

var Wear = Define(Definition{
	Name:        "wear",
	Aliases:     []string{"equip"},
	Usage:       "wear <item>",
	Description: "wear a carried item in its slot",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nWear what?"))
		return false
	}
	inv := ctx.Player.Inventory()
	item, ok := inv.Find(target)
	if !ok {
		ctx.Player.Send(game.Ansi("\r\nYou aren't carrying that."))
		return false
	}
	if !item.Wearable {
		ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou cannot wear %s.", game.HighlightItemName(item.Name))))
		return false
	}
	inv.Remove(item)
	if err := ctx.Player.Equip(item); err != nil {
		inv.Add(item)
		ctx.Player.Send(game.Ansi(game.Style("\r\n"+capitalize(err.Error())+".", game.AnsiYellow)))
		return false
	}
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou wear %s.", game.HighlightItemName(item.Name))))
	return false
})

var Remove = Define(Definition{
	Name:        "remove",
	Aliases:     []string{"unequip"},
	Usage:       "remove <item>",
	Description: "take off a worn item",
}, func(ctx *Context) bool {
	target := strings.TrimSpace(ctx.Arg)
	if target == "" {
		ctx.Player.Send(game.Ansi("\r\nRemove what?"))
		return false
	}
	item, err := ctx.Player.Unequip(target)
	if err != nil {
		ctx.Player.Send(game.Ansi("\r\nYou aren't wearing that."))
		return false
	}
	if !ctx.Player.Inventory().Fits(item.Weight) {
		// The slot was just vacated, so wearing it again cannot fail.
		_ = ctx.Player.Equip(item)
		ctx.Player.Send(game.Ansi(game.Style("\r\nYour pack is too full to take that.", game.AnsiYellow)))
		return false
	}
	ctx.Player.Inventory().Add(item)
	ctx.Player.Send(game.Ansi(fmt.Sprintf("\r\nYou take off %s.", game.HighlightItemName(item.Name))))
	return false
})

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
