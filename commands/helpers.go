package commands

import (
	"strings"

	"AshenKeep/internal/game"
)

// wrapWidth asks the session for its window size when it can report
// one, falling back to the classic 80 columns.
func wrapWidth(p *game.Player) int {
	if sized, ok := p.Session.(interface{ Size() (int, int) }); ok {
		if width, _ := sized.Size(); width > 0 {
			return width
		}
	}
	return 80
}

func itemNames(items []*game.Item) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = game.HighlightItemName(item.Name)
	}
	return names
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
