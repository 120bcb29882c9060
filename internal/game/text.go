package game

import "strings"

// WrapText inserts soft line breaks so each line fits within the given
// column width. Paragraph breaks are preserved and a minimum width is
// enforced to avoid over-wrapping.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	if width < 20 {
		width = 20
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))
	for _, paragraph := range paragraphs {
		trimmed := strings.TrimSpace(paragraph)
		if trimmed == "" {
			out = append(out, "")
			continue
		}
		out = append(out, strings.Join(wrapLine(trimmed, width), "\n"))
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, width int) []string {
	var lines []string
	current := ""
	flush := func() {
		if current != "" {
			lines = append(lines, current)
			current = ""
		}
	}
	for _, word := range strings.Fields(line) {
		for _, piece := range splitLongWord(word, width) {
			switch {
			case current == "":
				current = piece
			case len([]rune(current))+1+len([]rune(piece)) > width:
				flush()
				current = piece
			default:
				current += " " + piece
			}
		}
	}
	flush()
	return lines
}

// splitLongWord chunks a word that cannot fit on one line into
// width-sized rune slices. Short words come back whole.
func splitLongWord(word string, width int) []string {
	runes := []rune(word)
	if len(runes) <= width {
		return []string{word}
	}
	pieces := make([]string, 0, (len(runes)+width-1)/width)
	for len(runes) > width {
		pieces = append(pieces, string(runes[:width]))
		runes = runes[width:]
	}
	if len(runes) > 0 {
		pieces = append(pieces, string(runes))
	}
	return pieces
}
