package export

import "strings"

// ptPerMM converts PDF points to millimetres.
const ptPerMM = 72 / 25.4

// cellPadding is the vertical space kept above and below wrapped cell text.
const cellPadding = 2

// helveticaWidths are the regular Helvetica advance widths (1/1000 em) for
// ASCII 32..126, the core font the PDF backend draws table text with.
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // ' '../
	556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, // 0..?
	1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, // @..O
	667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, // P.._
	333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // `..o
	556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584, // p..~
}

// fallbackWidth is used for runes outside printable ASCII.
const fallbackWidth = 556

// textWidth is the width of s in millimetres at size points.
func textWidth(s string, size float64) float64 {
	units := 0
	for _, r := range s {
		if r >= 32 && r <= 126 {
			units += helveticaWidths[r-32]
		} else {
			units += fallbackWidth
		}
	}
	return float64(units) * size / 1000 / ptPerMM
}

// wrapLines splits s into the lines drawn in a cell of width mm. Words are
// packed greedily with a trailing space each, the same way the PDF backend
// breaks text on spaces; a line never splits a word.
func wrapLines(s string, width, size float64) []string {
	if textWidth(s, size) < width {
		return []string{s}
	}

	lines := []string{""}
	used := 0.0
	for _, word := range strings.Split(s, " ") {
		w := textWidth(word+" ", size)
		if used+w < width {
			lines[len(lines)-1] += word + " "
			used += w
			continue
		}
		lines = append(lines, word+" ")
		used = w
	}
	return lines
}

// lineHeight is the height of one line of text at size points, in mm.
func lineHeight(size float64) float64 {
	return size / ptPerMM
}

// textTop vertically centres n lines of text at size points in a row of
// height h.
func textTop(h float64, n int, size float64) float64 {
	return (h - 3.2 - float64(n-1)*lineHeight(size)) / 2
}
