package app

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// wrapLines 将文本按最大宽度折行
// 优先在空格处断行；单个单词超宽时按字符强制断行
func wrapLines(s string, maxWidth float64, measure func(string) float64) []string {
	if s == "" || maxWidth <= 0 || measure(s) <= maxWidth {
		return []string{s}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(s) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		if measure(word) <= maxWidth {
			current = word
			continue
		}

		// 单词本身超宽
		for len(word) > 0 {
			r, size := utf8.DecodeRuneInString(word)
			next := current + string(r)
			if current != "" && measure(next) > maxWidth {
				lines = append(lines, current)
				next = string(r)
			}
			current = next
			word = word[size:]
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// measureWidth 测量单行文本宽度
func measureWidth(face *text.GoTextFace) func(string) float64 {
	return func(s string) float64 {
		if s == "" || face == nil {
			return 0
		}
		w, _ := text.Measure(s, face, 0)
		return w
	}
}
