package utils

import (
	"strings"
	"unicode/utf8"
)

// SplitText splits text on separator and merges the pieces back into chunks of at most
// chunkSize runes. Roughly 'overlap' runes of trailing context are carried into the next
// chunk so answers spanning a boundary stay retrievable. Pieces longer than chunkSize are
// cut with a sliding rune window.
func SplitText(text string, chunkSize int, overlap int, separator string) []string {
	if chunkSize <= 0 {
		return []string{text}
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	if separator == "" {
		return splitRunes(strings.TrimSpace(text), chunkSize, overlap)
	}

	var pieces []string
	for _, p := range strings.Split(text, separator) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if utf8.RuneCountInString(p) > chunkSize {
			pieces = append(pieces, splitRunes(p, chunkSize, overlap)...)
			continue
		}
		pieces = append(pieces, p)
	}

	sepLen := utf8.RuneCountInString(separator)
	var chunks []string
	var window []string
	total := 0

	for _, p := range pieces {
		l := utf8.RuneCountInString(p)
		if len(window) > 0 && total+sepLen+l > chunkSize {
			chunks = append(chunks, strings.Join(window, separator))
			// Drop from the front until only the overlap remains and p fits.
			for len(window) > 0 && (total > overlap || total+sepLen+l > chunkSize) {
				total -= utf8.RuneCountInString(window[0])
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
			}
		}
		if len(window) > 0 {
			total += sepLen
		}
		window = append(window, p)
		total += l
	}
	if len(window) > 0 {
		chunks = append(chunks, strings.Join(window, separator))
	}

	return chunks
}

// splitRunes is a plain character window; it never loses data but may cut words.
func splitRunes(text string, chunkSize int, overlap int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == totalLen {
			break
		}
	}
	return chunks
}
