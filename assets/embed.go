package assets

import (
	"embed"
	"strings"
)

//go:embed phrases.txt
var phrasesFS embed.FS

// Phrases returns the embedded phrase list, one phrase per non-blank line.
// The file is part of the binary, so the result is never empty.
func Phrases() []string {
	raw, err := phrasesFS.ReadFile("phrases.txt")
	if err != nil {
		// Unreachable for an embedded file.
		panic(err)
	}
	var out []string
	for _, line := range strings.Split(string(raw), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
