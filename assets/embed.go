// Package assets embeds the default word lists.
package assets

import (
	"embed"
	"io/fs"
)

const (
	AnswersFile = "answers.txt"
	AllowedFile = "allowed.txt"
)

//go:embed answers.txt allowed.txt
var FS embed.FS

// Open opens one of the embedded lists.
func Open(name string) (fs.File, error) {
	return FS.Open(name)
}
