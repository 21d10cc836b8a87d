// Package content embeds the default Crystal Kingdoms world definition.
package content

import (
	"embed"
	"io/fs"
)

//go:embed crystal_kingdoms/*.lua
var files embed.FS

// Default returns the embedded world as a filesystem rooted at its .lua files.
func Default() fs.FS {
	sub, err := fs.Sub(files, "crystal_kingdoms")
	if err != nil {
		// The embed pattern above guarantees the directory exists.
		panic(err)
	}
	return sub
}
