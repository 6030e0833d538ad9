package assets

import (
	"embed"
	"io/fs"
)

//go:embed data
var data embed.FS

// Data returns the bundled content tree: monsters.yaml, treasure.yaml,
// rooms.yaml and questions/*.yaml at its root.
func Data() fs.FS {
	sub, err := fs.Sub(data, "data")
	if err != nil {
		panic(err) // embed path is fixed at compile time
	}
	return sub
}
