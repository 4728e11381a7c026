// Package data embeds the default dungeon content.
package data

import (
	"embed"

	"github.com/nathoo/temple/engine/content"
	"github.com/nathoo/temple/loader"
)

//go:embed temple/*.lua
var FS embed.FS

// Dir is the directory of the default content inside FS.
const Dir = "temple"

// Default loads the embedded Temple of Yendor content.
func Default() (*content.Registry, error) {
	return loader.LoadFS(FS, Dir)
}
