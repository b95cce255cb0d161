package compose

import (
	"strings"

	"blockmeta/internal/metadata"
	"blockmeta/internal/paths"
)

// PathInfo holds the record fields implied by a block's location.
type PathInfo struct {
	Name     string
	Language string
	Category string
	Filename string
	Author   string
}

// Derive computes PathInfo from a block name (see paths.BlockName).
// The first segment is the language, the segments between it and the filename form the
// category, and the author is the filename part after the last "__" separator with
// everything from the first dot removed.
func Derive(name string) PathInfo {
	name = paths.NormalizePath(name)
	segs := paths.Segments(name)

	info := PathInfo{Name: name, Language: "unknown", Category: "misc"}
	if len(segs) == 0 {
		return info
	}
	info.Language = segs[0]
	info.Filename = segs[len(segs)-1]
	if len(segs) > 2 {
		info.Category = strings.Join(segs[1:len(segs)-1], "/")
	}

	parts := strings.Split(info.Filename, "__")
	author, _, _ := strings.Cut(parts[len(parts)-1], ".")
	info.Author = author
	return info
}

// defaultPlatforms maps a language segment to its target platforms.
var defaultPlatforms = map[string][]string{
	"python": {"linux", "macos"},
	"ps1":    {"windows"},
}

var fallbackPlatforms = []string{"linux", "macos"}

// outputs maps a block type to its (output_type, returns) pair.
var outputs = map[metadata.BlockType][2]string{
	metadata.BlockTemplate: {"str", "str"},
	metadata.BlockFunction: {"void", "void"},
	metadata.BlockScript:   {"", ""},
}
