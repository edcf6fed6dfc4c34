// Package schemas embeds the JSON Schemas that every structured generation stage must satisfy.
package schemas

import "embed"

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
