// Package tmpl embeds the application templates
package tmpl

import "embed"

// FS is the embedded filesystem
//
//go:embed layouts/*.gohtml pages/*.gohtml errors/*.gohtml
var FS embed.FS
