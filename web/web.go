// Package web embeds the static landing page.
package web

import _ "embed"

// Index is the landing page served at /.
//
//go:embed index.html
var Index []byte
