// Package format renders tail lines for the console,
// either through a {{placeholder}} text template or as
// one JSON object per line.
package format
