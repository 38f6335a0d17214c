// Command browserslist prints the browsers and runtimes selected by
// browserslist queries.
//
// Usage:
//
//	browserslist [flags] [queries...]
//	browserslist validate
//
// With no queries, the configuration for the current directory is used.
package main

import "github.com/albertocavalcante/go-browserslist/cmd/browserslist/internal"

func main() {
	internal.Execute()
}
