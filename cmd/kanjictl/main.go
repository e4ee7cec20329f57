// Command kanjictl inspects and edits the kanji study data from the shell,
// using the same configuration and store as the server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
