// Command lgrep is a fully local semantic code-search engine.
package main

import (
	"os"

	"github.com/ReedMe1234/lgrep/cmd/lgrep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
