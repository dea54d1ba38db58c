// Command ftag tags and filters files by free-form text tags.
package main

import (
	"os"

	"github.com/dukaforge/ftag/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
