// colsplit - Column Splitter for Text Reports
//
// colsplit infers column breaks in whitespace-aligned text reports and
// splits their lines into fields.
package main

import (
	"os"

	"github.com/ccollicutt/colsplit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
