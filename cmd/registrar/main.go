// Command registrar manages course types, courses, course offerings, and
// student registrations from the command line.
package main

import (
	"os"

	"github.com/mesh-intelligence/registrar/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
