// The main package for the champstats-crawler executable.
package main

import (
	"github.com/riftdata/champstats-crawler/cmd"
)

func main() {
	cmd.Execute()
}
