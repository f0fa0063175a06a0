// Chronos - a life dashboard for the terminal
package main

import (
	"github.com/manav03panchal/chronos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		cmd.Die(err)
	}
}
