// cmd/vehiclesim/main.go
package main

import (
	cmd "github.com/jamesliupenn/vehicle-simulator/internal/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the vehiclesim CLI application by delegating to the cobra root
// command defined in the commands package.
func main() {
	cmd.SetVersionInfo(version, commit, date)
	cmd.Execute()
}
