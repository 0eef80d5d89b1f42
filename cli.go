//go:build cli
// +build cli

package main

import (
	_ "catalog.GO/custom"

	"catalog.GO/cmd"
	"catalog.GO/config"
)

func main() {
	config.LoadEnv()
	cmd.Execute()
}
