package main

import (
	"log"

	"github.com/jjalle/godbc/app/inspect"
	"github.com/jjalle/godbc/internal/cli"
)

func main() {
	c := cli.NewCLI(
		"dbcparse",
		"Parse DBC files describing CAN bus networks into a cross-linked object model.",
	)

	c.AddCommands(
		inspect.NewCommand(),
	)

	if err := c.Run(); err != nil {
		log.Fatal(err)
	}
}
