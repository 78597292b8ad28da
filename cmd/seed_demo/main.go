// Command seed_demo creates a demo database with public domain books.
// Usage: go run ./cmd/seed_demo [-db path/to/demo.db] [-user demo]
package main

import (
	"log"
	"os"

	"github.com/ruckusreads/ruckus/internal/cli"
)

func main() {
	cmd := cli.NewSeedDemoCommand()
	if err := cmd.ParseFlags(os.Args[1:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
	if err := cmd.Run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
