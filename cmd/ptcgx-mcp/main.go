package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	ptcgxmcp "github.com/peterkuimelis/ptcgx/internal/mcp"
)

func main() {
	cards := flag.String("cards", "", "path to card pool YAML file (empty = built-in demo set)")
	flag.Parse()

	ptcgxmcp.SetCardFile(*cards)

	s := server.NewMCPServer("ptcgx", "1.0.0")
	ptcgxmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
