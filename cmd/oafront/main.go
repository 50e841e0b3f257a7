package main

import (
	"fmt"
	"os"

	"github.com/erraggy/oafront"
	"github.com/erraggy/oafront/cmd/oafront/commands"
)

var commandNames = []string{"generate", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	var err error
	switch command {
	case "version", "--version":
		fmt.Printf("oafront\n%s\n", oafront.BuildInfo())
		return
	case "help", "-h", "--help":
		printUsage()
		return
	case "generate":
		err = commands.HandleGenerate(os.Args[2:])
	case "mcp":
		err = commands.HandleMCP(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// suggestCommand returns the known command closest to input, or "" when
// none is within an edit distance of 2.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := levenshtein(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`oafront - OpenAPI to frontend client generator

Usage:
  oafront <command> [options]

Commands:
  generate    Generate TypeScript/JavaScript fetch clients from an OpenAPI document
  mcp         Serve generation tools over the Model Context Protocol (stdio)
  version     Show version information
  help        Show this help message

Examples:
  oafront generate -o ./src/api openapi.yaml
  oafront generate -o ./src/api -n petstore -l js https://example.com/openapi.yaml
  oafront generate --check -o ./src/api openapi.yaml

Run 'oafront <command> --help' for more information on a command.`)
}
