package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/erraggy/oasreduce"
	"github.com/erraggy/oasreduce/cmd/oasreduce/commands"
	"github.com/erraggy/oasreduce/internal/cliutil"
	"github.com/erraggy/oasreduce/oaserrors"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// commandNames lists every subcommand, used for typo suggestions.
var commandNames = []string{"reduce", "endpoints", "mcp", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	// Without a subcommand the arguments belong to reduce.
	if len(args) == 0 || strings.HasPrefix(args[0], "-") && !isTopLevelFlag(args[0]) {
		return exitCode(stderr, commands.HandleReduce(args))
	}

	command := args[0]
	switch command {
	case "version", "--version":
		if len(args) > 1 && (args[1] == "--verbose" || args[1] == "-v") {
			cliutil.Writef(stdout, "%s\n", buildInfo())
			return exitOK
		}
		cliutil.Writef(stdout, "oasreduce v%s\n", oasreduce.Version())
		return exitOK
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	case "reduce":
		return exitCode(stderr, commands.HandleReduce(args[1:]))
	case "endpoints":
		return exitCode(stderr, commands.HandleEndpoints(args[1:]))
	case "mcp":
		return exitCode(stderr, commands.HandleMCP(args[1:]))
	default:
		cliutil.Writef(stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			cliutil.Writef(stderr, "Did you mean: %s?\n", suggestion)
		}
		cliutil.Writef(stderr, "\n")
		printUsage(stderr)
		return exitUsage
	}
}

// isTopLevelFlag reports whether arg is handled by main rather than reduce.
func isTopLevelFlag(arg string) bool {
	switch arg {
	case "-h", "--help", "--version":
		return true
	}
	return false
}

// exitCode prints err and maps it to a process exit code: configuration
// and usage errors exit with 2, everything else with 1.
func exitCode(stderr io.Writer, err error) int {
	if err == nil {
		return exitOK
	}
	cliutil.Writef(stderr, "Error: %v\n", err)
	if errors.Is(err, oaserrors.ErrConfig) {
		return exitUsage
	}
	return exitError
}

// suggestCommand returns the closest known command within edit distance 2,
// or "" when nothing is close enough.
func suggestCommand(input string) string {
	best := ""
	bestDist := 3
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
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func printUsage(w io.Writer) {
	usage := `oasreduce - Reduce OpenAPI documents to selected endpoints

Usage:
  oasreduce [reduce] [flags] [file|url|-]
  oasreduce <command> [flags]

Commands:
  reduce      Keep only the selected endpoints and the components they reference (default)
  endpoints   List the endpoint selectors a document defines
  mcp         Serve reduce and list_endpoints as MCP tools over stdio
  version     Show version information
  help        Show this help message

Examples:
  oasreduce --file openapi.json --endpoint GET:/blueprints --endpoint POST:/compose
  oasreduce reduce -f openapi.yaml -e /pets --format yaml -o pets.yaml
  oasreduce endpoints openapi.json

Run 'oasreduce <command> --help' for more information on a command.
`
	cliutil.Writef(w, "%s", usage)
}

// buildInfo is printed by 'oasreduce version --verbose'.
func buildInfo() string {
	return fmt.Sprintf("oasreduce v%s\n%s", oasreduce.Version(), oasreduce.BuildInfo())
}
