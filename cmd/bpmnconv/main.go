package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/bpmnconv"
	"github.com/erraggy/bpmnconv/cmd/bpmnconv/commands"
	"github.com/erraggy/bpmnconv/internal/cliutil"
)

// commandNames lists every command for typo suggestions.
var commandNames = []string{"convert", "check", "expression", "mcp", "version", "help"}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1], os.Args[2:])
	stop()
	if err != nil {
		cliutil.Writef(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string) error {
	switch command {
	case "version", "-v", "--version":
		cliutil.Writef(os.Stdout, "bpmnconv v%s\n", bpmnconv.Version())
		if len(args) > 0 && (args[0] == "-l" || args[0] == "--long") {
			cliutil.Writef(os.Stdout, "%s\n", bpmnconv.BuildInfo())
		}
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	case "convert":
		return commands.HandleConvert(ctx, args)
	case "check":
		return commands.HandleCheck(ctx, args)
	case "expression":
		return commands.HandleExpression(args)
	case "mcp":
		return commands.HandleMCP(ctx, args)
	default:
		msg := fmt.Sprintf("unknown command: %s", command)
		if s := suggestCommand(command); s != "" {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		printUsage()
		return fmt.Errorf("%s", msg)
	}
}

// suggestCommand returns the command closest to input, or "" when none is
// within two edits.
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
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

func printUsage() {
	cliutil.Writef(os.Stderr, `bpmnconv - Camunda 7 to Zeebe BPMN converter

Usage:
  bpmnconv <command> [flags] [arguments]

Commands:
  convert     Convert models and report what changed
  check       Report what a conversion would change without converting
  expression  Translate a JUEL expression to FEEL
  mcp         Serve the conversion tools over MCP on stdio
  version     Print the version (--long for build details)
  help        Show this help

Run 'bpmnconv <command> --help' for the flags of a command.

Examples:
  bpmnconv check order.bpmn
  bpmnconv convert order.bpmn -o order-zeebe.bpmn
  bpmnconv convert --parallel 4 -o converted/ models/
  bpmnconv expression '${amount gt 100}'
`)
}
