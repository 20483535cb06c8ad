package commands

import (
	"context"
	"errors"
	"flag"

	"github.com/erraggy/bpmnconv/internal/cliutil"
	"github.com/erraggy/bpmnconv/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. The server is
// configured through BPMNCONV_* environment variables only.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: bpmnconv mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the convert, check and transform_expression tools over MCP on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  BPMNCONV_CONFIG          converter settings file\n")
		cliutil.Writef(fs.Output(), "  BPMNCONV_STRICT          fail conversions that produce warnings (default: false)\n")
		cliutil.Writef(fs.Output(), "  BPMNCONV_MIN_SEVERITY    hide messages below this severity (default: info)\n")
		cliutil.Writef(fs.Output(), "  BPMNCONV_RESULT_LIMIT    element results per page (default: 100)\n")
		cliutil.Writef(fs.Output(), "  BPMNCONV_CACHE_ENABLED   cache model files and downloads (default: true)\n")
	}
	return fs
}

// HandleMCP executes the mcp command. It blocks until the client
// disconnects or ctx is canceled.
func HandleMCP(ctx context.Context, args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	return mcpserver.Run(ctx)
}
