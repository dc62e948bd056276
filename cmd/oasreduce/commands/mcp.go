package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasreduce/internal/cliutil"
	"github.com/erraggy/oasreduce/internal/mcpserver"
	"github.com/erraggy/oasreduce/oaserrors"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It takes no flags;
// the server is configured through OASREDUCE_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasreduce mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the reduce and list_endpoints tools over the Model Context Protocol on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_CACHE_ENABLED       cache parsed documents (default: true)\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_CACHE_MAX_SIZE      maximum cached documents (default: 10)\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_CACHE_FILE_TTL      TTL for file documents (default: 15m)\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_CACHE_URL_TTL       TTL for URL documents (default: 5m)\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_CACHE_CONTENT_TTL   TTL for inline documents (default: 15m)\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_MAX_INLINE_SIZE     maximum inline content in bytes (default: 10485760)\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_ALLOW_PRIVATE_IPS   allow fetching from private networks (default: false)\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_FALLBACK_ON_ERROR   return the full document when reduction fails (default: true)\n")
		cliutil.Writef(fs.Output(), "  OASREDUCE_LIST_LIMIT          default list_endpoints page size (default: 100)\n")
	}

	return fs
}

// HandleMCP executes the mcp command, serving until stdin closes or the
// process is interrupted.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return &oaserrors.ConfigError{Option: "flags", Cause: err}
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return &oaserrors.ConfigError{Option: "mcp", Message: "mcp command takes no arguments"}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := mcpserver.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
