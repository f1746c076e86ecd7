// Package main provides the entry point for the connection editor, a
// terminal front-end for adding, editing, and removing NetworkManager
// connection profiles.
//
// Features:
//   - Live connection/device inventory backed by NetworkManager
//   - Per-type setting editors (WireGuard, bridge, IPv6) with validation
//   - Secure private-key storage using the system keyring
//   - Command-line interface for scripting and automation
//
// Usage:
//
//	nm-connection-editor [options] [uuid]
//
// With a connection UUID as the positional argument the editor opens
// that profile directly; without one it shows the connection list.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/yllada/nm-connection-editor/cli"
	"github.com/yllada/nm-connection-editor/common"
	"github.com/yllada/nm-connection-editor/config"
	"github.com/yllada/nm-connection-editor/model"
	"github.com/yllada/nm-connection-editor/nm"
	"github.com/yllada/nm-connection-editor/tui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")

	// CLI flags
	listConnections  = flag.Bool("list", false, "List all connection profiles")
	listDevices      = flag.Bool("devices", false, "List network devices")
	showConnection   = flag.String("show", "", "Show a profile's settings by name or UUID")
	setFields        = flag.String("set", "", "Comma-separated key=value assignments for --edit")
	editConnection   = flag.String("edit", "", "Edit a WireGuard profile by name or UUID")
	removeConnection = flag.String("remove", "", "Remove a profile by name or UUID")
	importKey        = flag.String("import-key", "", "Import a private key for a profile by name or UUID")
	genKeys          = flag.Bool("genkey", false, "Generate a WireGuard keypair")
)

func main() {
	flag.Parse()

	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("%s v%s\n", common.AppName, appVersion)
		if buildTime != "unknown" {
			fmt.Printf("  Build:  %s\n", buildTime)
			fmt.Printf("  Commit: %s\n", commitSHA)
		}
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not load configuration: %v\n", err)
		cfg = config.DefaultConfig()
	}

	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:      logLevel,
		EnableFile: cfg.FileLogging,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	provider, err := nm.NewProvider()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer provider.Close()

	if *genKeys || *listConnections || *listDevices || *showConnection != "" ||
		*editConnection != "" || *removeConnection != "" || *importKey != "" {
		runCLI(provider, cfg)
		return
	}

	// Positional argument: open a connection directly in edit mode.
	if uuid := flag.Arg(0); uuid != "" {
		if err := cli.New(provider, cfg).Open(uuid, splitAssignments(*setFields)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)

	inventory, err := model.New(provider)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(inventory, provider.Events(), cfg.Theme); err != nil {
		common.LogError("view exited with error: %v", err)
		os.Exit(1)
	}
}

// runCLI handles command-line interface operations.
func runCLI(provider common.NetworkProvider, cfg *config.Config) {
	cliApp := cli.New(provider, cfg)

	var cliErr error
	switch {
	case *genKeys:
		cliErr = cliApp.GenerateKeys()
	case *listConnections:
		cliErr = cliApp.ListConnections()
	case *listDevices:
		cliErr = cliApp.ListDevices()
	case *showConnection != "":
		cliErr = cliApp.Show(*showConnection)
	case *editConnection != "":
		cliErr = cliApp.Edit(*editConnection, splitAssignments(*setFields))
	case *removeConnection != "":
		cliErr = cliApp.Remove(*removeConnection)
	case *importKey != "":
		cliErr = cliApp.ImportPrivateKey(*importKey)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		os.Exit(1)
	}
}

// splitAssignments splits the --set argument into key=value pairs.
func splitAssignments(raw string) []string {
	if raw == "" {
		return nil
	}
	var assignments []string
	for _, part := range strings.Split(raw, ",") {
		if part != "" {
			assignments = append(assignments, part)
		}
	}
	return assignments
}
