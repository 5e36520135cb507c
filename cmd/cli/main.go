package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/boardforge/internal/app"
	"github.com/vk/boardforge/internal/boardhcl"
	"github.com/vk/boardforge/internal/boardyaml"
	"github.com/vk/boardforge/internal/cli"
	"github.com/vk/boardforge/internal/config"
)

// main is the entrypoint for the boardforge application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling.
func run(outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader, err := loaderFor(appConfig.BoardPath)
	if err != nil {
		return &cli.ExitError{Code: 2, Message: err.Error()}
	}

	boardApp := app.NewApp(outW, errW, appConfig)
	return boardApp.Run(context.Background(), loader)
}

// loaderFor picks the format-specific loader from the file extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return boardhcl.NewLoader(), nil
	case ".yaml", ".yml":
		return boardyaml.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported board file extension %q: want .hcl, .yaml or .yml", filepath.Ext(path))
	}
}
