package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kobzarvs/qhex/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var debug bool
	cmd := &cobra.Command{
		Use:   "qhex <file>",
		Short: "Simple terminal hex editor",
		Long: `qhex opens a file as a grid of hex bytes for viewing and editing.

Keys: h/l previous/next byte, j/k next/previous row, 0-9 a-f enter a nibble,
i/n insert a zero byte before/after the cursor, r delete, g go to start,
s save, q quit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &app.StartupError{Code: app.ExitMissingPath, Err: errors.New("expected exactly one file argument")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(args[0], debug).Run()
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "log at debug level")
	cmd.SetArgs(args)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "qhex:", err)
	var se *app.StartupError
	if errors.As(err, &se) {
		if se.Code == app.ExitMissingPath {
			fmt.Fprintln(os.Stderr, cmd.UseLine())
		}
		return se.Code
	}
	return 1
}
