package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flightplots/internal/schema"
	"flightplots/internal/session"
	"flightplots/internal/telemetry"
	"flightplots/internal/tui"
	"flightplots/internal/ulog"
)

var inspectPlain bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <log.jsonl>",
	Short: "Inspect the chart page of one log in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		l, err := ulog.LoadFile(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}
		sess := session.Build(ctx, l, schema.Resolve(l), cfg, telemetry.SourceRender, nil)

		if inspectPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
			return tui.WritePlain(cmd.OutOrStdout(), sess)
		}
		return tui.Run(sess)
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectPlain, "plain", false, "Print a plain summary instead of the interactive view")
}
