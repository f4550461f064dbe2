package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"flightplots/internal/dashboard"
	"flightplots/internal/schema"
	"flightplots/internal/session"
	"flightplots/internal/telemetry"
	"flightplots/internal/ulog"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render <log.jsonl>",
	Short: "Write a static chart report for one log",
	Long:  "render builds the chart page for a JSONL log export and writes index.html, nav.json and one PNG per chart.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		l, err := ulog.LoadFile(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load %s: %w", args[0], err)
		}

		events, cleanup, err := newEventWriter(cfg.Events)
		if err != nil {
			return err
		}
		defer cleanup()

		sess := session.Build(ctx, l, schema.Resolve(l), cfg, telemetry.SourceRender, events)
		out := renderOut
		if out == "" {
			out = l.ID + "-report"
		}
		return dashboard.Render(ctx, l.ID, sess.Page(), out)
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output directory (default <log id>-report)")
}
