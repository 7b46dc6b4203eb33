package cli

import (
	"github.com/spf13/cobra"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/server"
)

// serveCommand creates the share-server command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve <drawing-id>",
		Short: "Share a drawing over HTTP and websocket",
		Long: `Serve a saved drawing to live viewers. The server exposes the drawing as
JSON and SVG over HTTP, and pushes state changes to connected websocket
viewers. Stop with Ctrl+C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			d, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}

			b := board.New(board.Options{
				HistoryCapacity: cfg.HistorySize,
				Symmetry:        &d.Symmetry,
			})
			b.LoadStrokes(d.Strokes)

			if addr == "" {
				addr = cfg.Server.Addr
			}

			srv := server.New(b.Snapshot(), c.Logger)
			b.Subscribe(srv)

			printInfo("Serving %s on http://%s", StyleValue.Render(d.Name), addr)
			printDetail("drawing:  http://%s/api/drawing", addr)
			printDetail("svg:      http://%s/render.svg", addr)
			printDetail("live:     ws://%s/ws", addr)

			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, localhost:7331)")
	return cmd
}
