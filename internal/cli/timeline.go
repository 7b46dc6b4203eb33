package cli

import (
	"os"

	"github.com/spf13/cobra"

	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
	"github.com/kaleidodraw/kaleido/pkg/render"
)

// timelineCommand creates the history-visualization debug command.
func (c *CLI) timelineCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "timeline <drawing-id>",
		Short: "Visualize a drawing's stroke timeline as a graph",
		Long: `Render the committed stroke sequence of a saved drawing as a graph, in the
order the strokes would occupy the undo history. Useful for debugging
undo/redo behavior and inspecting stroke ordering.`,
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

			dot := render.HistoryDOT(d.Strokes, len(d.Strokes))

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = render.TimelineSVG(dot)
			case "png":
				data, err = render.TimelinePNG(dot)
			default:
				return kerrors.New(kerrors.ErrCodeInvalidFormat,
					"unknown timeline format %q (must be dot, svg, or png)", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return kerrors.Wrap(kerrors.ErrCodeStore, err, "writing %s", output)
			}
			printSuccess("Timeline for %s", StyleValue.Render(d.Name))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	return cmd
}
