package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kaleidodraw/kaleido/pkg/board"
	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
	"github.com/kaleidodraw/kaleido/pkg/store"
)

// drawCommand creates the interactive drawing command.
func (c *CLI) drawCommand() *cobra.Command {
	var (
		drawingID string
		noStore   bool
	)

	cmd := &cobra.Command{
		Use:   "draw [drawing-id]",
		Short: "Open the interactive drawing surface",
		Long: `Open a full-screen terminal drawing surface. Draw with the mouse; every
stroke is replicated with N-fold rotational symmetry around the center point.

Pass a drawing id to continue an existing drawing from the gallery.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				drawingID = args[0]
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			var st store.Store
			if !noStore {
				st, err = openStore(cmd.Context(), cfg)
				if err != nil {
					return err
				}
				defer st.Close()
			}

			sym := cfg.SymmetryDefaults()
			b := board.New(board.Options{
				HistoryCapacity: cfg.HistorySize,
				Symmetry:        &sym,
			})

			if drawingID != "" {
				if st == nil {
					return kerrors.New(kerrors.ErrCodeInvalidInput,
						"cannot load a drawing with --no-store")
				}
				d, err := st.Get(cmd.Context(), drawingID)
				if err != nil {
					return err
				}
				b.LoadStrokes(d.Strokes)
				b.SetSymmetryEnabled(d.Symmetry.Enabled)
				b.SetAxisCount(d.Symmetry.Axes)
				b.SetCenterPoint(d.Symmetry.Center)
				c.Logger.Debug("loaded drawing", "id", d.ID, "strokes", len(d.Strokes))
			}

			model := NewDrawModel(b, st, cfg.BrushSize)
			p := tea.NewProgram(model,
				tea.WithAltScreen(),
				tea.WithMouseAllMotion(),
			)

			final, err := p.Run()
			if err != nil {
				return kerrors.Wrap(kerrors.ErrCodeInternal, err, "drawing surface failed")
			}

			if m, ok := final.(DrawModel); ok && m.SavedDrawingID() != "" {
				printSuccess("Saved drawing %s", StyleValue.Render(m.SavedDrawingID()))
				printDetail("export it with: kaleido export %s", m.SavedDrawingID())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noStore, "no-store", false, "run without a gallery store (drawings cannot be saved)")
	return cmd
}
