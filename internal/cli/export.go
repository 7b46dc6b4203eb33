package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaleidodraw/kaleido/pkg/board"
	"github.com/kaleidodraw/kaleido/pkg/cache"
	"github.com/kaleidodraw/kaleido/pkg/canvas"
	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
	"github.com/kaleidodraw/kaleido/pkg/observability"
	"github.com/kaleidodraw/kaleido/pkg/render"
)

// Supported export formats.
var exportFormats = []string{"svg", "png", "pdf", "json"}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output     string
		format     string
		penWidth   float64
		color      string
		background string
		centerMark bool
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "export <drawing-id>",
		Short: "Render a saved drawing to SVG, PNG, PDF, or JSON",
		Long: `Render a drawing from the gallery to a file. The format is taken from the
--format flag or inferred from the output file extension. Symmetry copies
are expanded at render time, so the output shows the drawing exactly as it
appeared on the drawing surface.

Rendered artifacts are cached by content, so re-exporting an unchanged
drawing is instant. Use --no-cache to force a fresh render.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			prog := newProgress(c.Logger)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if penWidth == 0 {
				penWidth = cfg.BrushSize
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
			c.Logger.Debug("loaded drawing", "id", d.ID, "strokes", len(d.Strokes))

			if format == "" && output != "" {
				format = strings.TrimPrefix(filepath.Ext(output), ".")
			}
			if format == "" {
				format = "svg"
			}
			if !validFormat(format) {
				return kerrors.New(kerrors.ErrCodeInvalidFormat,
					"unknown format %q (must be one of %s)", format, strings.Join(exportFormats, ", "))
			}
			if output == "" {
				output = d.ID + "." + format
			}

			snap := board.Snapshot{
				Strokes:  d.Strokes,
				Symmetry: d.Symmetry,
				View:     canvas.IdentityView(),
			}

			artifacts, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer artifacts.Close()

			raw, err := json.Marshal(d)
			if err != nil {
				return kerrors.Wrap(kerrors.ErrCodeInternal, err, "hashing drawing")
			}
			key := cache.ArtifactKey(cache.Hash(raw), format, penWidth, color, background, centerMark)

			data, cached, err := artifacts.Get(ctx, key)
			if err != nil {
				c.Logger.Debug("cache read failed", "err", err)
			}
			if !cached {
				start := time.Now()
				observability.Render().OnRenderStart(ctx, format, len(d.Strokes))
				data, err = renderDrawing(snap, format, penWidth, color, background, centerMark)
				observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
				if err != nil {
					return err
				}
				if err := artifacts.Set(ctx, key, data, 0); err != nil {
					c.Logger.Debug("cache write failed", "err", err)
				}
			}
			prog.done("Rendered " + format)

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return kerrors.Wrap(kerrors.ErrCodeStore, err, "writing %s", output)
			}

			printSuccess("Exported %s", StyleValue.Render(d.Name))
			printFile(output)
			printStats(len(d.Strokes), len(render.List(snap)), cached)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <id>.<format>, \"-\" for stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", fmt.Sprintf("output format: %s", strings.Join(exportFormats, ", ")))
	cmd.Flags().Float64Var(&penWidth, "pen-width", 0, "stroke width in canvas units (default from config)")
	cmd.Flags().StringVar(&color, "color", "", "stroke color, e.g. #1a1a2e")
	cmd.Flags().StringVar(&background, "background", "", "background color")
	cmd.Flags().BoolVar(&centerMark, "center-mark", false, "draw a cross at the symmetry center")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the rendered-artifact cache")
	return cmd
}

func validFormat(f string) bool {
	for _, v := range exportFormats {
		if f == v {
			return true
		}
	}
	return false
}

// renderDrawing renders a snapshot to the requested format in memory.
func renderDrawing(snap board.Snapshot, format string, penWidth float64, color, background string, centerMark bool) ([]byte, error) {
	opts := []render.Option{render.WithStrokeWidth(penWidth)}
	if color != "" {
		opts = append(opts, render.WithColor(color))
	}
	if background != "" {
		opts = append(opts, render.WithBackground(background))
	}
	if centerMark {
		opts = append(opts, render.WithCenterMark())
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case "svg":
		err = render.WriteSVG(&buf, snap, opts...)
	case "png":
		err = render.WritePNG(&buf, snap, opts...)
	case "pdf":
		err = render.WritePDF(&buf, snap, opts...)
	case "json":
		err = render.WriteJSON(&buf, snap)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
