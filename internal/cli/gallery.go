package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	kerrors "github.com/kaleidodraw/kaleido/pkg/errors"
	"github.com/kaleidodraw/kaleido/pkg/render"
	"github.com/kaleidodraw/kaleido/pkg/store"
)

// galleryCommand creates the gallery command group.
func (c *CLI) galleryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage saved drawings",
		Long:  `List, inspect, rename, delete, and import drawings in the gallery.`,
	}

	cmd.AddCommand(c.galleryListCommand())
	cmd.AddCommand(c.galleryShowCommand())
	cmd.AddCommand(c.galleryRenameCommand())
	cmd.AddCommand(c.galleryDeleteCommand())
	cmd.AddCommand(c.galleryImportCommand())
	return cmd
}

func (c *CLI) galleryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved drawings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			infos, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(infos) == 0 {
				printInfo("The gallery is empty. Draw something: kaleido draw")
				return nil
			}

			fmt.Println(StyleTitle.Render("Gallery"))
			for _, info := range infos {
				fmt.Printf("  %s  %s %s\n",
					StyleValue.Render(info.ID),
					info.Name,
					StyleDim.Render(fmt.Sprintf("(%d strokes, %s)",
						info.Strokes, info.UpdatedAt.Local().Format("2006-01-02 15:04"))))
			}
			return nil
		},
	}
}

func (c *CLI) galleryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <drawing-id>",
		Short: "Show details of a saved drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			d, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			points := 0
			for _, s := range d.Strokes {
				points += s.Len()
			}
			symState := "off"
			if d.Symmetry.Enabled {
				symState = fmt.Sprintf("%d-fold around (%.0f, %.0f)",
					d.Symmetry.Axes, d.Symmetry.Center.X, d.Symmetry.Center.Y)
			}

			fmt.Println(StyleTitle.Render(d.Name))
			printKeyValue("id", d.ID)
			printKeyValue("strokes", fmt.Sprintf("%d (%d points)", len(d.Strokes), points))
			printKeyValue("symmetry", symState)
			printKeyValue("created", d.CreatedAt.Local().Format("2006-01-02 15:04:05"))
			printKeyValue("updated", d.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
			return nil
		},
	}
}

func (c *CLI) galleryRenameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <drawing-id> <name>",
		Short: "Rename a saved drawing",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			d, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			d.Name = strings.Join(args[1:], " ")
			if err := st.Put(cmd.Context(), d); err != nil {
				return err
			}
			printSuccess("Renamed %s to %s", StyleValue.Render(d.ID), StyleValue.Render(d.Name))
			return nil
		},
	}
}

func (c *CLI) galleryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <drawing-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a saved drawing",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", StyleValue.Render(args[0]))
			return nil
		},
	}
}

func (c *CLI) galleryImportCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a drawing from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "opening %s", args[0])
			}
			defer f.Close()

			strokes, sym, err := render.ReadJSON(f)
			if err != nil {
				return err
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			d := store.New(name, strokes, sym)
			if err := st.Put(cmd.Context(), d); err != nil {
				return err
			}
			printSuccess("Imported %s as %s", args[0], StyleValue.Render(d.ID))
			printDetail("%d strokes", len(d.Strokes))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name for the imported drawing (default from filename)")
	return cmd
}
