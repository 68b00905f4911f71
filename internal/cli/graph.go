package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/render"
)

// graphCommand creates the "graph" command writing structure diagrams.
func (c *CLI) graphCommand() *cobra.Command {
	var output string
	var showMethods bool

	cmd := &cobra.Command{
		Use:   "graph <library>",
		Short: "Write a structure diagram of a library",
		Long:  `Draw the classes, methods, and functions of an installed library as a diagram. The output format follows the file extension: .dot for Graphviz text, .svg for a rendered image.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if output == "" {
				output = args[0] + ".svg"
			}

			info, err := c.introspector(cfg).ListMembers(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			dot := render.ToDOT(info, render.Options{
				ShowMethods:  showMethods,
				MaxConstants: 10,
			})

			var data []byte
			switch strings.ToLower(filepath.Ext(output)) {
			case ".dot":
				data = []byte(dot)
			case ".svg":
				data, err = render.RenderSVG(cmd.Context(), dot)
				if err != nil {
					return err
				}
			default:
				return errors.New(errors.ErrCodeUnsupported, "unsupported output extension %q: use .dot or .svg", filepath.Ext(output))
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Diagram written")
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <library>.svg)")
	cmd.Flags().BoolVar(&showMethods, "methods", false, "draw one node per method")
	return cmd
}
