package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liblens/liblens/pkg/introspect"
)

// inspectCommand creates the "inspect" command listing a library's
// public classes, functions, and constants.
func (c *CLI) inspectCommand() *cobra.Command {
	var showDocs bool

	cmd := &cobra.Command{
		Use:   "inspect <library>",
		Short: "List the public members of an installed library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			p := newProgress(loggerFromContext(cmd.Context()))
			info, err := c.introspector(cfg).ListMembers(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p.done(fmt.Sprintf("Parsed %s", info.Metadata.Name))

			printLibrary(info, showDocs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDocs, "docs", false, "include docstrings")
	return cmd
}

func printLibrary(info *introspect.LibraryInfo, showDocs bool) {
	fmt.Println(StyleTitle.Render(info.Metadata.Name) + " " + StyleDim.Render(info.Metadata.Version))
	if info.Metadata.Summary != "" {
		printDetail("%s", info.Metadata.Summary)
	}
	fmt.Println()

	if len(info.Classes) > 0 {
		fmt.Println(StyleHighlight.Render("Classes"))
		for _, class := range info.Classes {
			fmt.Println("  " + StyleValue.Render(class.Name))
			if showDocs {
				printDetail("  %s", firstLine(class.Docstring))
			}
			for _, m := range class.Methods {
				fmt.Println("    " + StyleDim.Render(".") + m.Name + "()")
			}
		}
		fmt.Println()
	}

	if len(info.Functions) > 0 {
		fmt.Println(StyleHighlight.Render("Functions"))
		for _, fn := range info.Functions {
			fmt.Println("  " + StyleValue.Render(fn.Name+"()"))
			if showDocs {
				printDetail("  %s", firstLine(fn.Docstring))
			}
		}
		fmt.Println()
	}

	if len(info.Constants) > 0 {
		fmt.Println(StyleHighlight.Render("Constants"))
		for _, con := range info.Constants {
			printKeyValue(con.Name, con.Type+" = "+con.Value)
		}
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
