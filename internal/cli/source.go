package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/introspect"
)

// sourceCommand creates the "source" command printing element source.
func (c *CLI) sourceCommand() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "source <library> <kind> <name>",
		Short: "Print the source code of a class, function, or method",
		Long:  `Print the source text of one element of an installed library. Kind is one of class, function, or method; methods additionally need --parent naming the enclosing class.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			kind, err := introspect.ParseKind(args[1])
			if err != nil {
				return err
			}

			source, err := c.introspector(cfg).GetSource(cmd.Context(), args[0], introspect.SourceRequest{
				Kind:   kind,
				Name:   args[2],
				Parent: parent,
			})
			if errors.Is(err, errors.ErrCodeSourceUnavailable) {
				printWarning("%s", errors.UserMessage(err))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Println(source)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "enclosing class for kind=method")
	return cmd
}
