package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/liblens/liblens/pkg/integrations/pypi"
)

// searchCommand creates the "search" command over installed libraries.
func (c *CLI) searchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search installed Python libraries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}

			dists := c.env(cfg).Search(args[0])
			if len(dists) == 0 {
				printInfo("No installed libraries match %q", args[0])
				return nil
			}
			for _, dist := range dists {
				printKeyValue(dist.Name, dist.Version+"  "+StyleDim.Render(dist.Summary))
			}
			return nil
		},
	}
}

// pypiCommand creates the "pypi" command group for index lookups.
func (c *CLI) pypiCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pypi",
		Short: "Look up packages on the PyPI index",
	}
	cmd.AddCommand(c.pypiShowCommand())
	cmd.AddCommand(c.pypiSearchCommand())
	return cmd
}

func (c *CLI) pypiShowCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Show metadata and releases for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			client, err := c.pypiClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			spin := newSpinner(cmd.Context(), "Fetching "+args[0])
			spin.Start()
			pkg, err := client.FetchPackage(cmd.Context(), args[0], refresh)
			spin.Stop()
			if spin.Cancelled() {
				return cmd.Context().Err()
			}
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(pkg.Info.Name) + " " + StyleDim.Render(pkg.Info.Version))
			if pkg.Info.Summary != "" {
				printDetail("%s", pkg.Info.Summary)
			}
			if pkg.Info.Author != "" {
				printKeyValue("author", pkg.Info.Author)
			}
			if pkg.Info.License != "" {
				printKeyValue("license", pkg.Info.License)
			}
			if pkg.Info.HomePage != "" {
				fmt.Println(StyleDim.Render("  home:") + " " + StyleLink.Render(pkg.Info.HomePage))
			}
			if len(pkg.Releases) > 0 {
				versions := make([]string, 0, 5)
				for i, rel := range pkg.Releases {
					if i == 5 {
						break
					}
					versions = append(versions, rel.Version)
				}
				printKeyValue("releases", strings.Join(versions, ", "))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")
	return cmd
}

func (c *CLI) pypiSearchCommand() *cobra.Command {
	var page, perPage int
	var sortBy string
	var exact bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the PyPI index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			client, err := c.pypiClient(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			spin := newSpinner(cmd.Context(), "Searching the index")
			spin.Start()
			result, err := client.Search(cmd.Context(), pypi.Query{
				Query:      args[0],
				Page:       page,
				PerPage:    perPage,
				SortBy:     sortBy,
				ExactMatch: exact,
			})
			spin.Stop()
			if spin.Cancelled() {
				return cmd.Context().Err()
			}
			if err != nil {
				return err
			}

			if result.Total == 0 {
				printInfo("No packages match %q", args[0])
				return nil
			}
			for _, pkg := range result.Packages {
				printKeyValue(pkg.Name, pkg.Version+"  "+StyleDim.Render(pkg.Summary))
			}
			printDetail("page %d of %d (%d packages)", result.Page, result.Pages, result.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "result page")
	cmd.Flags().IntVar(&perPage, "per-page", pypi.DefaultPerPage, "results per page")
	cmd.Flags().StringVar(&sortBy, "sort", "name", "sort order: name or relevance")
	cmd.Flags().BoolVar(&exact, "exact", false, "match the exact package name")
	return cmd
}
