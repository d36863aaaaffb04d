package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vytor/pricepulse/internal/catalog"
	"github.com/vytor/pricepulse/internal/models"
	"github.com/vytor/pricepulse/internal/scoring"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List or validate game content",
	}
	cmd.AddCommand(newCatalogListCmd(), newCatalogValidateCmd())
	return cmd
}

func openCatalog(dir string) (*catalog.Catalog, error) {
	if dir == "" {
		return catalog.Embedded()
	}
	return catalog.LoadDir(dir)
}

func newCatalogListCmd() *cobra.Command {
	var (
		dir        string
		difficulty int
	)
	cmd := &cobra.Command{
		Use:       "list <variant>",
		Short:     "List the content of one game variant",
		Example:   "  pricectl catalog list trend --difficulty 2",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"trend", "budget", "shopping", "guess", "memory"},
		RunE: func(cmd *cobra.Command, args []string) error {
			variant, err := models.ParseVariant(args[0])
			if err != nil {
				return err
			}
			d, err := models.ParseDifficulty(strconv.Itoa(difficulty))
			if err != nil {
				return err
			}
			c, err := openCatalog(dir)
			if err != nil {
				return err
			}
			items, err := c.ByVariant(variant, d)
			if err != nil {
				return err
			}
			return printItems(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().IntVarP(&difficulty, "difficulty", "d", 0, "only list content of this difficulty (1-5, 0 for all)")
	cmd.Flags().StringVar(&dir, "dir", "", "read YAML content from this directory instead of the built-in catalog")
	return cmd
}

func printItems(out io.Writer, items any) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	switch list := items.(type) {
	case []models.TrendItem:
		fmt.Fprintln(w, "ID\tName\tDiff\tTrend\tLatest\tNext")
		for _, t := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", t.ID, t.Name, t.Difficulty, t.Trend,
				scoring.FormatPrice(t.LatestPrice()), scoring.FormatPrice(t.NextPrice))
		}
	case []models.BudgetScenario:
		fmt.Fprintln(w, "ID\tTitle\tDiff\tIncome\tCategories")
		for _, s := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", s.ID, s.Title, s.Difficulty,
				scoring.FormatPrice(float64(s.MonthlyIncome)), len(s.Categories))
		}
	case []models.ShoppingChallenge:
		fmt.Fprintln(w, "ID\tTitle\tDiff\tBudget\tItems")
		for _, c := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n", c.ID, c.Title, c.Difficulty,
				scoring.FormatPrice(float64(c.Budget)), len(c.Items))
		}
	case []models.MarketItem:
		fmt.Fprintln(w, "ID\tName\tDiff\tUnit\tCurrent")
		for _, m := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s - %s\n", m.ID, m.Name, m.Difficulty, m.Unit,
				scoring.FormatPrice(m.Current.Min), scoring.FormatPrice(m.Current.Max))
		}
	default:
		return fmt.Errorf("cannot print %T", items)
	}
	return w.Flush()
}

func newCatalogValidateCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check catalog content for authoring mistakes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCatalog(dir)
			if err != nil {
				return err
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("catalog is invalid:\n%w", err)
			}
			content := c.Content()
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d trends, %d budgets, %d shopping challenges, %d market items\n",
				len(content.Trends), len(content.Budgets), len(content.Shopping), len(content.Market))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "validate YAML content in this directory instead of the built-in catalog")
	return cmd
}
