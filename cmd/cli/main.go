package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"legumedash/adapters/excel"
	"legumedash/app"
	"legumedash/domain/nutrient"
	"legumedash/internal"
	"legumedash/internal/charts"
	"legumedash/internal/config"
	"legumedash/internal/profiling"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	file    string
	sheet   string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "legumedash-cli",
		Short: "Inspect the legume nutrient dataset without starting the web server",
	}
	rootCmd.PersistentFlags().StringVar(&flags.file, "file", config.DefaultDataFile, "Dataset file (.csv or .xlsx)")
	rootCmd.PersistentFlags().StringVar(&flags.sheet, "sheet", "", "Sheet name for xlsx files (default: first sheet)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newInspectCmd(flags),
		newMeanCmd(flags),
		newCorrelationCmd(flags),
	)
	return rootCmd
}

func loadTable(ctx context.Context, flags *globalFlags) (*nutrient.Table, error) {
	level := internal.LogLevelWarn
	if flags.verbose {
		level = internal.LogLevelDebug
	}
	cfg := excel.DefaultExcelConfig(flags.file)
	cfg.SheetName = flags.sheet

	store := excel.NewFileTableStore(cfg, internal.NewLoggerTo(level, os.Stderr))
	return store.Load(ctx)
}

func newInspectCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Validate the dataset and summarize its columns and categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd.Context(), flags)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📄 Source: %s\n", table.Source())
			fmt.Fprintf(out, "Rows: %d\n", table.RowCount())
			fmt.Fprintf(out, "Fingerprint: %s\n", table.Fingerprint().Short())

			categories := app.DistinctCategories(table)
			fmt.Fprintf(out, "\n🌱 CATEGORIES (%d):\n", len(categories))
			for i, c := range categories {
				fmt.Fprintf(out, "%d. %s\n", i+1, c)
			}

			fmt.Fprintf(out, "\n📊 COLUMNS:\n")
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tMISSING\tMEAN\tMEDIAN\tMIN\tMAX\tOUTLIERS")
			for _, h := range table.Headers() {
				if !table.IsNumeric(h) {
					missing := 0
					for row := 0; row < table.RowCount(); row++ {
						if table.Cell(row, h).IsMissing() {
							missing++
						}
					}
					fmt.Fprintf(w, "%s\ttext\t%d\t\t\t\t\t\n", h, missing)
					continue
				}
				values, _ := table.Numbers(h)
				s := profiling.Summarize(h, values)
				fmt.Fprintf(w, "%s\tnumeric\t%d\t%s\t%s\t%s\t%s\t%d\n", h, s.Missing,
					formatNumber(s.Mean), formatNumber(s.Median), formatNumber(s.Min), formatNumber(s.Max), s.Outliers)
			}
			return w.Flush()
		},
	}
}

func newMeanCmd(flags *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "mean [category]",
		Short: "Print the per-nutrient mean for one legume category",
		Long: `Print the mean of each radar nutrient over the rows of one category.
Nutrients without any values print as NaN.

Example: legumedash-cli mean Lentils --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd.Context(), flags)
			if err != nil {
				return err
			}

			fields := nutrient.RadarFields()
			mean, err := app.MeanByCategory(table, args[0], fields)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				values := make(map[string]*float64, len(mean))
				for k, v := range mean {
					if math.IsNaN(v) {
						values[k] = nil
						continue
					}
					values[k] = &v
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{"category": args[0], "mean": values})
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "NUTRIENT\tMEAN (%s)\n", args[0])
			for _, f := range fields {
				fmt.Fprintf(w, "%s\t%s\n", f, formatNumber(mean[f]))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newCorrelationCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "correlation",
		Short: "Print the Pearson correlation matrix over all numeric columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(cmd.Context(), flags)
			if err != nil {
				return err
			}

			m := app.CorrelationMatrix(table)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', tabwriter.AlignRight)
			fmt.Fprint(w, "\t")
			for _, f := range m.Fields {
				fmt.Fprintf(w, "%s\t", f)
			}
			fmt.Fprintln(w)
			for i, f := range m.Fields {
				fmt.Fprintf(w, "%s\t", f)
				for j := range m.Fields {
					fmt.Fprintf(w, "%s\t", charts.CellLabel(m.Values[i][j]))
				}
				fmt.Fprintln(w)
			}
			return w.Flush()
		},
	}
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
