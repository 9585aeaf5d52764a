package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/renjie/prism-units/pkg/adapters/catalog"
	"github.com/renjie/prism-units/pkg/core/domain"
	"github.com/renjie/prism-units/pkg/core/ports"
	"github.com/renjie/prism-units/pkg/core/services"
)

func newConvertCommand(a *app) *cobra.Command {
	var unitOf string
	var all bool

	cmd := &cobra.Command{
		Use:   "convert QUANTITY FROM [TO]",
		Short: "Convert a quantity from one unit to another",
		Example: `  unitconv convert 5 km m
  unitconv convert 100 °C °F
  unitconv convert --unit-of area 1 b m²
  unitconv convert --all 1 mi`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			b := a.converter.ConvertString(args[0]).FromUnitOf(domain.Category(unitOf), args[1])
			out := cmd.OutOrStdout()

			if all || len(args) == 2 {
				results, err := b.ToAll()
				if err != nil {
					return err
				}
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, r := range results {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.Value, r.Unit.Symbol(), r.Unit.Name())
				}
				return w.Flush()
			}

			n, err := b.ToNumber(args[2])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s = %s %s\n", args[0], args[1], n, args[2])
			return nil
		},
	}
	cmd.Flags().StringVar(&unitOf, "unit-of", "", "category of the source unit when its symbol is ambiguous")
	cmd.Flags().BoolVar(&all, "all", false, "convert into every unit of the source category")
	return cmd
}

func newListCommand(a *app) *cobra.Command {
	var unitOf string
	var siOnly, multiples, submultiples, bases bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filters []ports.UnitFilter
			if unitOf != "" {
				filters = append(filters, ports.ByCategory(domain.Category(unitOf)))
			}
			if siOnly {
				filters = append(filters, ports.SIUnits())
			}
			if multiples {
				filters = append(filters, ports.SIMultiples())
			}
			if submultiples {
				filters = append(filters, ports.SISubmultiples())
			}
			if bases {
				filters = append(filters, ports.BaseUnits())
			}
			return printUnits(cmd, a.registry, filters)
		},
	}
	cmd.Flags().StringVar(&unitOf, "unit-of", "", "only list units of this category")
	cmd.Flags().BoolVar(&siOnly, "si", false, "only list SI units")
	cmd.Flags().BoolVar(&multiples, "multiples", false, "only list SI multiples")
	cmd.Flags().BoolVar(&submultiples, "submultiples", false, "only list SI submultiples")
	cmd.Flags().BoolVar(&bases, "bases", false, "only list base units")
	return cmd
}

func printUnits(cmd *cobra.Command, registry *services.Registry, filters []ports.UnitFilter) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tSCIENTIFIC\tUNITS/BASE")
	for _, u := range registry.ListUnits(filters...) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\n", u.RegistryKey(), u.Name(), u.ScientificSymbol(), u.UnitsPerBase())
	}
	return w.Flush()
}

func newCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List unit categories and their base units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, c := range a.registry.Categories() {
				base := "-"
				if bases := a.registry.ListUnits(ports.ByCategory(c), ports.BaseUnits()); len(bases) > 0 {
					base = bases[0].Symbol()
				}
				fmt.Fprintf(w, "%s\t%s\n", c, base)
			}
			return w.Flush()
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var unitOf string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the registered catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var filters []ports.UnitFilter
			if unitOf != "" {
				filters = append(filters, ports.ByCategory(domain.Category(unitOf)))
			}
			units := a.registry.ListUnits(filters...)
			records := make([]catalog.Record, 0, len(units))
			for _, u := range units {
				records = append(records, catalog.RecordOf(u))
			}
			data, err := catalog.EncodeYAML(records)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&unitOf, "unit-of", "", "only export units of this category")
	return cmd
}
