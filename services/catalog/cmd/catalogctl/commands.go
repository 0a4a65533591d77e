package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
	"github.com/utafrali/JewelryGo/services/catalog/internal/filter"
	"github.com/utafrali/JewelryGo/services/catalog/internal/media"
	"github.com/utafrali/JewelryGo/services/catalog/internal/pricing"
	"github.com/utafrali/JewelryGo/services/catalog/internal/repository/file"
	"github.com/utafrali/JewelryGo/services/catalog/internal/variant"
)

type rootOptions struct {
	catalogPath string
	purityPath  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect and transform jewelry catalog files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.catalogPath, "file", "f", "data/catalog.json", "catalog file (.json, .yaml or .csv)")
	root.PersistentFlags().StringVar(&opts.purityPath, "purity", "", "purity table YAML (default built-in table)")

	root.AddCommand(
		newValidateCmd(opts),
		newGroupCmd(opts),
		newFilterCmd(opts),
		newPriceCmd(opts),
		newMediaCmd(opts),
		newConvertCmd(opts),
		newSeedCmd(opts),
	)
	return root
}

func (o *rootOptions) records(cmd *cobra.Command) ([]domain.ProductRecord, error) {
	src, err := file.NewSource(o.catalogPath)
	if err != nil {
		return nil, err
	}
	return src.Load(cmd.Context())
}

func (o *rootOptions) calculator(cmd *cobra.Command) (*pricing.Calculator, error) {
	table, err := file.NewPurityFile(o.purityPath).LoadPurity(cmd.Context())
	if err != nil {
		return nil, err
	}
	return pricing.NewCalculator(table), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report record and group counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := opts.records(cmd)
			if err != nil {
				return err
			}
			groups := variant.Group(records)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d records, %d products\n", opts.catalogPath, len(records), len(groups))
			return nil
		},
	}
}

func newGroupCmd(opts *rootOptions) *cobra.Command {
	var productID string
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Group records into products with their variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := opts.records(cmd)
			if err != nil {
				return err
			}
			if productID == "" {
				return printJSON(cmd.OutOrStdout(), variant.Group(records))
			}
			g, ok := variant.Find(records, productID)
			if !ok {
				return fmt.Errorf("product %q not found", productID)
			}
			return printJSON(cmd.OutOrStdout(), g)
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "only show this product ID")
	return cmd
}

type filterOptions struct {
	categories []string
	metals     []string
	minPrice   int64
	maxPrice   int64
	inStock    bool
	query      string
	sort       string
	groups     bool
}

func (f filterOptions) build(cmd *cobra.Command) (domain.Filter, error) {
	for _, m := range f.metals {
		if !domain.IsValidMetalType(m) {
			return domain.Filter{}, fmt.Errorf("unknown metal type %q", m)
		}
	}
	if !domain.IsValidSortOption(f.sort) {
		return domain.Filter{}, fmt.Errorf("unknown sort option %q", f.sort)
	}
	out := domain.Filter{
		Category:    f.categories,
		MetalType:   f.metals,
		InStock:     f.inStock,
		SearchQuery: f.query,
	}
	if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
		pr := &domain.PriceRange{Min: f.minPrice, Max: f.maxPrice}
		if !cmd.Flags().Changed("max-price") {
			pr.Max = math.MaxInt64
		}
		if pr.Min < 0 || pr.Max < pr.Min {
			return domain.Filter{}, fmt.Errorf("price range must satisfy 0 <= min <= max")
		}
		out.PriceRange = pr
	}
	return out, nil
}

func newFilterCmd(opts *rootOptions) *cobra.Command {
	var f filterOptions
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter and sort records or products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flt, err := f.build(cmd)
			if err != nil {
				return err
			}
			records, err := opts.records(cmd)
			if err != nil {
				return err
			}
			sortOpt := domain.SortOption(f.sort)
			if f.groups {
				return printJSON(cmd.OutOrStdout(), filter.SortGroups(filter.Groups(variant.Group(records), flt), sortOpt))
			}
			return printJSON(cmd.OutOrStdout(), filter.SortRecords(filter.Records(records, flt), sortOpt))
		},
	}
	cmd.Flags().StringSliceVar(&f.categories, "category", nil, "category substring (repeatable)")
	cmd.Flags().StringSliceVar(&f.metals, "metal", nil, "exact metal type (repeatable)")
	cmd.Flags().Int64Var(&f.minPrice, "min-price", 0, "minimum price in INR")
	cmd.Flags().Int64Var(&f.maxPrice, "max-price", 0, "maximum price in INR")
	cmd.Flags().BoolVar(&f.inStock, "in-stock", false, "only in-stock items")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&f.sort, "sort", "", "name, price-low, price-high or newest")
	cmd.Flags().BoolVar(&f.groups, "groups", false, "filter grouped products instead of records")
	return cmd
}

func newPriceCmd(opts *rootOptions) *cobra.Command {
	var (
		recordID string
		gold     float64
		diamond  float64
		karat    int
	)
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Compute a price breakdown for weights or a catalog record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := opts.calculator(cmd)
			if err != nil {
				return err
			}
			if recordID == "" {
				b, err := calc.CalculateDynamicPrice(gold, diamond, karat)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), b)
			}

			records, err := opts.records(cmd)
			if err != nil {
				return err
			}
			for _, rec := range records {
				if rec.ID != recordID {
					continue
				}
				quote := calc.ListPrice
				if cmd.Flags().Changed("karat") {
					quote = calc.QuoteRecord
				}
				b, err := quote(rec, karat)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), b)
			}
			return fmt.Errorf("record %q not found", recordID)
		},
	}
	cmd.Flags().StringVar(&recordID, "record", "", "price this record instead of raw weights")
	cmd.Flags().Float64Var(&gold, "gold", 0, "gold weight in grams")
	cmd.Flags().Float64Var(&diamond, "diamond", 0, "diamond weight in carats")
	cmd.Flags().IntVar(&karat, "karat", domain.DefaultKarat, "gold purity in karats")
	return cmd
}

func newMediaCmd(opts *rootOptions) *cobra.Command {
	var (
		productID string
		metal     string
	)
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Show the images and videos picked for a product in a metal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if metal != "" && !domain.IsValidMetalType(metal) {
				return fmt.Errorf("unknown metal type %q", metal)
			}
			records, err := opts.records(cmd)
			if err != nil {
				return err
			}
			g, ok := variant.Find(records, productID)
			if !ok {
				return fmt.Errorf("product %q not found", productID)
			}
			return printJSON(cmd.OutOrStdout(), media.SelectGroup(*g, domain.MetalType(metal)))
		},
	}
	cmd.Flags().StringVar(&productID, "product", "", "product ID")
	cmd.Flags().StringVar(&metal, "metal", "", "metal type (default: base variant metal)")
	_ = cmd.MarkFlagRequired("product")
	return cmd
}

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rewrite the catalog in another format, chosen by the output extension",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := file.FormatFromPath(out)
			if err != nil {
				return err
			}
			records, err := opts.records(cmd)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := file.Encode(f, format, records); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(records), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
