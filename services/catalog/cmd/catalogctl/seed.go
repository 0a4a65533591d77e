package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/utafrali/JewelryGo/services/catalog/internal/domain"
	"github.com/utafrali/JewelryGo/services/catalog/internal/pricing"
	"github.com/utafrali/JewelryGo/services/catalog/internal/repository/file"
)

// ---------------------------------------------------------------------------
// Seed data definitions
// ---------------------------------------------------------------------------

type categoryDef struct {
	name   string
	code   string
	sized  bool
	weight [2]float64 // gold grams, min and max
}

var seedCategories = []categoryDef{
	{name: "Engagement Rings", code: "ENG", sized: true, weight: [2]float64{3, 8}},
	{name: "Wedding Bands", code: "WED", sized: true, weight: [2]float64{4, 12}},
	{name: "Earrings", code: "EAR", weight: [2]float64{2, 9}},
	{name: "Necklaces", code: "NEC", weight: [2]float64{8, 30}},
	{name: "Bracelets", code: "BRC", weight: [2]float64{6, 22}},
	{name: "Pendants", code: "PND", weight: [2]float64{1.5, 6}},
}

var (
	seedStyles    = []string{"Aurora", "Eterna", "Lumiere", "Celeste", "Solace", "Vela", "Marigold", "Noor", "Isla", "Seraph", "Tara", "Opaline"}
	seedMotifs    = []string{"Solitaire", "Halo", "Twist", "Pave", "Classic", "Bloom", "Drop", "Infinity", "Cluster", "Bezel"}
	seedRingSizes = []string{"5", "6", "7", "8", "9"}
	seedKarats    = []int{14, 18, 18, 22}
	seedMetals    = domain.MetalTypes()
)

var metalCodes = map[domain.MetalType]string{
	domain.MetalRoseGold:   "RG",
	domain.MetalWhiteGold:  "WG",
	domain.MetalYellowGold: "YG",
	domain.MetalPlatinum:   "PT",
}

// seedEpoch anchors generated listing dates so output is reproducible.
var seedEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// generateCatalog builds products synthetic products, each with one record per
// metal and size. The same seed always yields the same catalog.
func generateCatalog(products int, seed uint64, calc *pricing.Calculator) ([]domain.ProductRecord, error) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var records []domain.ProductRecord
	variantID := 0

	for i := 0; i < products; i++ {
		cat := seedCategories[rng.IntN(len(seedCategories))]
		style := seedStyles[rng.IntN(len(seedStyles))]
		motif := seedMotifs[rng.IntN(len(seedMotifs))]
		productID := fmt.Sprintf("%s-%04d", cat.code, i+1)
		name := fmt.Sprintf("%s %s %s", style, motif, singular(cat.name))
		slug := strings.ToLower(style + "-" + motif)
		diamond := float64(rng.IntN(9)) * 0.25
		karat := seedKarats[rng.IntN(len(seedKarats))]
		listed := seedEpoch.Add(time.Duration(rng.IntN(365*24)) * time.Hour)
		featured := rng.IntN(10) == 0

		sizes := []string{domain.StandardSize}
		if cat.sized {
			start := rng.IntN(len(seedRingSizes) - 1)
			sizes = seedRingSizes[start : start+2]
		}

		for _, metal := range pickMetals(rng) {
			token := metal.ImageToken()
			base := fmt.Sprintf("/images/%s/%s-%d", slug, slug, i+1)
			images := domain.PathList{
				base + "-" + token + "1.jpg",
				base + "-" + token + "2.jpg",
				base + "-Model.jpg",
			}
			gold := round2(cat.weight[0] + rng.Float64()*(cat.weight[1]-cat.weight[0]))

			for _, size := range sizes {
				variantID++
				rec := domain.ProductRecord{
					ID:            recordID(productID, metal, size),
					ProductID:     productID,
					VariantID:     variantID,
					Name:          name,
					Category:      cat.name,
					Description:   fmt.Sprintf("%s in %s.", name, strings.ToLower(string(metal))),
					MetalType:     metal,
					Size:          size,
					StockQuantity: rng.IntN(6),
					GoldWeight:    gold,
					DiamondWeight: diamond,
					PrimaryImage:  images[0],
					AllImages:     images,
					Featured:      featured,
					ListedAt:      listed,
				}
				if metal != domain.MetalPlatinum {
					rec.MetalKarat = fmt.Sprintf("%dK", karat)
					bd, err := calc.CalculateDynamicPrice(gold, diamond, karat)
					if err != nil {
						return nil, fmt.Errorf("price %s: %w", rec.ID, err)
					}
					rec.PriceINR = bd.FinalPrice
				}
				records = append(records, rec)
			}
		}
	}
	return records, nil
}

// pickMetals returns one to four distinct metals in catalog order.
func pickMetals(rng *rand.Rand) []domain.MetalType {
	n := 1 + rng.IntN(len(seedMetals))
	perm := rng.Perm(len(seedMetals))[:n]
	out := make([]domain.MetalType, 0, n)
	for i, m := range seedMetals {
		for _, p := range perm {
			if p == i {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func recordID(productID string, metal domain.MetalType, size string) string {
	id := productID + "-" + metalCodes[metal]
	if size != domain.StandardSize {
		id += "-" + size
	}
	return id
}

func singular(category string) string {
	s := category[strings.LastIndex(category, " ")+1:]
	return strings.TrimSuffix(s, "s")
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// ---------------------------------------------------------------------------
// Postgres loader
// ---------------------------------------------------------------------------

var productRecordColumns = []string{
	"id", "product_id", "variant_id", "position", "name", "category", "description",
	"metal_type", "metal_karat", "gold_purity", "size", "price_inr", "stock_quantity",
	"gold_weight", "diamond_weight", "primary_image", "all_images", "all_videos",
	"featured", "listed_at",
}

// copyRecords replaces the contents of product_records with records in one
// transaction.
func copyRecords(ctx context.Context, dsn string, records []domain.ProductRecord) (int64, error) {
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return 0, fmt.Errorf("connect to postgres: %w", err)
	}
	defer conn.Close(ctx)

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "DELETE FROM product_records"); err != nil {
		return 0, fmt.Errorf("clear product_records: %w", err)
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"product_records"}, productRecordColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			videos := []string(r.AllVideos)
			if videos == nil {
				videos = []string{}
			}
			return []any{
				r.ID, r.ProductID, r.VariantID, i, r.Name, r.Category, r.Description,
				string(r.MetalType), r.MetalKarat, r.GoldPurity, r.Size, r.PriceINR, r.StockQuantity,
				r.GoldWeight, r.DiamondWeight, r.PrimaryImage, []string(r.AllImages), videos,
				r.Featured, r.ListedAt,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy product_records: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Command
// ---------------------------------------------------------------------------

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var (
		products int
		seed     uint64
		out      string
		dsn      string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic catalog and write it to a file or PostgreSQL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if products < 1 {
				return fmt.Errorf("--products must be at least 1")
			}
			if (out == "") == (dsn == "") {
				return fmt.Errorf("exactly one of --out or --postgres is required")
			}
			calc, err := opts.calculator(cmd)
			if err != nil {
				return err
			}
			records, err := generateCatalog(products, seed, calc)
			if err != nil {
				return err
			}

			if dsn != "" {
				n, err := copyRecords(cmd.Context(), dsn, records)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "inserted %d records for %d products\n", n, products)
				return nil
			}

			format, err := file.FormatFromPath(out)
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
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records for %d products to %s\n", len(records), products, out)
			return nil
		},
	}
	cmd.Flags().IntVarP(&products, "products", "n", 50, "number of products to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output catalog file (.json, .yaml or .csv)")
	cmd.Flags().StringVar(&dsn, "postgres", "", "PostgreSQL DSN; replaces the product_records table")
	return cmd
}
