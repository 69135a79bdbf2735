package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/category"
	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/frahmantamala/marketplace-storefront/internal/store"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	listSearch   string
	listCategory string
	listRecent   int

	productName            string
	productDescription     string
	productPrice           string
	productDiscount        string
	productDiscountPercent string
	productImages          []string
	productCategory        string
	productCondition       string
)

var productsCmd = &cobra.Command{
	Use:     "products",
	Aliases: []string{"product"},
	Short:   "Browse and manage publications",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List publications, most recent first",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
		snap := a.store.Snapshot()
		products := snap.Products

		if listCategory != "" {
			if _, ok := category.FindByName(snap.Categories, listCategory); !ok {
				return internal.ErrCategoryNotFound.WithDetails(map[string]string{"name": listCategory})
			}
			products = product.InCategory(products, listCategory)
		}
		if listSearch != "" {
			products = product.Search(products, listSearch)
		}
		if cmd.Flags().Changed("recent") {
			products = product.Recent(products, listRecent)
		}
		return printProducts(cmd.OutOrStdout(), products)
	}),
}

var productsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one publication",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, args []string) error {
		p, err := findProduct(a.store, args[0])
		if err != nil {
			return err
		}
		if asJSON() {
			return printJSON(cmd.OutOrStdout(), p)
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s  %s\n%s\n", p.ID, p.Name, p.Description)
		fmt.Fprintf(w, "category: %s  operator: %s\n", p.Category, p.OperatorName())
		if p.HasDiscount() {
			fmt.Fprintf(w, "price: %s  now: %s (-%s%%)\n", p.Price.StringFixed(2), p.DiscountPrice.StringFixed(2), product.PercentageFromDiscount(p))
		} else {
			fmt.Fprintf(w, "price: %s\n", p.Price.StringFixed(2))
		}
		if p.Condition != "" {
			fmt.Fprintf(w, "condition: %s\n", p.Condition)
		}
		fmt.Fprintf(w, "images: %d  favorite: %t\n", len(p.Images), a.store.IsFavorite(p.ID))
		return nil
	}),
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Publish a new product",
	Args:  cobra.NoArgs,
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
		if err := a.require(auth.CapManagePublications); err != nil {
			return err
		}
		price, err := parseMoney("price", productPrice)
		if err != nil {
			return err
		}
		discount, err := discountFromFlags(cmd.Flags(), price)
		if err != nil {
			return err
		}

		created, err := a.store.AddProduct(ctx, product.NewProduct{
			Name:          productName,
			Description:   productDescription,
			Price:         price,
			DiscountPrice: discount,
			Images:        productImages,
			Category:      productCategory,
			Condition:     product.Condition(productCondition),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published %s (%s)\n", created.Name, created.ID)
		return nil
	}),
}

var productsUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a publication; only the flags given change",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.require(auth.CapManagePublications); err != nil {
			return err
		}
		p, err := findProduct(a.store, args[0])
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			p.Name = productName
		}
		if flags.Changed("description") {
			p.Description = productDescription
		}
		if flags.Changed("price") {
			if p.Price, err = parseMoney("price", productPrice); err != nil {
				return err
			}
		}
		if flags.Changed("discount") || flags.Changed("discount-percent") {
			if p.DiscountPrice, err = discountFromFlags(flags, p.Price); err != nil {
				return err
			}
		}
		if flags.Changed("image") {
			p.Images = productImages
		}
		if flags.Changed("category") {
			p.Category = productCategory
		}
		if flags.Changed("condition") {
			p.Condition = product.Condition(productCondition)
		}

		if err := a.store.UpdateProduct(ctx, p); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", p.ID)
		return nil
	}),
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a publication",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
		if err := a.require(auth.CapManagePublications); err != nil {
			return err
		}
		if err := a.store.DeleteProduct(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	}),
}

var productsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Publications per operator",
	Args:  cobra.NoArgs,
	RunE: withApp(func(_ context.Context, a *app, cmd *cobra.Command, _ []string) error {
		counts := product.CountByOperator(a.store.Snapshot().Products)
		if asJSON() {
			return printJSON(cmd.OutOrStdout(), counts)
		}
		names := make([]string, 0, len(counts))
		for name := range counts {
			names = append(names, name)
		}
		sort.Strings(names)

		tw := table(cmd.OutOrStdout(), "OPERATOR", "PUBLICATIONS")
		for _, name := range names {
			fmt.Fprintf(tw, "%s\t%d\n", name, counts[name])
		}
		return tw.Flush()
	}),
}

func findProduct(s *store.Store, id string) (product.Product, error) {
	products := s.Snapshot().Products
	idx := product.FindByID(products, id)
	if idx < 0 {
		return product.Product{}, internal.ErrProductNotFound.WithDetails(map[string]string{"id": id})
	}
	return products[idx], nil
}

func parseMoney(field, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, internal.NewValidationFieldError(field, fmt.Sprintf("%q is not a number", value), internal.ErrCodeInvalidPrice)
	}
	return d, nil
}

// discountFromFlags reads --discount as an absolute price or --discount-percent as 0-100.
func discountFromFlags(flags *pflag.FlagSet, price decimal.Decimal) (*decimal.Decimal, error) {
	if flags.Changed("discount-percent") {
		pct, err := parseMoney("discountPercentage", productDiscountPercent)
		if err != nil {
			return nil, err
		}
		return product.DiscountFromPercentage(price, pct)
	}
	if productDiscount == "" {
		return nil, nil
	}
	d, err := parseMoney("discountPrice", productDiscount)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func addProductFlags(fs *pflag.FlagSet) {
	fs.StringVar(&productName, "name", "", "product name")
	fs.StringVar(&productDescription, "description", "", "product description")
	fs.StringVar(&productPrice, "price", "0", "list price")
	fs.StringVar(&productDiscount, "discount", "", "discounted price")
	fs.StringVar(&productDiscountPercent, "discount-percent", "", "discount as a percentage of the price")
	fs.StringSliceVar(&productImages, "image", nil, "image url, repeat for up to 5")
	fs.StringVar(&productCategory, "category", "", "category name")
	fs.StringVar(&productCondition, "condition", "", "new, used or refurbished")
}

func init() {
	productsListCmd.Flags().StringVarP(&listSearch, "search", "s", "", "search name, description and category")
	productsListCmd.Flags().StringVar(&listCategory, "category", "", "only this category")
	productsListCmd.Flags().IntVar(&listRecent, "recent", 20, "only the most recent n")

	addProductFlags(productsAddCmd.Flags())
	addProductFlags(productsUpdateCmd.Flags())
	productsAddCmd.MarkFlagsMutuallyExclusive("discount", "discount-percent")
	productsUpdateCmd.MarkFlagsMutuallyExclusive("discount", "discount-percent")

	productsCmd.AddCommand(productsListCmd, productsShowCmd, productsAddCmd, productsUpdateCmd, productsDeleteCmd, productsStatsCmd)
	rootCmd.AddCommand(productsCmd)
}
