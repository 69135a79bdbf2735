package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/frahmantamala/marketplace-storefront/internal/product"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
)

var outputFormat string

func asJSON() bool {
	return outputFormat == "json"
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func table(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func printProducts(w io.Writer, products []product.Product) error {
	if asJSON() {
		return printJSON(w, products)
	}
	tw := table(w, "ID", "NAME", "CATEGORY", "PRICE", "DISCOUNT", "OPERATOR")
	for _, p := range products {
		discount := "-"
		if p.HasDiscount() {
			discount = p.DiscountPrice.StringFixed(2)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Category, p.Price.StringFixed(2), discount, p.OperatorName())
	}
	return tw.Flush()
}

func printUsers(w io.Writer, users []user.User) error {
	if asJSON() {
		return printJSON(w, users)
	}
	tw := table(w, "ID", "NAME", "EMAIL", "ROLE", "PERMISSIONS")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, permissionList(u.Permissions))
	}
	return tw.Flush()
}

func permissionList(p user.Permissions) string {
	var names []string
	if p.CanManagePublications {
		names = append(names, "publications")
	}
	if p.CanManageBanners {
		names = append(names, "banners")
	}
	if p.CanManageCategories {
		names = append(names, "categories")
	}
	if p.CanManageChats {
		names = append(names, "chats")
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table or json")
}
