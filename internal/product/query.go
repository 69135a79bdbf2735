package product

import "strings"

const DefaultRecentLimit = 20

// Search does a case-insensitive substring match over name, description and
// category. An empty query matches nothing.
func Search(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

func InCategory(products []Product, categoryName string) []Product {
	var out []Product
	for _, p := range products {
		if p.Category == categoryName {
			out = append(out, p)
		}
	}
	return out
}

// Recent returns the first n products; the catalog is kept newest first.
func Recent(products []Product, n int) []Product {
	if n <= 0 {
		n = DefaultRecentLimit
	}
	if n > len(products) {
		n = len(products)
	}
	return products[:n:n]
}

func CountByOperator(products []Product) map[string]int {
	counts := make(map[string]int)
	for _, p := range products {
		counts[p.OperatorName()]++
	}
	return counts
}
