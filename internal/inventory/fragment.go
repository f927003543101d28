package inventory

import (
	"html"
	"strconv"
	"strings"
)

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// productListFragment builds the markup swapped into #product-list on the
// inventory page, one <li> per product in store order.
func productListFragment(products []Product) string {
	var b strings.Builder
	b.WriteString(`<ul id="product-list">` + "\n")
	for _, p := range products {
		b.WriteString(`<li id="product-`)
		b.WriteString(strconv.FormatUint(uint64(p.ID), 10))
		b.WriteString(`"><strong>`)
		b.WriteString(html.EscapeString(p.Name))
		b.WriteString(`</strong> $`)
		b.WriteString(formatPrice(p.Price))
		b.WriteString(` <span class="stock">stock: `)
		b.WriteString(strconv.FormatUint(uint64(p.Stock), 10))
		b.WriteString("</span></li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}
