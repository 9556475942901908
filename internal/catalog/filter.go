package catalog

// FilterBelow returns the products priced strictly under thresholdCents,
// preserving input order. Pure: the input slice is never modified. Any
// threshold is legal; zero or negative simply selects nothing.
func FilterBelow(products []Product, thresholdCents int64) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.PriceCents < thresholdCents {
			out = append(out, p)
		}
	}
	return out
}
