package catalog

type Product struct {
	ID          int
	Name        string
	BasePrice   float64
	Currency    string
	VATRate     float64
	VATIncluded bool
	Ratio       float64
	Measure     string
	Active      bool
}

// Ratio is the packaging unit a product is sold in: quantities are multiples of it
type Ratio struct {
	Ratio   float64
	Measure string
}

func (p Product) GetRatio() Ratio {
	ratio := p.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	return Ratio{
		Ratio:   ratio,
		Measure: p.Measure,
	}
}
