package catalog

var demoProducts = []Product{
	{ID: 1, Name: "Hockey stick", BasePrice: 190.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: true},
	{ID: 2, Name: "Hockey shoes", BasePrice: 120.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pair", Active: true},
	{ID: 3, Name: "Jogging pants", BasePrice: 60.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: true},
	{ID: 4, Name: "Sweat shirt", BasePrice: 70.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: true},
	{ID: 5, Name: "Hoody", BasePrice: 80.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: true},
	{ID: 6, Name: "Tennis racket", BasePrice: 169.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: true},
	{ID: 7, Name: "Tennis balls", BasePrice: 10.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 6, Measure: "pcs", Active: true},
	{ID: 8, Name: "Tennis shoes", BasePrice: 120.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pair", Active: true},
	{ID: 9, Name: "Running shoes", BasePrice: 120.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pair", Active: true},
	{ID: 10, Name: "Running shirt", BasePrice: 50.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: true},
	{ID: 11, Name: "Running shorts", BasePrice: 40.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: true},
	{ID: 12, Name: "Running socks", BasePrice: 10.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 3, Measure: "pair", Active: true},
	{ID: 13, Name: "Running cap", BasePrice: 20.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: true},
	{ID: 14, Name: "Sports drink", BasePrice: 1.50, Currency: "EUR", VATRate: 9, VATIncluded: false, Ratio: 0.5, Measure: "l", Active: true},
	{ID: 15, Name: "Squash racket", BasePrice: 99.00, Currency: "EUR", VATRate: 21, VATIncluded: true, Ratio: 1, Measure: "pcs", Active: false},
}
