package catalog

import "github.com/shopspring/decimal"

// Default returns the built-in demo catalog.
func Default() *Catalog {
	c, err := New([]Product{
		{
			ID:          "p1",
			Name:        "Classic Leather Wallet",
			Description: "Genuine leather, compact design, multiple card slots.",
			Category:    "Accessories",
			Price:       decimal.NewFromInt(499),
			ImageRef:    "https://picsum.photos/id/1011/400/300",
		},
		{
			ID:          "p2",
			Name:        "Canvas Tote Bag",
			Description: "Durable canvas bag, perfect for everyday use.",
			Category:    "Bags",
			Price:       decimal.NewFromInt(350),
			ImageRef:    "https://picsum.photos/id/1005/400/300",
		},
		{
			ID:          "p3",
			Name:        "Sport Sneakers",
			Description: "Lightweight and breathable running sneakers.",
			Category:    "Shoes",
			Price:       decimal.NewFromInt(1299),
			ImageRef:    "https://picsum.photos/id/1027/400/300",
		},
		{
			ID:          "p4",
			Name:        "Minimalist Watch",
			Description: "Slim profile watch with leather strap.",
			Category:    "Accessories",
			Price:       decimal.NewFromInt(1999),
			ImageRef:    "https://picsum.photos/id/1025/400/300",
		},
		{
			ID:          "p5",
			Name:        "Ceramic Coffee Mug",
			Description: "350ml ceramic mug, dishwasher-safe.",
			Category:    "Home",
			Price:       decimal.NewFromInt(199),
			ImageRef:    "https://picsum.photos/id/1060/400/300",
		},
		{
			ID:          "p6",
			Name:        "Wireless Earbuds",
			Description: "Noise isolating, long battery life.",
			Category:    "Electronics",
			Price:       decimal.NewFromInt(899),
			ImageRef:    "https://picsum.photos/id/180/400/300",
		},
		{
			ID:          "p7",
			Name:        "Pocket Notebook",
			Description: "A6 notebook with 120 lined pages.",
			Category:    "Stationery",
			Price:       decimal.NewFromInt(129),
			ImageRef:    "https://picsum.photos/id/1020/400/300",
		},
	})
	if err != nil {
		// the seed data is fixed and valid
		panic(err)
	}
	return c
}
