package storage

import (
	"time"

	"hot-product-trends/internal/feed"
)

// ProductDocument is the persisted shape of one product record. FetchedAt is
// the time of the write, not of the original fetch, so that later
// trend-over-time analysis can bucket by ingestion moment.
type ProductDocument struct {
	ProductID     *int64    `json:"productId"`
	Title         string    `json:"title"`
	CategoryName  string    `json:"categoryName"`
	Price         string    `json:"price"`
	OriginalPrice string    `json:"originalPrice"`
	Rating        string    `json:"rating"`
	Orders        int       `json:"orders"`
	ProductURL    string    `json:"productUrl"`
	ShopName      string    `json:"shopName"`
	ShopID        *int64    `json:"shopId"`
	Discount      string    `json:"discount"`
	Images        []string  `json:"images"`
	FetchedAt     time.Time `json:"fetchedAt"`
}

// DocumentFromProduct maps a normalized product into its storage document.
// Images is always an array in the document, never null.
func DocumentFromProduct(p feed.Product, fetchedAt time.Time) ProductDocument {
	images := p.ImageURLs
	if images == nil {
		images = []string{}
	}
	return ProductDocument{
		ProductID:     p.ID,
		Title:         p.Title,
		CategoryName:  p.CategoryName,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Rating:        p.Rating,
		Orders:        p.Orders,
		ProductURL:    p.ProductURL,
		ShopName:      p.ShopName,
		ShopID:        p.ShopID,
		Discount:      p.Discount,
		Images:        images,
		FetchedAt:     fetchedAt,
	}
}
