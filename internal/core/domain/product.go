package domain

import "github.com/govalues/decimal"

type Product struct {
	ID          uint64
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       uint64
	Images      []ProductImage
}

type ProductImage struct {
	ID         uint64
	ProductID  uint64
	URL        string
	IsFeatured bool
}

// FeaturedImage returns the URL of the featured image, or an empty string
// when the product has none.
func (p *Product) FeaturedImage() string {
	for _, img := range p.Images {
		if img.IsFeatured {
			return img.URL
		}
	}
	return ""
}

// Available reports whether the product has any sellable stock left.
func (p *Product) Available() bool {
	return p.Stock > 0
}
