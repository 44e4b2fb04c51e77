package dto

// GetProductsQuery holds the product listing filters.
// The external contract caps pages at 5 items.
type GetProductsQuery struct {
	Name     string   `form:"name"`
	Brand    string   `form:"brand"`
	Model    string   `form:"model"`
	Category string   `form:"category"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,min=0"`
	Page     int      `form:"page" binding:"omitempty,min=1"`
	Limit    int      `form:"limit" binding:"omitempty,min=1,max=5"`
}
