package dto

type ProductFilters struct {
	CategoryID  string
	IsActive    *bool
	SearchQuery string // For name, sku search
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
