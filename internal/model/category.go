package model

type Category struct {
	BaseModel
	Name        string  `db:"name"`
	Description *string `db:"description"`
	ImageURL    *string `db:"image_url"`
	SortOrder   int     `db:"sort_order"`
	IsActive    bool    `db:"is_active"`
}
