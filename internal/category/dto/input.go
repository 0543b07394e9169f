package dto

type CreateCategoryInput struct {
	Name        string
	Description string
	ImageURL    string
	SortOrder   int
}

type UpdateCategoryInput struct {
	ID          string
	Name        string
	Description string
	ImageURL    string
	SortOrder   int
	IsActive    bool
}
