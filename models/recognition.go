package models

// Recognition is an award, ranking or press mention.
type Recognition struct {
	Base
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Year         int    `json:"year"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	ImageURL     string `json:"imageUrl"`
	DisplayOrder int    `json:"displayOrder"`
}

func (r *Recognition) CategoryName() string { return r.Category }
func (r *Recognition) Order() int           { return r.DisplayOrder }
