package models

type Testimonial struct {
	Base
	ClientName   string `json:"clientName"`
	ClientTitle  string `json:"clientTitle"`
	Location     string `json:"location"`
	Content      string `json:"content"`
	Rating       int    `json:"rating"`
	ImageURL     string `json:"imageUrl"`
	PropertyType string `json:"propertyType"`
	Featured     bool   `json:"featured"`
	DisplayOrder int    `json:"displayOrder"`
}

func (t *Testimonial) IsFeatured() bool     { return t.Featured }
func (t *Testimonial) CategoryName() string { return t.PropertyType }
func (t *Testimonial) Order() int           { return t.DisplayOrder }
