package models

type Property struct {
	Base
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	PriceLabel     string   `json:"priceLabel"`
	Location       string   `json:"location"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      float64  `json:"bathrooms"`
	SquareFeet     int      `json:"squareFeet"`
	LotSize        string   `json:"lotSize"`
	YearBuilt      int      `json:"yearBuilt"`
	PropertyType   string   `json:"propertyType"`
	Status         string   `json:"status"`
	Images         []string `json:"images"`
	Features       []string `json:"features"`
	VirtualTourURL string   `json:"virtualTourUrl"`
	Featured       bool     `json:"featured"`
}

func (p *Property) SlugSource() string   { return p.Title }
func (p *Property) SetSlug(s string)     { p.Slug = s }
func (p *Property) SlugValue() string    { return p.Slug }
func (p *Property) IsFeatured() bool     { return p.Featured }
func (p *Property) CategoryName() string { return p.PropertyType }
