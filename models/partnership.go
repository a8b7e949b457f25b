package models

type Partnership struct {
	Base
	Name         string `json:"name"`
	Description  string `json:"description"`
	LogoURL      string `json:"logoUrl"`
	WebsiteURL   string `json:"websiteUrl"`
	Category     string `json:"category"`
	DisplayOrder int    `json:"displayOrder"`
}

func (p *Partnership) CategoryName() string { return p.Category }
func (p *Partnership) Order() int           { return p.DisplayOrder }
