package models

type BlogPost struct {
	Base
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Content    string   `json:"content"`
	Author     string   `json:"author"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage"`
	ReadTime   string   `json:"readTime"`
	Featured   bool     `json:"featured"`
}

func (p *BlogPost) SlugSource() string   { return p.Title }
func (p *BlogPost) SetSlug(s string)     { p.Slug = s }
func (p *BlogPost) SlugValue() string    { return p.Slug }
func (p *BlogPost) IsFeatured() bool     { return p.Featured }
func (p *BlogPost) CategoryName() string { return p.Category }
