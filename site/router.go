// Package site knows the public pages of the single-page app: which path renders
// which page, how navigation moves between them, and how the built app is served.
package site

import "sync"

type Page struct {
	Path         string
	Name         string
	RequiresAuth bool
}

const (
	HomePath  = "/"
	LoginPath = "/login"
)

// Pages is the complete page table. Matching is exact; anything else renders Home.
var Pages = []Page{
	{Path: HomePath, Name: "Home"},
	{Path: "/properties", Name: "Properties"},
	{Path: "/property", Name: "PropertyDetail"},
	{Path: "/about", Name: "About"},
	{Path: "/team", Name: "Team"},
	{Path: "/services", Name: "Services"},
	{Path: "/buy", Name: "Buy"},
	{Path: "/sell", Name: "Sell"},
	{Path: "/testimonials", Name: "Testimonials"},
	{Path: "/recognition", Name: "Recognition"},
	{Path: "/partnerships", Name: "Partnerships"},
	{Path: "/blog", Name: "Blog"},
	{Path: "/blog-post", Name: "BlogPost"},
	{Path: "/contact", Name: "Contact"},
	{Path: LoginPath, Name: "Login"},
	{Path: "/signup", Name: "Signup"},
	{Path: "/account", Name: "Account", RequiresAuth: true},
	{Path: "/favorites", Name: "Favorites", RequiresAuth: true},
	{Path: "/admin", Name: "Admin", RequiresAuth: true},
	{Path: "/privacy", Name: "Privacy"},
	{Path: "/terms", Name: "Terms"},
}

var byPath = func() map[string]Page {
	m := make(map[string]Page, len(Pages))
	for _, p := range Pages {
		m[p.Path] = p
	}
	return m
}()

// Resolve returns the page for path, falling back to Home.
func Resolve(path string) Page {
	if p, ok := byPath[path]; ok {
		return p
	}
	return byPath[HomePath]
}

// Known reports whether path has its own page.
func Known(path string) bool {
	_, ok := byPath[path]
	return ok
}

// History is where navigation is recorded, e.g. the browser's pushState.
type History interface {
	PushState(path string)
}

// Navigator owns the current path. It is passed to whatever needs to navigate
// instead of living in a global.
type Navigator struct {
	mu        sync.Mutex
	history   History
	signedIn  func() bool
	current   string
	listeners []func(Page)
}

// NewNavigator starts at initialPath. signedIn may be nil, meaning anonymous.
func NewNavigator(initialPath string, history History, signedIn func() bool) *Navigator {
	if signedIn == nil {
		signedIn = func() bool { return false }
	}
	return &Navigator{history: history, signedIn: signedIn, current: initialPath}
}

func (n *Navigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Current is the page currently rendered.
func (n *Navigator) Current() Page {
	return Resolve(n.CurrentPath())
}

// OnChange registers fn to run after every navigation.
func (n *Navigator) OnChange(fn func(Page)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, fn)
}

// NavigateTo pushes path onto the history and renders its page. Pages that need a
// session send anonymous visitors to the login page instead.
func (n *Navigator) NavigateTo(path string) Page {
	page := Resolve(path)
	if page.RequiresAuth && !n.signedIn() {
		path = LoginPath
		page = Resolve(LoginPath)
	}

	n.mu.Lock()
	n.current = path
	listeners := append([]func(Page){}, n.listeners...)
	n.mu.Unlock()

	if n.history != nil {
		n.history.PushState(path)
	}
	for _, fn := range listeners {
		fn(page)
	}
	return page
}
