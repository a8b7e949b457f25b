package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/luxury_realty/backend/app"
	"github.com/dcode-github/luxury_realty/backend/controllers"
	"github.com/dcode-github/luxury_realty/backend/middleware"
	"github.com/dcode-github/luxury_realty/backend/repository"
	"github.com/dcode-github/luxury_realty/backend/site"
)

// Public path segments per resource.
const (
	PropertiesPath   = "/properties"
	TestimonialsPath = "/testimonials"
	RecognitionsPath = "/recognitions"
	PartnershipsPath = "/partnerships"
	BlogPath         = "/blog"
)

func Routes(router *mux.Router, a *app.App, prefix, staticDir string) {
	api := router.PathPrefix(prefix).Subrouter()
	// unmatched API paths answer in JSON instead of falling through to the SPA
	api.NotFoundHandler = http.HandlerFunc(controllers.NotFound)
	api.MethodNotAllowedHandler = http.HandlerFunc(controllers.MethodNotAllowed)
	authMW := middleware.AuthMiddleware(a.Auth)

	api.HandleFunc("/health", controllers.Health).Methods(http.MethodGet)
	// unauthenticated on purpose; see controllers.SeedAll
	api.HandleFunc("/seed-all", controllers.SeedAll(a)).Methods(http.MethodGet)

	// Auth routes
	authCtrl := controllers.NewAuthController(a.Auth)
	api.HandleFunc("/signup", authCtrl.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/login", authCtrl.SignIn).Methods(http.MethodPost)
	api.Handle("/profile", authMW(http.HandlerFunc(authCtrl.GetProfile))).Methods(http.MethodGet)
	api.Handle("/profile", authMW(http.HandlerFunc(authCtrl.UpdateProfile))).Methods(http.MethodPut)

	// Favorites routes
	favCtrl := controllers.NewFavoriteController(a.Store, a.Properties)
	favorites := api.PathPrefix("/favorites").Subrouter()
	favorites.Use(authMW)
	favorites.HandleFunc("", favCtrl.GetFavorites).Methods(http.MethodGet)
	favorites.HandleFunc("/{propertyId}", favCtrl.AddFavorite).Methods(http.MethodPost)
	favorites.HandleFunc("/{propertyId}", favCtrl.DeleteFavorite).Methods(http.MethodDelete)

	// Recommendation routes
	recCtrl := controllers.NewRecommendationController(a.Store, a.Auth, a.Properties)
	recommendations := api.PathPrefix("/recommendations").Subrouter()
	recommendations.Use(authMW)
	recommendations.HandleFunc("", recCtrl.GetRecommendations).Methods(http.MethodGet)
	recommendations.HandleFunc("", recCtrl.Recommend).Methods(http.MethodPost)

	// Content routes
	mountResource(api, PropertiesPath, authMW, controllers.NewResourceController(a.Properties, a.Cache,
		controllers.Names{Singular: "property", Plural: "properties", Label: "Property"}))
	mountResource(api, TestimonialsPath, authMW, controllers.NewResourceController(a.Testimonials, a.Cache,
		controllers.Names{Singular: "testimonial", Plural: "testimonials", Label: "Testimonial"}))
	mountResource(api, RecognitionsPath, authMW, controllers.NewResourceController(a.Recognitions, a.Cache,
		controllers.Names{Singular: "recognition", Plural: "recognitions", Label: "Recognition"}))
	mountResource(api, PartnershipsPath, authMW, controllers.NewResourceController(a.Partnerships, a.Cache,
		controllers.Names{Singular: "partnership", Plural: "partnerships", Label: "Partnership"}))
	mountResource(api, BlogPath, authMW, controllers.NewResourceController(a.Posts, a.Cache,
		controllers.Names{Singular: "post", Plural: "posts", Label: "Blog post"}))

	if staticDir != "" {
		router.PathPrefix("/").Handler(site.Handler(staticDir)).Methods(http.MethodGet, http.MethodHead)
	}
}

// mountResource registers the admin routes before the public detail route so
// "/<path>/admin" is never taken for a record id.
func mountResource[T any, PT repository.Entity[T]](
	api *mux.Router,
	path string,
	authMW func(http.Handler) http.Handler,
	ctrl *controllers.ResourceController[T, PT],
) {
	admin := api.PathPrefix(path + "/admin").Subrouter()
	admin.Use(authMW)
	admin.HandleFunc("", ctrl.AdminList).Methods(http.MethodGet)
	admin.HandleFunc("", ctrl.Create).Methods(http.MethodPost)
	admin.HandleFunc("/{id}", ctrl.Update).Methods(http.MethodPut)
	admin.HandleFunc("/{id}", ctrl.Delete).Methods(http.MethodDelete)

	api.HandleFunc(path, ctrl.List).Methods(http.MethodGet)
	api.HandleFunc(path+"/{id}", ctrl.Get).Methods(http.MethodGet)
}
