package http

import (
	"net/http"
	"strings"

	"easyrent-backend/internal/metrics"
	"easyrent-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services groups the dependencies of the REST API.
type Services struct {
	Auth   service.AuthService
	User   service.UserService
	Brand  service.BrandService
	Model  service.ModelService
	Car    service.CarService
	Rental service.RentalService
	Image  service.ImageService
}

// RouterConfig holds the transport level settings of the REST API.
type RouterConfig struct {
	AllowedOrigins []string
	MaxUploadBytes int64
	// UploadsPath is the URL prefix disk-stored images are served under.
	// Empty disables the route.
	UploadsPath string
	Metrics     *metrics.Metrics
}

// NewRouter wires every REST route and the shared middleware chain.
func NewRouter(svc Services, cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	observe := Metrics(cfg.Metrics)
	router.Use(observe)
	// mux skips Use middleware for these, so they are wrapped directly
	router.NotFoundHandler = observe(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "route not found")
	}))
	router.MethodNotAllowedHandler = observe(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}))

	auth := RequireAuth(svc.Auth)
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	router.HandleFunc("/health", Health).Methods(http.MethodGet)
	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	authHandler := NewAuthHandler(svc.Auth)
	router.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	users := NewUserHandler(svc.User)
	router.HandleFunc("/users", users.Register).Methods(http.MethodPost)
	router.Handle("/users", protected(users.List)).Methods(http.MethodGet)
	router.Handle("/users/profile", protected(users.Profile)).Methods(http.MethodGet)

	brands := NewBrandHandler(svc.Brand)
	router.HandleFunc("/brands", brands.List).Methods(http.MethodGet)
	router.HandleFunc("/brands/{id}", brands.Get).Methods(http.MethodGet)
	router.Handle("/brands", protected(brands.Create)).Methods(http.MethodPost)
	router.Handle("/brands/{id}", protected(brands.Update)).Methods(http.MethodPut)
	router.Handle("/brands/{id}", protected(brands.Delete)).Methods(http.MethodDelete)

	models := NewModelHandler(svc.Model)
	router.HandleFunc("/models", models.List).Methods(http.MethodGet)
	router.HandleFunc("/models/brand/{brandId}", models.ListByBrand).Methods(http.MethodGet)
	router.HandleFunc("/models/{id}", models.Get).Methods(http.MethodGet)
	router.Handle("/models", protected(models.Create)).Methods(http.MethodPost)
	router.Handle("/models/{id}", protected(models.Update)).Methods(http.MethodPut)
	router.Handle("/models/{id}", protected(models.Delete)).Methods(http.MethodDelete)

	cars := NewCarHandler(svc.Car)
	router.HandleFunc("/cars", cars.List).Methods(http.MethodGet)
	router.HandleFunc("/cars/available", cars.ListAvailable).Methods(http.MethodGet)
	router.HandleFunc("/cars/{id}", cars.Get).Methods(http.MethodGet)
	router.Handle("/cars", protected(cars.Create)).Methods(http.MethodPost)
	router.Handle("/cars/{id}", protected(cars.Update)).Methods(http.MethodPut)
	router.Handle("/cars/{id}", protected(cars.Delete)).Methods(http.MethodDelete)

	rentals := NewRentalHandler(svc.Rental)
	router.Handle("/rentals", protected(rentals.List)).Methods(http.MethodGet)
	router.Handle("/rentals/mine", protected(rentals.ListMine)).Methods(http.MethodGet)
	router.Handle("/rentals/{id}", protected(rentals.Get)).Methods(http.MethodGet)
	router.Handle("/rentals", protected(rentals.Create)).Methods(http.MethodPost)
	router.Handle("/rentals/{id}", protected(rentals.Cancel)).Methods(http.MethodDelete)

	images := NewImageUploadHandler(svc.Image, cfg.MaxUploadBytes)
	router.Handle("/upload/car-image", protected(images.HandleUpload)).Methods(http.MethodPost)
	router.HandleFunc("/upload/car-images", images.HandleList).Methods(http.MethodGet)
	router.Handle("/upload/car-image/{filename}", protected(images.HandleDelete)).Methods(http.MethodDelete)
	if cfg.UploadsPath != "" {
		router.HandleFunc(strings.TrimRight(cfg.UploadsPath, "/")+"/{key}", images.HandleDownload).Methods(http.MethodGet)
	}

	var handler http.Handler = router
	handler = RequestLogger(handler)
	handler = CORS(cfg.AllowedOrigins)(handler)
	handler = Recover(handler)
	return handler
}
