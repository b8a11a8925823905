package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/example/afrimarket/internal/api/middleware"
	"github.com/example/afrimarket/internal/domain/user"
	"github.com/example/afrimarket/internal/telemetry"
)

const serviceName = "afrimarket-api"

// NewRouter wires the storefront routes. webhook receives FedaPay
// notifications and may be nil.
func NewRouter(handlers *Handlers, webhook http.Handler) http.Handler {
	mux := http.NewServeMux()

	sessions := handlers.store
	withSession := middleware.RequireSession(sessions)
	withOptionalSession := middleware.OptionalSession(sessions)
	sellers := func(next http.HandlerFunc) http.Handler {
		return withSession(middleware.RequireRole(user.RoleAdmin, user.RoleSuperadmin)(next))
	}
	superadmins := func(next http.HandlerFunc) http.Handler {
		return withSession(middleware.RequireRole(user.RoleSuperadmin)(next))
	}

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Products
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetProducts(w, r)
		case http.MethodPost:
			sellers(handlers.CreateProduct).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/products/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			handlers.GetProduct(w, r)
		case http.MethodDelete:
			sellers(handlers.DeleteProduct).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/categories", methodOnly(http.MethodGet, handlers.GetCategories))
	mux.HandleFunc("/countries", methodOnly(http.MethodGet, handlers.GetCountries))
	mux.HandleFunc("/countries/", methodOnly(http.MethodGet, handlers.GetCountry))

	// Cart (guests may shop before logging in)
	mux.Handle("/cart", withOptionalSession(methodOnly(http.MethodGet, handlers.GetCart)))
	mux.Handle("/cart/items", withOptionalSession(methodOnly(http.MethodPost, handlers.AddToCart)))

	mux.Handle("/cart/items/", withOptionalSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			handlers.UpdateCartItem(w, r)
		case http.MethodDelete:
			handlers.RemoveFromCart(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})))

	// Checkout
	mux.Handle("/checkout", withSession(methodOnly(http.MethodPost, handlers.Checkout)))
	mux.Handle("/checkout/complete", withSession(methodOnly(http.MethodPost, handlers.CompleteCheckout)))

	// Orders
	mux.Handle("/orders", withSession(methodOnly(http.MethodGet, handlers.GetOrders)))

	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/status") && r.Method == http.MethodPut:
			sellers(handlers.UpdateOrderStatus).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Session
	mux.HandleFunc("/auth/login", methodOnly(http.MethodPost, handlers.Login))
	mux.Handle("/auth/logout", withSession(methodOnly(http.MethodPost, handlers.Logout)))
	mux.Handle("/auth/me", withSession(methodOnly(http.MethodGet, handlers.Me)))

	// User administration
	mux.Handle("/users", superadmins(methodOnly(http.MethodGet, handlers.GetUsers)))

	mux.HandleFunc("/users/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			superadmins(handlers.GetUser).ServeHTTP(w, r)
		case http.MethodPatch:
			superadmins(handlers.UpdateUser).ServeHTTP(w, r)
		case http.MethodDelete:
			superadmins(handlers.DeleteUser).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.Handle("/events", superadmins(methodOnly(http.MethodGet, handlers.GetEvents)))

	// Dashboard, view and notifications
	mux.Handle("/dashboard", withSession(methodOnly(http.MethodGet, handlers.GetDashboard)))
	mux.HandleFunc("/view", methodOnly(http.MethodPut, handlers.SetView))
	mux.HandleFunc("/toasts", methodOnly(http.MethodGet, handlers.GetToasts))
	mux.HandleFunc("/toasts/", methodOnly(http.MethodDelete, handlers.RemoveToast))

	// Assistant
	mux.HandleFunc("/assistant", methodOnly(http.MethodPost, handlers.Ask))

	// Payment provider callbacks
	if webhook != nil {
		mux.Handle("/api/fedapay-webhook", webhook)
	}

	return telemetry.Middleware(serviceName)(withLogging(mux))
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
