package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/signup/internal/idp/service"
	"github.com/aussiebroadwan/signup/internal/idp/store"
	"github.com/aussiebroadwan/signup/pkg/httpx"
	"github.com/aussiebroadwan/signup/pkg/jwtx"
	"github.com/aussiebroadwan/signup/pkg/slogx"

	_ "github.com/aussiebroadwan/signup/api/idp" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store          store.Store
	SignUpService  *service.SignUpService
	AccountService *service.AccountService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerSignUp()
	r.registerAccounts()
	r.registerSystem()

	r.Mux.Handle("/swagger/",
		httpx.Chain(httpSwagger.Handler(),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Sign-up Identity Provider API
//	@version		0.1.0
//	@description	Account registration with emailed verification codes.
//	@description
//	@description				Account administration requires an HS256 bearer token carrying accounts:read or accounts:write.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/signup
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Admin token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerSignUp() {
	h := &SignUpHandler{SignUpService: r.SignUpService}

	// Rate limited by IP + username so one address cannot be hammered from
	// a single client
	strict := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIPAndFormField(httpx.StrictLimit, "username"))
	}

	r.Mux.Handle("POST /v1/signup", strict(h.HandleSignUp))
	r.Mux.Handle("POST /v1/signup/confirm", strict(h.HandleConfirm))
	r.Mux.Handle("POST /v1/signup/resend", strict(h.HandleResend))
}

func (r *Router) registerAccounts() {
	h := &AccountsHandler{AccountService: r.AccountService}

	secured := func(fn http.HandlerFunc, scope string) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope(scope),
			httpx.RateLimitBySubject(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /v1/accounts/{username}", secured(h.HandleGet, jwtx.ScopeAccountsRead))
	r.Mux.Handle("POST /v1/accounts/{username}/approve", secured(h.HandleApprove, jwtx.ScopeAccountsWrite))
	r.Mux.Handle("POST /v1/accounts/{username}/disable", secured(h.HandleDisable, jwtx.ScopeAccountsWrite))
	r.Mux.Handle("DELETE /v1/accounts/{username}", secured(h.HandleDelete, jwtx.ScopeAccountsWrite))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
