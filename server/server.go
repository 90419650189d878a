package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/genuka/app-shell/companies"
	"github.com/genuka/app-shell/genuka"
	"github.com/genuka/app-shell/internal/config"
	"github.com/genuka/app-shell/session"
	"github.com/genuka/app-shell/signedlink"
)

// PlatformClient is the slice of the Genuka API the server depends on.
type PlatformClient interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
	RetrieveCompany(ctx context.Context, companyID, accessToken string) (*genuka.Company, error)
}

// Server routes requests through the edge gate and into the shell's pages
// and handlers.
type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	handler   http.Handler
	config    config.Config
	companies companies.Repo
	sessions  *session.Codec
	links     *signedlink.Signer
	platform  PlatformClient
	locales   *Locales
}

func New(cfg config.Config, companyRepo companies.Repo, platform PlatformClient) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		config:    cfg,
		companies: companyRepo,
		sessions:  session.NewCodec(cfg.GetClientSecret(), cfg.GetSessionTTL()),
		links:     signedlink.NewSigner(cfg.GetClientSecret()).WithMaxAge(cfg.GetLinkMaxAge()),
		platform:  platform,
		locales:   NewLocales(),
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	// The edge gate wraps the whole mux; request logging wraps the gate so
	// redirects issued by the gate are visible too.
	s.handler = ChainHandler(s.EdgeGate(s.mux),
		s.LoggingMiddleware, s.RecoverMiddleware, s.FrameSecurityMiddleware)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// isProd reports whether the server runs with production cookie settings.
func (s *Server) isProd() bool {
	return s.env == "PROD"
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}
