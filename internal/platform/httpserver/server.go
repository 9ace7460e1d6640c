package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	ledgerservice "caravan/contexts/trip-finance/ledger-service"
	pollservice "caravan/contexts/trip-planning/poll-service"
	_ "caravan/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	handler   http.Handler
	logger    *slog.Logger
	addr      string
	jwtSecret []byte
	ledger    ledgerservice.Module
	polls     pollservice.Module
}

type Options struct {
	Addr        string
	JWTSecret   string
	CORSOrigins []string
}

func New(
	ledger ledgerservice.Module,
	polls pollservice.Module,
	logger *slog.Logger,
	opts Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	addr := opts.Addr
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		jwtSecret: []byte(opts.JWTSecret),
		ledger:    ledger,
		polls:     polls,
	}
	s.registerRoutes()

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.handler = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-User-Id"},
	}).Handler(s.mux)
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.handler)
}

// Handler exposes the routed handler for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /v1/trips/{trip_id}/expenses", s.handleCreateExpense)
	s.mux.HandleFunc("POST /v1/expenses/{expense_id}/status", s.handleChangeExpenseStatus)
	s.mux.HandleFunc("GET /v1/trips/{trip_id}/balances", s.handleTripBalances)
	s.mux.HandleFunc("GET /v1/trips/{trip_id}/settlements/suggested", s.handleSuggestedSettlements)
	s.mux.HandleFunc("POST /v1/trips/{trip_id}/settlements/confirm", s.handleConfirmSettlement)
	s.mux.HandleFunc("GET /v1/trips/{trip_id}/settlements", s.handleListSettlements)

	s.mux.HandleFunc("POST /v1/trips/{trip_id}/proposals", s.handleCreateProposal)
	s.mux.HandleFunc("POST /v1/proposals/{proposal_id}/close", s.handleCloseProposal)
	s.mux.HandleFunc("POST /v1/proposals/{proposal_id}/votes", s.handleCastVote)
	s.mux.HandleFunc("POST /v1/trips/{trip_id}/categories/{category}/ballots", s.handleSubmitRankedBallot)
	s.mux.HandleFunc("GET /v1/proposals/{proposal_id}/results", s.handleProposalResults)
	s.mux.HandleFunc("GET /v1/trips/{trip_id}/categories/{category}/results", s.handleCategoryResults)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
