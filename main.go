package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Fatigue/internal/auth"
	"Fatigue/internal/calc"
	"Fatigue/internal/calc/compare"
	"Fatigue/internal/calc/curve"
	"Fatigue/internal/calc/damage"
	"Fatigue/internal/calc/life"
	"Fatigue/internal/calc/report"
	"Fatigue/internal/calc/spectrum"
	"Fatigue/internal/config"
	"Fatigue/internal/fatigue"
	"Fatigue/internal/history"
	"Fatigue/internal/logging"
	"Fatigue/internal/material"
	"Fatigue/internal/metrics"
	"Fatigue/internal/repo"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

type app struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	material material.Spec
	store    repo.Repository
	metrics  *metrics.Metrics
	limiter  *auth.IPRateLimiter
}

func HandleList(router *mux.Router, a *app) {
	env := &calc.Env{
		Engine:       fatigue.NewEngine(a.material.Properties),
		MaterialName: a.material.Name,
		Store:        a.store,
		Metrics:      a.metrics,
		Log:          a.log,
	}
	authEnv := &auth.Authenv{JWTKey: []byte(a.cfg.TokenKey), Repo: a.store, Log: a.log}
	if a.limiter == nil {
		a.limiter = auth.NewIPRateLimiter(rate.Limit(a.cfg.RateLimit), a.cfg.RateBurst)
	}

	router.Use(a.metrics.Middleware)
	router.Handle("/metrics", a.metrics.Handler()).Methods("GET")
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	api.Use(a.limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")
	api.HandleFunc("/material", func(w http.ResponseWriter, r *http.Request) {
		calc.WriteJSON(w, http.StatusOK, a.material)
	}).Methods("GET")

	lifeH := &life.Handler{Env: env}
	damageH := &damage.Handler{Env: env}
	compareH := &compare.Handler{Env: env}
	curveH := &curve.Handler{Env: env}
	spectrumH := &spectrum.Handler{Env: env}
	reportH := &report.Handler{Env: env}
	historyH := &history.Handler{Repo: a.store, Log: a.log}

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	secureApi.HandleFunc("/tools/life/calc", lifeH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/damage/calc", damageH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/damage/import", spectrumH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/compare/calc", compareH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/curve/calc", curveH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/curve/xlsx", curveH.Export).Methods("POST")
	secureApi.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/analyses", historyH.List).Methods("GET")
	secureApi.HandleFunc("/analyses/{id}", historyH.Get).Methods("GET")
}

func run(ctx context.Context, log *zap.SugaredLogger, cfg *config.Config) error {
	spec, err := material.LoadFile(cfg.MaterialFile)
	if err != nil {
		return err
	}
	log.Infow("material loaded", "file", cfg.MaterialFile, "name", spec.Name,
		"su_mpa", spec.Properties.UltimateStrength, "se_mpa", spec.Properties.EnduranceLimit)

	db, err := repo.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	store := repo.NewPostgres(db)
	if err := store.Migrate(ctx); err != nil {
		return err
	}

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	go limiter.Run(ctx, time.Minute, 10*time.Minute)

	router := mux.NewRouter()
	HandleList(router, &app{cfg: cfg, log: log, material: spec, store: store, metrics: metrics.New(), limiter: limiter})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           CORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infow("starting server", "addr", cfg.ListenAddr)
		if err := server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	wg.Wait()
	log.Info("server stopped")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(ctx, log, cfg); err != nil {
		log.Fatalw("fatigue service stopped", "error", err)
	}
}
