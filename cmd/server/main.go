package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/classlane/classlane/core"
	"github.com/classlane/classlane/pkg/config"
	"github.com/classlane/classlane/pkg/db"
	"github.com/classlane/classlane/pkg/enforcer"
	"github.com/classlane/classlane/pkg/httpserver"
	"github.com/classlane/classlane/pkg/logger"
	"github.com/classlane/classlane/pkg/principal"
	"github.com/classlane/classlane/pkg/redis"
	"github.com/classlane/classlane/pkg/tenant"
	"github.com/classlane/classlane/svc/notices"
	"github.com/classlane/classlane/svc/tenants"
)

type appConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DefaultTenantID int64         `env:"TENANT_DEFAULT_ID" envDefault:"0"`           // fallback tenant for single-tenant/dev deployments; 0 disables it
	PrivilegedRole  string        `env:"TENANT_PRIVILEGED_ROLE" envDefault:"superadmin"` // role name bypassing isolation
	LenientHeader   bool          `env:"TENANT_LENIENT_HEADER" envDefault:"false"`   // legacy fall-through for unknown header identifiers
	CacheTTL        time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
}

func main() {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	log := logger.New(
		logger.WithLevelString(appCfg.LogLevel),
		logger.WithService("classlane"),
		logger.WithContextExtractors(tenant.LoggerExtractor()),
	)
	slog.SetDefault(log)

	if err := run(context.Background(), appCfg, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, appCfg appConfig, log *slog.Logger) error {
	var dbCfg db.Config
	config.MustLoad(&dbCfg)
	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)
	var redisCfg redis.Config
	config.MustLoad(&redisCfg)

	gormDB, err := db.Connect(ctx, dbCfg, log)
	if err != nil {
		return err
	}
	if err := db.Migrate(ctx, gormDB, dbCfg, log); err != nil {
		return err
	}
	if err := gormDB.Use(enforcer.New(log)); err != nil {
		return err
	}

	var cache tenant.Cache
	if redisCfg.Enabled {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		cache = tenant.NewRedisCache(client, "classlane:")
	} else {
		cache = tenant.NewInMemoryCache()
	}
	defer cache.Close()

	store := tenants.NewStore(gormDB)
	provider := tenant.NewCachedProvider(store, cache, appCfg.CacheTTL)

	resolverOpts := []tenant.ResolverOption{
		tenant.WithDefaultTenant(appCfg.DefaultTenantID),
		tenant.WithResolverLogger(log),
	}
	if appCfg.LenientHeader {
		resolverOpts = append(resolverOpts, tenant.WithLenientHeader())
	}
	resolver := tenant.NewResolver(provider, resolverOpts...)

	tenantSvc := tenants.NewService(store, provider, log)
	noticeRepo := notices.NewRepository(gormDB)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(gatewayPrincipal)
	router.Use(tenant.Middleware(resolver,
		tenant.WithSkipPaths("/health", "/docs"),
		tenant.WithPrivilegedRole(appCfg.PrivilegedRole),
		tenant.WithLogger(log),
	))

	router.Get("/health", healthHandler(db.Healthcheck(gormDB)))
	router.Mount("/api/v1/tenants", tenants.NewHandler(tenantSvc).Routes())
	router.Mount("/api/v1/notices", notices.NewHandler(noticeRepo).Routes())

	return httpserver.New(httpCfg, log).Run(ctx, router)
}

// gatewayPrincipal trusts the identity headers set by the authenticating
// gateway in front of this service and binds the principal to the context.
func gatewayPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.Header.Get("X-User-ID"))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		p := &principal.Principal{
			UserID: userID,
			Email:  r.Header.Get("X-User-Email"),
		}
		if roles := r.Header.Get("X-User-Roles"); roles != "" {
			for _, role := range strings.Split(roles, ",") {
				if role = strings.TrimSpace(role); role != "" {
					p.Roles = append(p.Roles, role)
				}
			}
		}

		next.ServeHTTP(w, r.WithContext(principal.WithPrincipal(r.Context(), p)))
	})
}

func healthHandler(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := check(r.Context()); err != nil {
			core.RespondError(w, core.ErrServiceUnavailable)
			return
		}
		core.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

