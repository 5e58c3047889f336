package handler

import (
	"fmt"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/anyulbade/payment-config-service/internal/auth"
	"github.com/anyulbade/payment-config-service/internal/metrics"
	"github.com/anyulbade/payment-config-service/internal/middleware"
	"github.com/anyulbade/payment-config-service/internal/model"
	"github.com/anyulbade/payment-config-service/internal/service"
	"github.com/anyulbade/payment-config-service/internal/validation"
)

type Services struct {
	Reference        *service.ReferenceService
	CountryAuthority *service.CountryAuthorityService
	WithdrawalsOrder *service.WithdrawalsOrderService
	Field            *service.FieldService
	Limit            *service.TransactionLimitService
	BankAccount      *service.BankAccountService
	Credentials      *service.CredentialsService
	Restriction      *service.RestrictionService
	StpRule          *service.StpRuleService
	ProviderSettings *service.ProviderSettingsService
	Export           *service.ExportService
}

// RouterOptions carries the cross-cutting pieces. Nil Metrics or RateLimiter
// leave that middleware out.
type RouterOptions struct {
	Authenticator *auth.Authenticator
	Metrics       *metrics.Metrics
	RateLimiter   *middleware.RateLimiter
	DB            Pinger
	CORSOrigins   []string
}

func NewRouter(opts RouterOptions, svc Services) (*gin.Engine, error) {
	if err := validation.RegisterBindings(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(gin.Recovery())
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}
	if opts.Metrics != nil {
		router.Use(opts.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	router.GET("/health", NewHealthHandler(opts.DB).Health)
	SetupSwagger(router)

	api := router.Group("/api/v1")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Middleware())
	}
	api.Use(opts.Authenticator.Authenticate())

	viewer := auth.RequireRole(auth.RoleViewer)
	editor := auth.RequireRole(auth.RoleEditor)
	admin := auth.RequireRole(auth.RoleAdmin)

	refs := NewReferenceHandler(svc.Reference)
	for path, kind := range map[string]model.ReferenceKind{
		"/countries":   model.KindCountry,
		"/authorities": model.KindAuthority,
		"/currencies":  model.KindCurrency,
		"/methods":     model.KindMethod,
		"/providers":   model.KindProvider,
	} {
		api.GET(path, viewer, refs.List(kind))
		api.POST(path, editor, refs.Upsert(kind))
	}

	cas := NewCountryAuthorityHandler(svc.CountryAuthority, svc.WithdrawalsOrder)
	pms := NewProviderMethodHandler(svc.Field, svc.Limit)
	api.GET("/country-authorities", viewer, cas.List)
	api.POST("/country-authorities", editor, cas.Create)
	ca := api.Group("/country-authorities/:country/:authority")
	{
		ca.GET("/methods", viewer, cas.ListMethods)
		ca.POST("/methods", editor, cas.BindMethod)
		ca.DELETE("/methods/:provider/:method", admin, cas.UnbindMethod)
		ca.GET("/methods/:provider/:method/fields", viewer, pms.GetFields)
		ca.PUT("/methods/:provider/:method/fields", editor, pms.ReplaceFields)
		ca.GET("/methods/:provider/:method/limits", viewer, pms.GetLimits)
		ca.PUT("/methods/:provider/:method/limits", editor, pms.ReplaceLimits)
		ca.GET("/withdrawals-order", viewer, cas.GetWithdrawalsOrder)
		ca.PUT("/withdrawals-order", editor, cas.UpdateWithdrawalsOrder)
	}

	providers := NewProviderHandler(svc.BankAccount, svc.Credentials, svc.Restriction, svc.ProviderSettings)
	stp := NewStpRuleHandler(svc.StpRule)
	p := api.Group("/providers/:provider")
	{
		p.GET("/bank-accounts", viewer, providers.GetBankAccounts)
		p.PUT("/bank-accounts", editor, providers.ReplaceBankAccounts)
		p.GET("/credentials", admin, providers.GetCredentials)
		p.PUT("/credentials", admin, providers.ReplaceCredentials)
		p.GET("/credentials/effective", admin, providers.EffectiveCredentials)
		p.GET("/restrictions", viewer, providers.GetRestrictions)
		p.PUT("/restrictions", editor, providers.ReplaceRestrictions)
		p.GET("/settings", viewer, providers.GetSettings)
		p.PUT("/settings", editor, providers.ReplaceSettings)
		p.GET("/stp-rules/:country/:authority", viewer, stp.ProviderRules)
		p.PUT("/stp-rules/:country/:authority", editor, stp.ReplaceProviderRules)
	}
	api.GET("/stp-rules", viewer, stp.Catalog)
	api.PUT("/stp-rules", admin, stp.UpsertCatalog)

	api.GET("/export/provider-methods.csv", viewer, NewExportHandler(svc.Export).ProviderMethods)

	return router, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-API-Key", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
