package httpapi

import (
	"net/http"
	"time"

	"digiplot/internal/metrics"
	"digiplot/internal/service"

	"go.uber.org/zap"
)

// Services bundles what the handlers need.
type Services struct {
	Auth          service.AuthService
	Landlord      service.LandlordService
	Tenant        service.TenantService
	Payments      service.PaymentService
	Notifications service.NotificationService
}

type Options struct {
	// SimulatedLatency delays every /api/v1 call; zero disables it.
	SimulatedLatency time.Duration
}

// Router uses the standard library http.ServeMux with method patterns.
type Router struct {
	mux     *http.ServeMux
	handler http.Handler
	logger  *zap.Logger
}

func NewRouter(svc Services, opts Options, logger *zap.Logger) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
	r.RegisterAuthRoutes(NewAuthHandler(svc.Auth, logger))
	r.RegisterLandlordRoutes(NewLandlordHandler(svc.Landlord, svc.Payments, svc.Notifications, logger))
	r.RegisterTenantRoutes(NewTenantHandler(svc.Tenant, svc.Payments, logger))
	r.RegisterPaymentRoutes(NewPaymentCallbackHandler(svc.Payments, logger))

	r.Handle("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Ok(map[string]string{"status": "ok"}))
	})
	r.HandleHandler("GET /metrics", metrics.Handler())

	var h http.Handler = r.mux
	h = requireRole(svc.Auth, logger, h)
	h = simulateLatency(opts.SimulatedLatency, h)
	h = recoverPanics(logger, h)
	r.handler = metrics.InstrumentHandler(h)
	return r
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) HandleHandler(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) RegisterAuthRoutes(h *AuthHandler) {
	r.Handle("POST "+apiPrefix+"/auth/login", h.Login)
	r.Handle("POST "+apiPrefix+"/auth/logout", h.Logout)
	r.Handle("GET "+apiPrefix+"/auth/session", h.Session)
}

func (r *Router) RegisterLandlordRoutes(h *LandlordHandler) {
	p := apiPrefix + "/landlord"

	r.Handle("GET "+p+"/profile", h.GetProfile)
	r.Handle("PUT "+p+"/profile", h.UpdateProfile)

	r.Handle("GET "+p+"/properties", h.ListProperties)
	r.Handle("POST "+p+"/properties", h.CreateProperty)
	r.Handle("GET "+p+"/properties/{id}", h.GetProperty)
	r.Handle("PUT "+p+"/properties/{id}", h.UpdateProperty)
	r.Handle("DELETE "+p+"/properties/{id}", h.DeleteProperty)
	r.Handle("GET "+p+"/properties/{id}/units", h.ListPropertyUnits)
	r.Handle("POST "+p+"/properties/{id}/units", h.CreatePropertyUnit)

	r.Handle("GET "+p+"/units", h.ListUnits)
	r.Handle("POST "+p+"/units", h.CreateUnit)
	r.Handle("GET "+p+"/units/{id}", h.GetUnit)
	r.Handle("PUT "+p+"/units/{id}", h.UpdateUnit)
	r.Handle("DELETE "+p+"/units/{id}", h.DeleteUnit)

	r.Handle("GET "+p+"/tenants", h.ListTenants)
	r.Handle("POST "+p+"/tenants", h.CreateTenant)
	r.Handle("GET "+p+"/tenants/{id}", h.GetTenant)
	r.Handle("PUT "+p+"/tenants/{id}", h.UpdateTenant)
	r.Handle("DELETE "+p+"/tenants/{id}", h.DeleteTenant)

	r.Handle("GET "+p+"/payments", h.ListPayments)
	r.Handle("POST "+p+"/payments/{id}/confirm", h.ConfirmPayment)

	r.Handle("GET "+p+"/maintenance", h.ListMaintenance)
	r.Handle("PUT "+p+"/maintenance/{id}/status", h.UpdateMaintenanceStatus)
	r.Handle("POST "+p+"/maintenance/{id}/comments", h.AddMaintenanceComment)
	r.Handle("PUT "+p+"/maintenance/{id}/cost", h.SetMaintenanceCost)

	r.Handle("GET "+p+"/dashboard", h.Dashboard)
	r.Handle("GET "+p+"/reports/{kind}", h.Report)
	r.Handle("GET "+p+"/reports/financial/export", h.ExportFinancialReport)

	r.Handle("GET "+p+"/notifications", h.ListNotifications)
	r.Handle("POST "+p+"/notifications/{id}/read", h.MarkNotificationRead)
}

func (r *Router) RegisterTenantRoutes(h *TenantHandler) {
	p := apiPrefix + "/tenant"

	r.Handle("GET "+p+"/dashboard", h.Dashboard)
	r.Handle("GET "+p+"/profile", h.GetProfile)
	r.Handle("GET "+p+"/unit", h.GetUnit)

	r.Handle("GET "+p+"/payments", h.ListPayments)
	r.Handle("POST "+p+"/payments", h.MakePayment)
	r.Handle("GET "+p+"/payments/{id}/receipt", h.GetReceipt)

	r.Handle("GET "+p+"/maintenance", h.ListMaintenance)
	r.Handle("POST "+p+"/maintenance", h.CreateMaintenance)

	r.Handle("GET "+p+"/notifications", h.ListNotifications)
	r.Handle("POST "+p+"/notifications/{id}/read", h.MarkNotificationRead)
}

func (r *Router) RegisterPaymentRoutes(h *PaymentCallbackHandler) {
	r.Handle("POST "+apiPrefix+"/payments/callback", h.Callback)
}
