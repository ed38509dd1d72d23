package httpapi

import (
	"net/http"

	"digiplot/internal/service"

	"go.uber.org/zap"
)

// TenantHandler serves /api/v1/tenant/*, always for the session's tenant.
type TenantHandler struct {
	tenants  service.TenantService
	payments service.PaymentService
	logger   *zap.Logger
}

func NewTenantHandler(tenants service.TenantService, payments service.PaymentService, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{tenants: tenants, payments: payments, logger: logger}
}

func tenantID(r *http.Request) int64 {
	return sessionFrom(r.Context()).ID
}

func (h *TenantHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	t, err := h.tenants.GetProfile(r.Context(), tenantID(r))
	if err != nil {
		writeServiceError(w, h.logger, "GetProfile", err)
		return
	}
	if t == nil {
		writeNotFound(w, "tenant")
		return
	}
	writeJSON(w, http.StatusOK, Ok(t))
}

func (h *TenantHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	u, err := h.tenants.GetUnit(r.Context(), tenantID(r))
	if err != nil {
		writeServiceError(w, h.logger, "GetUnit", err)
		return
	}
	if u == nil {
		writeNotFound(w, "unit")
		return
	}
	writeJSON(w, http.StatusOK, Ok(u))
}

func (h *TenantHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.tenants.Dashboard(r.Context(), tenantID(r))
	if err != nil {
		writeServiceError(w, h.logger, "Dashboard", err)
		return
	}
	if d == nil {
		writeNotFound(w, "tenant")
		return
	}
	writeJSON(w, http.StatusOK, Ok(d))
}

func (h *TenantHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.tenants.GetPayments(r.Context(), tenantID(r))
	if err != nil {
		writeServiceError(w, h.logger, "ListPayments", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(payments))
}

// MakePayment POST /api/v1/tenant/payments
func (h *TenantHandler) MakePayment(w http.ResponseWriter, r *http.Request) {
	var req service.MakePaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	p, err := h.tenants.MakePayment(r.Context(), tenantID(r), req)
	if err != nil {
		writeServiceError(w, h.logger, "MakePayment", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

// GetReceipt GET /api/v1/tenant/payments/{id}/receipt
func (h *TenantHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	payments, err := h.tenants.GetPayments(ctx, tenantID(r))
	if err != nil {
		writeServiceError(w, h.logger, "GetReceipt", err)
		return
	}
	owned := false
	for _, p := range payments {
		if p.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		writeNotFound(w, "payment")
		return
	}
	rc, err := h.payments.GetReceipt(ctx, id)
	if err != nil {
		writeServiceError(w, h.logger, "GetReceipt", err)
		return
	}
	if rc == nil {
		writeNotFound(w, "receipt")
		return
	}
	writeJSON(w, http.StatusOK, Ok(rc))
}

func (h *TenantHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.tenants.GetMaintenanceRequests(r.Context(), tenantID(r))
	if err != nil {
		writeServiceError(w, h.logger, "ListMaintenance", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(reqs))
}

// CreateMaintenance POST /api/v1/tenant/maintenance
func (h *TenantHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var req service.CreateMaintenanceRequest
	if !decodeBody(w, r, &req) {
		return
	}
	m, err := h.tenants.CreateMaintenanceRequest(r.Context(), tenantID(r), req)
	if err != nil {
		writeServiceError(w, h.logger, "CreateMaintenance", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(m))
}

func (h *TenantHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.tenants.ListNotifications(r.Context(), tenantID(r))
	if err != nil {
		writeServiceError(w, h.logger, "ListNotifications", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

func (h *TenantHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := h.tenants.MarkNotificationRead(r.Context(), tenantID(r), id)
	if err != nil {
		writeServiceError(w, h.logger, "MarkNotificationRead", err)
		return
	}
	if !found {
		writeNotFound(w, "notification")
		return
	}
	writeJSON(w, http.StatusOK, Ok[any](nil))
}
