package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"digiplot/internal/domain"
	"digiplot/internal/repository"
	"digiplot/internal/service"

	"go.uber.org/zap"
)

// LandlordHandler serves /api/v1/landlord/*. Every record is checked
// against the session's landlord; records of other landlords read as not found.
type LandlordHandler struct {
	landlords     service.LandlordService
	payments      service.PaymentService
	notifications service.NotificationService
	logger        *zap.Logger
}

func NewLandlordHandler(landlords service.LandlordService, payments service.PaymentService, notifications service.NotificationService, logger *zap.Logger) *LandlordHandler {
	return &LandlordHandler{
		landlords:     landlords,
		payments:      payments,
		notifications: notifications,
		logger:        logger,
	}
}

func landlordID(r *http.Request) int64 {
	return sessionFrom(r.Context()).ID
}

// ============================================
// Ownership
// ============================================

func (h *LandlordHandler) ownedProperty(ctx context.Context, owner, id int64) (*domain.Property, error) {
	p, err := h.landlords.GetProperty(ctx, id)
	if err != nil || p == nil || p.LandlordID != owner {
		return nil, err
	}
	return p, nil
}

func (h *LandlordHandler) ownedUnit(ctx context.Context, owner, id int64) (*domain.Unit, error) {
	u, err := h.landlords.GetUnit(ctx, id)
	if err != nil || u == nil {
		return nil, err
	}
	p, err := h.ownedProperty(ctx, owner, u.PropertyID)
	if err != nil || p == nil {
		return nil, err
	}
	return u, nil
}

func (h *LandlordHandler) ownedTenant(ctx context.Context, owner, id int64) (*domain.Tenant, error) {
	t, err := h.landlords.GetTenant(ctx, id)
	if err != nil || t == nil {
		return nil, err
	}
	u, err := h.ownedUnit(ctx, owner, t.UnitID)
	if err != nil || u == nil {
		return nil, err
	}
	return t, nil
}

func (h *LandlordHandler) ownsRequest(ctx context.Context, owner, id int64) (bool, error) {
	reqs, err := h.landlords.ListMaintenanceRequests(ctx, owner, "")
	if err != nil {
		return false, err
	}
	for _, r := range reqs {
		if r.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (h *LandlordHandler) ownsPayment(ctx context.Context, owner, id int64) (bool, error) {
	payments, err := h.landlords.ListPayments(ctx, owner)
	if err != nil {
		return false, err
	}
	for _, p := range payments {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

// ============================================
// Profile
// ============================================

func (h *LandlordHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	l, err := h.landlords.GetProfile(r.Context(), landlordID(r))
	if err != nil {
		writeServiceError(w, h.logger, "GetProfile", err)
		return
	}
	if l == nil {
		writeNotFound(w, "landlord")
		return
	}
	writeJSON(w, http.StatusOK, Ok(l))
}

func (h *LandlordHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var patch service.LandlordPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	l, err := h.landlords.UpdateProfile(r.Context(), landlordID(r), patch)
	if err != nil {
		writeServiceError(w, h.logger, "UpdateProfile", err)
		return
	}
	if l == nil {
		writeNotFound(w, "landlord")
		return
	}
	writeJSON(w, http.StatusOK, Ok(l))
}

// ============================================
// Properties
// ============================================

func (h *LandlordHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.landlords.ListProperties(r.Context(), landlordID(r))
	if err != nil {
		writeServiceError(w, h.logger, "ListProperties", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(props))
}

func (h *LandlordHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePropertyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.LandlordID = landlordID(r)
	p, err := h.landlords.CreateProperty(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, "CreateProperty", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

func (h *LandlordHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.ownedProperty(r.Context(), landlordID(r), id)
	if err != nil {
		writeServiceError(w, h.logger, "GetProperty", err)
		return
	}
	if p == nil {
		writeNotFound(w, "property")
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

func (h *LandlordHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch service.PropertyPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if p, err := h.ownedProperty(r.Context(), landlordID(r), id); err != nil || p == nil {
		h.notFoundOr(w, "UpdateProperty", "property", err)
		return
	}
	p, err := h.landlords.UpdateProperty(r.Context(), id, patch)
	if err != nil {
		writeServiceError(w, h.logger, "UpdateProperty", err)
		return
	}
	if p == nil {
		writeNotFound(w, "property")
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

func (h *LandlordHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if p, err := h.ownedProperty(r.Context(), landlordID(r), id); err != nil || p == nil {
		h.notFoundOr(w, "DeleteProperty", "property", err)
		return
	}
	h.writeDeleted(w, "DeleteProperty", "property", id)(h.landlords.DeleteProperty(r.Context(), id))
}

func (h *LandlordHandler) ListPropertyUnits(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if p, err := h.ownedProperty(r.Context(), landlordID(r), id); err != nil || p == nil {
		h.notFoundOr(w, "ListPropertyUnits", "property", err)
		return
	}
	units, err := h.landlords.ListUnits(r.Context(), repository.PropertyUnits(id))
	if err != nil {
		writeServiceError(w, h.logger, "ListPropertyUnits", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(units))
}

func (h *LandlordHandler) CreatePropertyUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req service.CreateUnitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.PropertyID = id
	h.createUnit(w, r, req)
}

// ============================================
// Units
// ============================================

// ListUnits GET /api/v1/landlord/units[?property_id=]
func (h *LandlordHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	scope, err := h.landlords.LandlordUnitScope(ctx, landlordID(r))
	if err != nil {
		writeServiceError(w, h.logger, "ListUnits", err)
		return
	}
	if raw := r.URL.Query().Get("property_id"); raw != "" {
		pid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid property_id"))
			return
		}
		if !scope.Includes(pid) {
			writeNotFound(w, "property")
			return
		}
		scope = repository.PropertyUnits(pid)
	}
	units, err := h.landlords.ListUnits(ctx, scope)
	if err != nil {
		writeServiceError(w, h.logger, "ListUnits", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(units))
}

func (h *LandlordHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req service.CreateUnitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.createUnit(w, r, req)
}

func (h *LandlordHandler) createUnit(w http.ResponseWriter, r *http.Request, req service.CreateUnitRequest) {
	if req.PropertyID > 0 {
		if p, err := h.ownedProperty(r.Context(), landlordID(r), req.PropertyID); err != nil || p == nil {
			h.notFoundOr(w, "CreateUnit", "property", err)
			return
		}
	}
	u, err := h.landlords.CreateUnit(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, "CreateUnit", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(u))
}

func (h *LandlordHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	u, err := h.ownedUnit(r.Context(), landlordID(r), id)
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

func (h *LandlordHandler) UpdateUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch service.UnitPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	ctx := r.Context()
	owner := landlordID(r)
	if u, err := h.ownedUnit(ctx, owner, id); err != nil || u == nil {
		h.notFoundOr(w, "UpdateUnit", "unit", err)
		return
	}
	if patch.PropertyID != nil {
		if p, err := h.ownedProperty(ctx, owner, *patch.PropertyID); err != nil || p == nil {
			h.notFoundOr(w, "UpdateUnit", "property", err)
			return
		}
	}
	u, err := h.landlords.UpdateUnit(ctx, id, patch)
	if err != nil {
		writeServiceError(w, h.logger, "UpdateUnit", err)
		return
	}
	if u == nil {
		writeNotFound(w, "unit")
		return
	}
	writeJSON(w, http.StatusOK, Ok(u))
}

func (h *LandlordHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if u, err := h.ownedUnit(r.Context(), landlordID(r), id); err != nil || u == nil {
		h.notFoundOr(w, "DeleteUnit", "unit", err)
		return
	}
	h.writeDeleted(w, "DeleteUnit", "unit", id)(h.landlords.DeleteUnit(r.Context(), id))
}

// ============================================
// Tenants
// ============================================

func (h *LandlordHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.landlords.ListTenants(r.Context(), landlordID(r))
	if err != nil {
		writeServiceError(w, h.logger, "ListTenants", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(tenants))
}

func (h *LandlordHandler) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTenantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UnitID > 0 {
		if u, err := h.ownedUnit(r.Context(), landlordID(r), req.UnitID); err != nil || u == nil {
			h.notFoundOr(w, "CreateTenant", "unit", err)
			return
		}
	}
	t, err := h.landlords.CreateTenant(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, "CreateTenant", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(t))
}

func (h *LandlordHandler) GetTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.ownedTenant(r.Context(), landlordID(r), id)
	if err != nil {
		writeServiceError(w, h.logger, "GetTenant", err)
		return
	}
	if t == nil {
		writeNotFound(w, "tenant")
		return
	}
	writeJSON(w, http.StatusOK, Ok(t))
}

func (h *LandlordHandler) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var patch service.TenantPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	ctx := r.Context()
	owner := landlordID(r)
	if t, err := h.ownedTenant(ctx, owner, id); err != nil || t == nil {
		h.notFoundOr(w, "UpdateTenant", "tenant", err)
		return
	}
	if patch.UnitID != nil {
		if u, err := h.ownedUnit(ctx, owner, *patch.UnitID); err != nil || u == nil {
			h.notFoundOr(w, "UpdateTenant", "unit", err)
			return
		}
	}
	t, err := h.landlords.UpdateTenant(ctx, id, patch)
	if err != nil {
		writeServiceError(w, h.logger, "UpdateTenant", err)
		return
	}
	if t == nil {
		writeNotFound(w, "tenant")
		return
	}
	writeJSON(w, http.StatusOK, Ok(t))
}

func (h *LandlordHandler) DeleteTenant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if t, err := h.ownedTenant(r.Context(), landlordID(r), id); err != nil || t == nil {
		h.notFoundOr(w, "DeleteTenant", "tenant", err)
		return
	}
	h.writeDeleted(w, "DeleteTenant", "tenant", id)(h.landlords.DeleteTenant(r.Context(), id))
}

// ============================================
// Payments
// ============================================

func (h *LandlordHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.landlords.ListPayments(r.Context(), landlordID(r))
	if err != nil {
		writeServiceError(w, h.logger, "ListPayments", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(payments))
}

type confirmPaymentRequest struct {
	Success *bool `json:"success"`
}

// ConfirmPayment POST /api/v1/landlord/payments/{id}/confirm settles a
// pending payment by hand, e.g. cash handed over in person.
func (h *LandlordHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req confirmPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	success := req.Success == nil || *req.Success
	owned, err := h.ownsPayment(r.Context(), landlordID(r), id)
	if err != nil || !owned {
		h.notFoundOr(w, "ConfirmPayment", "payment", err)
		return
	}
	p, err := h.payments.Confirm(r.Context(), id, success)
	if err != nil {
		writeServiceError(w, h.logger, "ConfirmPayment", err)
		return
	}
	if p == nil {
		writeNotFound(w, "payment")
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}

// ============================================
// Maintenance
// ============================================

// ListMaintenance GET /api/v1/landlord/maintenance[?status=]
func (h *LandlordHandler) ListMaintenance(w http.ResponseWriter, r *http.Request) {
	status := domain.MaintenanceStatus(r.URL.Query().Get("status"))
	reqs, err := h.landlords.ListMaintenanceRequests(r.Context(), landlordID(r), status)
	if err != nil {
		writeServiceError(w, h.logger, "ListMaintenance", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(reqs))
}

type maintenanceStatusRequest struct {
	Status domain.MaintenanceStatus `json:"status"`
}

func (h *LandlordHandler) UpdateMaintenanceStatus(w http.ResponseWriter, r *http.Request) {
	var req maintenanceStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.updateRequest(w, r, "UpdateMaintenanceStatus", func(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
		return h.landlords.UpdateMaintenanceStatus(ctx, id, req.Status)
	})
}

type maintenanceCommentRequest struct {
	Message string `json:"message"`
}

func (h *LandlordHandler) AddMaintenanceComment(w http.ResponseWriter, r *http.Request) {
	var req maintenanceCommentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.updateRequest(w, r, "AddMaintenanceComment", func(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
		return h.landlords.AddMaintenanceComment(ctx, id, sessionFrom(ctx).Name, req.Message)
	})
}

type maintenanceCostRequest struct {
	Cost int64 `json:"cost"`
}

func (h *LandlordHandler) SetMaintenanceCost(w http.ResponseWriter, r *http.Request) {
	var req maintenanceCostRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.updateRequest(w, r, "SetMaintenanceCost", func(ctx context.Context, id int64) (*domain.MaintenanceRequest, error) {
		return h.landlords.SetMaintenanceCost(ctx, id, req.Cost)
	})
}

func (h *LandlordHandler) updateRequest(w http.ResponseWriter, r *http.Request, op string, apply func(ctx context.Context, id int64) (*domain.MaintenanceRequest, error)) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	owned, err := h.ownsRequest(ctx, landlordID(r), id)
	if err != nil || !owned {
		h.notFoundOr(w, op, "maintenance request", err)
		return
	}
	req, err := apply(ctx, id)
	if err != nil {
		writeServiceError(w, h.logger, op, err)
		return
	}
	if req == nil {
		writeNotFound(w, "maintenance request")
		return
	}
	writeJSON(w, http.StatusOK, Ok(req))
}

// ============================================
// Dashboard and reports
// ============================================

func (h *LandlordHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.landlords.Dashboard(r.Context(), landlordID(r))
	if err != nil {
		writeServiceError(w, h.logger, "Dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(d))
}

// Report GET /api/v1/landlord/reports/{kind}?period=month|quarter|year
func (h *LandlordHandler) Report(w http.ResponseWriter, r *http.Request) {
	period, err := service.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeServiceError(w, h.logger, "Report", err)
		return
	}
	ctx := r.Context()
	owner := landlordID(r)

	var result any
	switch r.PathValue("kind") {
	case "financial":
		result, err = h.landlords.FinancialSummary(ctx, owner, period)
	case "occupancy":
		result, err = h.landlords.OccupancyRates(ctx, owner, period)
	case "maintenance":
		result, err = h.landlords.MaintenanceCosts(ctx, owner, period)
	case "rent-collection":
		result, err = h.landlords.RentCollection(ctx, owner, period)
	default:
		writeNotFound(w, "report")
		return
	}
	if err != nil {
		writeServiceError(w, h.logger, "Report", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(result))
}

// ExportFinancialReport GET /api/v1/landlord/reports/financial/export?period=
func (h *LandlordHandler) ExportFinancialReport(w http.ResponseWriter, r *http.Request) {
	period, err := service.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeServiceError(w, h.logger, "ExportFinancialReport", err)
		return
	}
	ctx := r.Context()
	owner := landlordID(r)
	summary, err := h.landlords.FinancialSummary(ctx, owner, period)
	if err != nil {
		writeServiceError(w, h.logger, "ExportFinancialReport", err)
		return
	}
	collection, err := h.landlords.RentCollection(ctx, owner, period)
	if err != nil {
		writeServiceError(w, h.logger, "ExportFinancialReport", err)
		return
	}
	data, err := GenerateFinancialReport(summary, collection)
	if err != nil {
		writeServiceError(w, h.logger, "ExportFinancialReport", err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+FinancialReportFilename(period, summary.From)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ============================================
// Notifications
// ============================================

func (h *LandlordHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.notifications.List(r.Context(), domain.RecipientLandlord, landlordID(r))
	if err != nil {
		writeServiceError(w, h.logger, "ListNotifications", err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(items))
}

func (h *LandlordHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	found, err := h.notifications.MarkRead(r.Context(), domain.RecipientLandlord, landlordID(r), id)
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

// ============================================
// helpers
// ============================================

func (h *LandlordHandler) notFoundOr(w http.ResponseWriter, op, kind string, err error) {
	if err != nil {
		writeServiceError(w, h.logger, op, err)
		return
	}
	writeNotFound(w, kind)
}

func (h *LandlordHandler) writeDeleted(w http.ResponseWriter, op, kind string, id int64) func(bool, error) {
	return func(ok bool, err error) {
		if err != nil {
			writeServiceError(w, h.logger, op, err)
			return
		}
		if !ok {
			writeNotFound(w, kind)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]int64{"id": id}))
	}
}
