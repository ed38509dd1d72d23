package httpapi

import (
	"net/http"
	"strings"

	"digiplot/internal/service"

	"go.uber.org/zap"
)

// PaymentCallbackHandler receives the gateway's asynchronous result for an
// STK push. It is an open route: the gateway carries no session.
type PaymentCallbackHandler struct {
	payments service.PaymentService
	logger   *zap.Logger
}

func NewPaymentCallbackHandler(payments service.PaymentService, logger *zap.Logger) *PaymentCallbackHandler {
	return &PaymentCallbackHandler{payments: payments, logger: logger}
}

type paymentCallbackRequest struct {
	TransactionReference string `json:"transaction_reference"`
	ResultCode           string `json:"result_code"` // "0" = success
	ResultDesc           string `json:"result_desc"`
}

// Callback POST /api/v1/payments/callback
func (h *PaymentCallbackHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req paymentCallbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	ref := strings.TrimSpace(req.TransactionReference)
	if ref == "" {
		writeJSON(w, http.StatusOK, Fail("transaction_reference is required"))
		return
	}
	success := strings.TrimSpace(req.ResultCode) == "0"
	h.logger.Info("Payment callback",
		zap.String("reference", ref),
		zap.String("result_code", req.ResultCode),
		zap.String("result_desc", req.ResultDesc),
	)
	p, err := h.payments.ConfirmByReference(r.Context(), ref, success)
	if err != nil {
		writeServiceError(w, h.logger, "PaymentCallback", err)
		return
	}
	if p == nil {
		writeNotFound(w, "payment")
		return
	}
	writeJSON(w, http.StatusOK, Ok(p))
}
