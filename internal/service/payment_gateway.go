package service

import (
	"context"
	"fmt"
	"time"

	"digiplot/internal/domain"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// PaymentGateway starts collection of a freshly recorded payment. The
// outcome arrives later through PaymentService.ConfirmByReference.
type PaymentGateway interface {
	Initiate(ctx context.Context, p *domain.Payment) error
}

// NoopGateway accepts every payment and never calls back.
type NoopGateway struct{}

func (NoopGateway) Initiate(context.Context, *domain.Payment) error { return nil }

// STKPushRequest is posted to the gateway for M-Pesa payments.
type STKPushRequest struct {
	PhoneNumber      string `json:"phone_number"`
	Amount           int64  `json:"amount"`
	AccountReference string `json:"account_reference"`
	Description      string `json:"description"`
	CallbackURL      string `json:"callback_url,omitempty"`
}

// STKPushResponse is the gateway acknowledgement. ResponseCode "0" means accepted.
type STKPushResponse struct {
	ResponseCode        string `json:"response_code"`
	ResponseDescription string `json:"response_description"`
	CheckoutRequestID   string `json:"checkout_request_id"`
}

// HTTPGateway sends STK push requests to an M-Pesa style gateway.
type HTTPGateway struct {
	httpClient  *resty.Client
	callbackURL string
	logger      *zap.Logger
}

func NewHTTPGateway(baseURL, callbackURL string, logger *zap.Logger) *HTTPGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &HTTPGateway{httpClient: client, callbackURL: callbackURL, logger: logger}
}

// Initiate only talks to the gateway for M-Pesa payments with a phone number.
func (g *HTTPGateway) Initiate(ctx context.Context, p *domain.Payment) error {
	if p.PaymentMethod != domain.PaymentMethodMpesa || p.PhoneNumber == "" {
		return nil
	}

	request := STKPushRequest{
		PhoneNumber:      p.PhoneNumber,
		Amount:           p.Amount,
		AccountReference: p.TransactionReference,
		Description:      fmt.Sprintf("Rent payment %d", p.ID),
		CallbackURL:      g.callbackURL,
	}

	var response STKPushResponse
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post("/stkpush")
	if err != nil {
		g.logger.Error("STK push call failed",
			zap.String("transaction_reference", p.TransactionReference),
			zap.Error(err),
		)
		return fmt.Errorf("failed to call payment gateway: %w", err)
	}
	if resp.IsError() {
		g.logger.Error("STK push rejected",
			zap.String("transaction_reference", p.TransactionReference),
			zap.Int("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("payment gateway returned HTTP %d", resp.StatusCode())
	}
	if response.ResponseCode != "0" {
		g.logger.Error("STK push returned error",
			zap.String("transaction_reference", p.TransactionReference),
			zap.String("response_code", response.ResponseCode),
			zap.String("response_description", response.ResponseDescription),
		)
		return fmt.Errorf("payment gateway error: %s (code: %s)", response.ResponseDescription, response.ResponseCode)
	}

	g.logger.Info("STK push accepted",
		zap.String("transaction_reference", p.TransactionReference),
		zap.String("checkout_request_id", response.CheckoutRequestID),
	)
	return nil
}
