package payment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeClient implements Provider on the Stripe API. It is constructed
// explicitly and injected, so tests substitute a double.
type StripeClient struct {
	api    *client.API
	logger *log.Logger
}

func NewStripeClient(secretKey string, logger *log.Logger) *StripeClient {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeClient{api: api, logger: logger}
}

func (c *StripeClient) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		c.logger.Printf("stripe: create intent amount=%d error=%v", req.AmountMinor, err)
		return nil, providerError(err)
	}
	c.logger.Printf("stripe: created intent id=%s amount=%d", pi.ID, req.AmountMinor)
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (c *StripeClient) ConfirmIntent(ctx context.Context, clientSecret string, billing BillingDetails) (*Confirmation, error) {
	id, err := intentID(clientSecret)
	if err != nil {
		return nil, err
	}

	params := &stripe.PaymentIntentConfirmParams{
		Params: stripe.Params{Context: ctx},
		Shipping: &stripe.ShippingDetailsParams{
			Name: stripe.String(billing.Name),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(billing.Line1),
				City:       stripe.String(billing.City),
				State:      stripe.String(billing.State),
				PostalCode: stripe.String(billing.PostalCode),
				Country:    stripe.String(billing.Country),
			},
		},
	}

	pi, err := c.api.PaymentIntents.Confirm(id, params)
	if err != nil {
		c.logger.Printf("stripe: confirm intent id=%s error=%v", id, err)
		return nil, providerError(err)
	}
	c.logger.Printf("stripe: confirmed intent id=%s status=%s", pi.ID, pi.Status)
	return &Confirmation{IntentID: pi.ID, Status: string(pi.Status)}, nil
}

// intentID extracts the payment intent id from a client secret of the form
// "pi_xxx_secret_yyy".
func intentID(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}

// providerError flattens Stripe error bodies to the user-visible message.
func providerError(err error) error {
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		if sErr.Code != "" {
			return errors.New(string(sErr.Code))
		}
		if sErr.Msg != "" {
			return errors.New(sErr.Msg)
		}
	}
	return err
}
