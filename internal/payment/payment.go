package payment

import "context"

// IntentRequest asks the provider for a payment intent of an exact amount in
// minor currency units.
type IntentRequest struct {
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

// Intent is the provider's handle for a pending payment. The client secret is
// the opaque token used to complete confirmation.
type Intent struct {
	ID           string
	ClientSecret string
}

// BillingDetails accompany the confirmation step.
type BillingDetails struct {
	Name       string
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Confirmation is whatever artifact the provider returns on success.
type Confirmation struct {
	IntentID string
	Status   string
}

// Provider is the payment collaborator boundary. Implementations must not be
// trusted with client-computed totals; callers pass server-computed amounts.
type Provider interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	ConfirmIntent(ctx context.Context, clientSecret string, billing BillingDetails) (*Confirmation, error)
}
