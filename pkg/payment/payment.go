package payment

import "context"

// Request carries the fields of one donation attempt sent to a gateway.
// Amount must already be in canonical form (see CanonicalAmount); the hash
// is computed over exactly the strings sent to the gateway.
type Request struct {
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	Phone       string
}

// Form is a hosted-checkout hand-off: the browser form-posts Fields to
// ActionURL and the gateway takes over.
type Form struct {
	ActionURL string
	Fields    map[string]string
}

// Result is a classified gateway response for one attempt.
type Result struct {
	TxnID      string
	Status     string
	Category   Category
	GatewayRef string
}

// Provider is the common surface for payment gateways.
type Provider interface {
	InitiatePayment(ctx context.Context, req Request) (*Form, error)
	VerifyPayment(ctx context.Context, params map[string]string) (*Result, error)
}
