package payment

import "context"

// PixRequest describes one PIX charge to create with the provider
type PixRequest struct {
	Amount            float64
	Description       string
	ExternalReference string
	BuyerName         string
	BuyerEmail        string
}

// PixPayment is the artifact returned by the provider for a created
// charge. QRCode is a base64-encoded image; QRCodeCopy is the
// copy-and-paste PIX code. Either may be empty if the provider omits it.
type PixPayment struct {
	ID         string
	QRCode     string
	QRCodeCopy string
}

// Info is the provider-side view of an existing payment, used to
// resolve webhook events back to a transaction.
type Info struct {
	ID                string
	Status            string
	ExternalReference string
}

// Provider statuses we care about
const (
	StatusApproved = "approved"
)

// Provider represents a PIX payment provider. Failures surface as
// errors and are never retried here; a checkout whose payment creation
// failed stays reserved until the sweeper reclaims it.
type Provider interface {
	CreatePixPayment(ctx context.Context, req PixRequest) (*PixPayment, error)
	GetPayment(ctx context.Context, id string) (*Info, error)
}
