package dto

// CheckoutRequest starts a Stripe Checkout session. yearly_pix is a
// one-time payment, the others are recurring subscriptions.
type CheckoutRequest struct {
	Plan string `json:"plan" binding:"required,oneof=monthly yearly_card yearly_pix"`
}

// CheckoutResponse carries the hosted checkout URL.
type CheckoutResponse struct {
	URL string `json:"url"`
}

// PortalResponse carries the hosted billing portal URL.
type PortalResponse struct {
	URL string `json:"url"`
}
