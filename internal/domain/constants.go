package domain

const (
	RoleAdmin = "ADMIN"
)

// Donation lifecycle. An abandoned gateway redirect never returns to a
// callback endpoint, so a donation may stay PENDING indefinitely.
const (
	DonationStatusPending   = "PENDING"
	DonationStatusCompleted = "COMPLETED"
	DonationStatusFailed    = "FAILED"
	DonationStatusCancelled = "CANCELLED"
)

const (
	PaymentMethodPayU = "payu"
	PaymentMethodUPI  = "upi"
)

const CurrencyINR = "INR"
