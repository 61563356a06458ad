package constants

// User role
const (
	RoleGuest = 0
	RoleAdmin = 1
)

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// Booking status
const (
	BookingStatusPending   = 0
	BookingStatusConfirmed = 1
	BookingStatusCancelled = 2
)

// Payment status
const (
	PaymentStatusPending   = 0
	PaymentStatusPaid      = 1
	PaymentStatusCancelled = 2
	PaymentStatusExpired   = 3
	PaymentStatusFailed    = 4
)

// Payment kind
const (
	PaymentKindPayment = 0
	PaymentKindFine    = 1
)
