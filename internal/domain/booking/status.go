package booking

import "github.com/glowbook/salon-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected,
		StatusCancelled, StatusCompleted, StatusExpired:
		return Status(s), true
	}
	return "", false
}

// IsTerminal reports whether no further transition is permitted.
func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// LiveStatuses are the states that block a client from re-booking the same
// slot. Everything outside cancelled/rejected/expired holds the slot.
func LiveStatuses() []string {
	return []string{
		string(StatusPending),
		string(StatusApproved),
		string(StatusCompleted),
	}
}

// ConfirmedStatuses are the states in which an aesthetician is considered
// booked for a slot.
func ConfirmedStatuses() []string {
	return []string{
		string(StatusApproved),
		string(StatusCompleted),
	}
}

// ===============================
// Transition rules
// ===============================
//
// pending  → approved | rejected        (staff/admin)
// pending  → cancelled                  (owning client, separate operation)
// pending  → expired                    (sweeper only, never by request)
// approved → completed | cancelled      (cancellation is a staff override)
// completed / expired / cancelled → nothing

func ValidateTransition(current, next Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness("booking_locked")
	}

	if current == StatusPending {
		if next == StatusCompleted {
			return httperr.ErrBusiness("must_be_approved_first")
		}
		if next == StatusExpired {
			return httperr.ErrBusiness("expired_is_automatic")
		}
		return nil
	}

	if current == StatusApproved {
		switch next {
		case StatusCompleted, StatusCancelled:
			return nil
		case StatusExpired:
			return httperr.ErrBusiness("expired_is_automatic")
		default:
			return httperr.ErrBusiness("approved_only_complete_or_cancel")
		}
	}

	// rejected is terminal for all practical purposes: the original flow
	// never revives one, so any write is refused the same way.
	return httperr.ErrBusiness("booking_locked")
}
