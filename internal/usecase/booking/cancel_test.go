package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/models"
)

func TestCancelBooking_OwnerCancelsPending(t *testing.T) {
	f := newFixture(t)
	uc := NewCancelBooking(f.repo, f.audit)

	client := f.user(t, "client")
	staff := f.user(t, "aesthetician")
	svc := f.service(t)
	b := f.booking(t, client, staff, svc, "2026-03-10", "10:00", "pending")

	got, err := uc.Execute(context.Background(), actorFor(client), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", got.Status)
}

func TestCancelBooking_NotFound(t *testing.T) {
	f := newFixture(t)
	uc := NewCancelBooking(f.repo, f.audit)

	client := f.user(t, "client")

	_, err := uc.Execute(context.Background(), actorFor(client), 999)
	require.Error(t, err)
	assert.Equal(t, "booking_not_found", httperr.BusinessCode(err))
}

func TestCancelBooking_OnlyTheOwner(t *testing.T) {
	f := newFixture(t)
	uc := NewCancelBooking(f.repo, f.audit)

	owner := f.user(t, "client")
	other := f.user(t, "client")
	staff := f.user(t, "aesthetician")
	admin := f.user(t, "admin")
	svc := f.service(t)
	b := f.booking(t, owner, staff, svc, "2026-03-10", "10:00", "pending")

	// a different client, the assigned staff, even an admin: all refused
	for _, u := range []*models.User{other, staff, admin} {
		_, err := uc.Execute(context.Background(), actorFor(u), b.ID)
		require.Error(t, err, "role %q", u.Role)
		assert.Equal(t, "cannot_cancel_booking", httperr.BusinessCode(err), "role %q", u.Role)
	}
}

func TestCancelBooking_OnlyPending(t *testing.T) {
	f := newFixture(t)
	uc := NewCancelBooking(f.repo, f.audit)

	client := f.user(t, "client")
	staff := f.user(t, "aesthetician")
	svc := f.service(t)

	at := []string{"08:00", "09:00", "10:00", "11:00", "12:00"}
	for i, status := range []string{"approved", "rejected", "cancelled", "completed", "expired"} {
		b := f.booking(t, client, staff, svc, "2026-03-10", at[i], status)

		_, err := uc.Execute(context.Background(), actorFor(client), b.ID)
		require.Error(t, err, "status %q", status)
		assert.Equal(t, "only_pending_cancellable", httperr.BusinessCode(err), "status %q", status)
	}
}
