package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/glowbook/salon-api/internal/domain/booking"
	"github.com/glowbook/salon-api/internal/httperr"
	"github.com/glowbook/salon-api/internal/identity"
)

func TestListBookings_SweepsBeforeListing(t *testing.T) {
	f := newFixture(t)
	uc := NewListBookings(f.repo, f.clk)

	client := f.user(t, "client")
	staff := f.user(t, "aesthetician")
	svc := f.service(t)

	stale := f.booking(t, client, staff, svc, "2026-03-01", "10:00", "pending")
	fresh := f.booking(t, client, staff, svc, "2026-03-09", "10:00", "pending")

	got, err := uc.Execute(context.Background(), actorFor(client), domain.ListFilters{})
	require.NoError(t, err)
	require.Len(t, got, 2)

	byID := map[uint]string{}
	for _, b := range got {
		byID[b.ID] = b.Status
	}
	assert.Equal(t, "expired", byID[stale.ID])
	assert.Equal(t, "pending", byID[fresh.ID])
}

func TestListBookings_AdminSeesAllWithFilters(t *testing.T) {
	f := newFixture(t)
	uc := NewListBookings(f.repo, f.clk)

	clientA := f.user(t, "client")
	clientB := f.user(t, "client")
	staff := f.user(t, "aesthetician")
	admin := f.user(t, "admin")
	svc := f.service(t)

	f.booking(t, clientA, staff, svc, "2026-03-10", "10:00", "pending")
	f.booking(t, clientB, staff, svc, "2026-03-11", "10:00", "approved")

	all, err := uc.Execute(context.Background(), actorFor(admin), domain.ListFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := uc.Execute(context.Background(), actorFor(admin), domain.ListFilters{Status: "approved"})
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, clientB.ID, approved[0].ClientID)
}

func TestListBookings_AestheticianScopedAndFiltersIgnored(t *testing.T) {
	f := newFixture(t)
	uc := NewListBookings(f.repo, f.clk)

	client := f.user(t, "client")
	mine := f.user(t, "aesthetician")
	other := f.user(t, "aesthetician")
	svc := f.service(t)

	f.booking(t, client, mine, svc, "2026-03-10", "10:00", "pending")
	f.booking(t, client, other, svc, "2026-03-10", "11:00", "pending")

	// filters pointing at the other aesthetician change nothing
	got, err := uc.Execute(context.Background(), actorFor(mine), domain.ListFilters{
		AestheticianID: &other.ID,
		Status:         "approved",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, mine.ID, *got[0].AestheticianID)
}

func TestListBookings_ClientSeesOwnOnly(t *testing.T) {
	f := newFixture(t)
	uc := NewListBookings(f.repo, f.clk)

	me := f.user(t, "client")
	other := f.user(t, "client")
	staff := f.user(t, "aesthetician")
	svc := f.service(t)

	f.booking(t, me, staff, svc, "2026-03-10", "10:00", "pending")
	f.booking(t, other, staff, svc, "2026-03-10", "11:00", "approved")

	got, err := uc.Execute(context.Background(), actorFor(me), domain.ListFilters{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, me.ID, got[0].ClientID)
}

func TestListBookings_ClientAvailabilityMode(t *testing.T) {
	f := newFixture(t)
	uc := NewListBookings(f.repo, f.clk)

	me := f.user(t, "client")
	other := f.user(t, "client")
	staff := f.user(t, "aesthetician")
	svc := f.service(t)

	f.booking(t, other, staff, svc, "2026-03-10", "10:00", "approved")
	f.booking(t, other, staff, svc, "2026-03-11", "10:00", "pending")
	f.booking(t, me, staff, svc, "2026-03-12", "10:00", "pending")

	// all three of aesthetician + range present: confirmed slots, not my own
	got, err := uc.Execute(context.Background(), actorFor(me), domain.ListFilters{
		AestheticianID: &staff.ID,
		DateFrom:       "2026-03-09",
		DateTo:         "2026-03-15",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "approved", got[0].Status)
	assert.Equal(t, other.ID, got[0].ClientID)

	// any leg missing: back to the identity-scoped list
	got, err = uc.Execute(context.Background(), actorFor(me), domain.ListFilters{
		AestheticianID: &staff.ID,
		DateFrom:       "2026-03-09",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, me.ID, got[0].ClientID)
}

func TestListBookings_UnknownRole(t *testing.T) {
	f := newFixture(t)
	uc := NewListBookings(f.repo, f.clk)

	_, err := uc.Execute(context.Background(), identity.Actor{ID: 1, Role: "ghost"}, domain.ListFilters{})
	require.Error(t, err)
	assert.Equal(t, "unknown_role", httperr.BusinessCode(err))
}
