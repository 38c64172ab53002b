package order_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 2, 12, 30, 0, 0, time.UTC)

func money(t *testing.T, cents int64) kernel.Money {
	t.Helper()
	m, err := kernel.NewMoneyFromCents(cents)
	require.NoError(t, err)
	return m
}

func item(t *testing.T, name string, qty int, cents int64) order.Item {
	t.Helper()
	it, err := order.NewItem(kernel.NewUUID(), name, qty, money(t, cents))
	require.NoError(t, err)
	return it
}

func actor(t *testing.T, id kernel.UUID, role order.Role) order.Actor {
	t.Helper()
	a, err := order.NewActor(id, role)
	require.NoError(t, err)
	return a
}

type parties struct {
	customer, owner, rider kernel.UUID
}

func newParties() parties {
	return parties{customer: kernel.NewUUID(), owner: kernel.NewUUID(), rider: kernel.NewUUID()}
}

// restored builds an order in the given status with the given rider (nil for none).
func restored(t *testing.T, p parties, status order.Status, riderID *kernel.UUID, feeCents int64) *order.Order {
	t.Helper()
	number, err := order.NewNumber(now, 1)
	require.NoError(t, err)
	fee := money(t, feeCents)
	subtotal := money(t, 2500)
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            kernel.NewUUID(),
		Number:        number,
		CustomerID:    p.customer,
		RestaurantID:  kernel.NewUUID(),
		AddressID:     kernel.NewUUID(),
		RiderID:       riderID,
		Status:        status,
		Items:         []order.Item{item(t, "Pizza", 1, 2500)},
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		Total:         subtotal.Add(fee),
		PaymentStatus: order.PaymentPending,
		CreatedAt:     now.Add(-time.Hour),
		UpdatedAt:     now.Add(-time.Hour),
	})
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	number, err := order.NewNumber(now, 7)
	require.NoError(t, err)
	customerID, restaurantID, addressID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	t.Run("should compute subtotal and total from items", func(t *testing.T) {
		items := []order.Item{item(t, "Margherita", 2, 1250), item(t, "Cola", 1, 300)}

		o, err := order.NewOrder(kernel.NewUUID(), number, customerID, restaurantID, addressID, items, money(t, 5000), now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, int64(2800), o.Subtotal().Cents())
		assert.Equal(t, int64(5000), o.DeliveryFee().Cents())
		assert.Equal(t, int64(7800), o.Total().Cents())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		assert.Nil(t, o.RiderID())
		assert.Nil(t, o.RiderEarning())
		assert.Equal(t, "ORD-20240102-007", o.Number().String())
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should record placed event and initial status change", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), number, customerID, restaurantID, addressID,
			[]order.Item{item(t, "Soup", 1, 900)}, money(t, 5000), now)
		require.NoError(t, err)

		events := o.DomainEvents()
		require.Len(t, events, 1)
		placed, ok := events[0].(order.PlacedEvent)
		require.True(t, ok)
		assert.True(t, placed.OrderID.IsEqual(o.ID()))
		assert.Equal(t, int64(5900), placed.TotalCents)

		change := o.LastChange()
		require.NotNil(t, change)
		assert.Equal(t, order.Status(""), change.From)
		assert.Equal(t, order.Pending, change.To)
		assert.Equal(t, order.RoleCustomer, change.ActorRole)

		o.ClearDomainEvents()
		assert.Empty(t, o.DomainEvents())
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), number, customerID, restaurantID, addressID, nil, money(t, 5000), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.ErrorIs(t, err, order.ErrNoItems)
	})

	t.Run("should join validation errors", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, order.Number{}, customerID, kernel.UUID{}, addressID, nil, money(t, 0), now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "items")
	})
}

func TestNewItem(t *testing.T) {
	t.Run("should reject zero quantity", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "Pizza", 0, money(t, 100))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject blank name", func(t *testing.T) {
		_, err := order.NewItem(kernel.NewUUID(), "  ", 1, money(t, 100))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should compute line total", func(t *testing.T) {
		it := item(t, "Pizza", 3, 1250)

		assert.Equal(t, int64(3750), it.LineTotal().Cents())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should reject total that is not subtotal plus fee", func(t *testing.T) {
		number, _ := order.NewNumber(now, 1)
		_, err := order.RestoreOrder(order.Snapshot{
			ID:            kernel.NewUUID(),
			Number:        number,
			CustomerID:    kernel.NewUUID(),
			RestaurantID:  kernel.NewUUID(),
			AddressID:     kernel.NewUUID(),
			Status:        order.Ready,
			Subtotal:      money(t, 1000),
			DeliveryFee:   money(t, 500),
			Total:         money(t, 1400),
			PaymentStatus: order.PaymentPaid,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		number, _ := order.NewNumber(now, 1)
		_, err := order.RestoreOrder(order.Snapshot{
			ID:            kernel.NewUUID(),
			Number:        number,
			CustomerID:    kernel.NewUUID(),
			RestaurantID:  kernel.NewUUID(),
			AddressID:     kernel.NewUUID(),
			Status:        "lost",
			PaymentStatus: order.PaymentPending,
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status")
	})

	t.Run("should not record events", func(t *testing.T) {
		o := restored(t, newParties(), order.Ready, nil, 5000)

		assert.Empty(t, o.DomainEvents())
		assert.Nil(t, o.LastChange())
	})
}

func TestTransitionTo_RoleTable(t *testing.T) {
	expected := map[order.Role]map[order.Status][]order.Status{
		order.RoleRestaurantOwner: {
			order.Pending:   {order.Confirmed},
			order.Confirmed: {order.Preparing},
			order.Preparing: {order.Ready},
		},
		order.RoleRider: {
			order.Ready:          {order.OutForDelivery},
			order.OutForDelivery: {order.Delivered},
		},
		order.RoleCustomer: {
			order.Pending:        {order.Cancelled},
			order.Confirmed:      {order.Cancelled},
			order.Preparing:      {order.Cancelled},
			order.Ready:          {order.Cancelled},
			order.OutForDelivery: {order.Cancelled},
		},
	}

	for _, role := range []order.Role{order.RoleCustomer, order.RoleRestaurantOwner, order.RoleRider} {
		for _, from := range order.Lifecycle() {
			for _, to := range order.Lifecycle() {
				allowed := false
				for _, s := range expected[role][from] {
					allowed = allowed || s == to
				}

				t.Run(string(role)+" "+string(from)+"->"+string(to), func(t *testing.T) {
					p := newParties()
					o := restored(t, p, from, &p.rider, 5000)
					actorID := map[order.Role]kernel.UUID{
						order.RoleCustomer:        p.customer,
						order.RoleRestaurantOwner: p.owner,
						order.RoleRider:           p.rider,
					}[role]

					err := o.TransitionTo(actor(t, actorID, role), p.owner, to, "", now)

					assert.Equal(t, allowed, order.CanTransition(role, from, to))
					if allowed {
						require.NoError(t, err)
						assert.Equal(t, to, o.Status())
						return
					}
					require.Error(t, err)
					assert.ErrorIs(t, err, order.ErrInvalidTransition)
					assert.ErrorIs(t, err, errs.ErrConflict)
					assert.Equal(t, from, o.Status())
					assert.Empty(t, o.DomainEvents())
				})
			}
		}
	}
}

func TestTransitionTo_TerminalStatesAreFinal(t *testing.T) {
	for _, terminal := range []order.Status{order.Delivered, order.Cancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, role := range []order.Role{order.RoleCustomer, order.RoleRestaurantOwner, order.RoleRider} {
			assert.Empty(t, order.AllowedTransitions(role, terminal), "%s from %s", role, terminal)
		}
	}
}

func TestTransitionTo_Authorization(t *testing.T) {
	p := newParties()

	tests := []struct {
		name   string
		status order.Status
		rider  *kernel.UUID
		actor  order.Actor
		target order.Status
	}{
		{"other customer cannot cancel", order.Pending, nil, actor(t, kernel.NewUUID(), order.RoleCustomer), order.Cancelled},
		{"owner of another restaurant cannot confirm", order.Pending, nil, actor(t, kernel.NewUUID(), order.RoleRestaurantOwner), order.Confirmed},
		{"rider cannot pick up an unassigned order", order.Ready, nil, actor(t, p.rider, order.RoleRider), order.OutForDelivery},
		{"other rider cannot pick up", order.Ready, &p.rider, actor(t, kernel.NewUUID(), order.RoleRider), order.OutForDelivery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := restored(t, p, tt.status, tt.rider, 5000)

			err := o.TransitionTo(tt.actor, p.owner, tt.target, "", now)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrForbidden)
			assert.Equal(t, tt.status, o.Status())
		})
	}

	t.Run("unconstructed actor is rejected", func(t *testing.T) {
		o := restored(t, p, order.Pending, nil, 5000)

		err := o.TransitionTo(order.Actor{}, p.owner, order.Cancelled, "", now)

		assert.ErrorIs(t, err, order.ErrActorIsNotConstructed)
	})
}

func TestTransitionTo_SideEffects(t *testing.T) {
	t.Run("delivered credits the rider 80% of the fee rounded to cents", func(t *testing.T) {
		p := newParties()
		o := restored(t, p, order.OutForDelivery, &p.rider, 1234)

		err := o.TransitionTo(actor(t, p.rider, order.RoleRider), p.owner, order.Delivered, "", now)

		require.NoError(t, err)
		require.NotNil(t, o.RiderEarning())
		assert.Equal(t, int64(987), o.RiderEarning().Cents())
		require.NotNil(t, o.DeliveredAt())
		assert.Equal(t, now, *o.DeliveredAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("cancel clears earning and stores the default reason", func(t *testing.T) {
		p := newParties()
		o := restored(t, p, order.OutForDelivery, &p.rider, 5000)

		err := o.TransitionTo(actor(t, p.customer, order.RoleCustomer), p.owner, order.Cancelled, "", now)

		require.NoError(t, err)
		assert.Nil(t, o.RiderEarning())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, order.DefaultCancellationReason, o.CancellationReason())
		assert.Nil(t, o.DeliveredAt())
	})

	t.Run("cancel keeps the given reason", func(t *testing.T) {
		p := newParties()
		o := restored(t, p, order.Pending, nil, 5000)

		err := o.TransitionTo(actor(t, p.customer, order.RoleCustomer), p.owner, order.Cancelled, "changed my mind", now)

		require.NoError(t, err)
		assert.Equal(t, "changed my mind", o.CancellationReason())
	})

	t.Run("records status changed event and trail entry", func(t *testing.T) {
		p := newParties()
		o := restored(t, p, order.Preparing, nil, 5000)

		err := o.TransitionTo(actor(t, p.owner, order.RoleRestaurantOwner), p.owner, order.Ready, "", now)

		require.NoError(t, err)
		events := o.DomainEvents()
		require.Len(t, events, 1)
		changed, ok := events[0].(order.StatusChangedEvent)
		require.True(t, ok)
		assert.Equal(t, order.Preparing, changed.From)
		assert.Equal(t, order.Ready, changed.To)
		assert.Nil(t, changed.RiderID)
		assert.Equal(t, order.StatusChange{
			From: order.Preparing, To: order.Ready, ActorID: p.owner, ActorRole: order.RoleRestaurantOwner, At: now,
		}, *o.LastChange())
		assert.Equal(t, now, o.UpdatedAt())
	})
}

func TestAssignRider(t *testing.T) {
	t.Run("should attach rider to ready order", func(t *testing.T) {
		p := newParties()
		o := restored(t, p, order.Ready, nil, 5000)

		require.NoError(t, o.AssignRider(p.rider, now))

		require.NotNil(t, o.RiderID())
		assert.True(t, o.RiderID().IsEqual(p.rider))
		events := o.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, order.EventTypeRiderAssigned, events[0].EventType())
	})

	t.Run("should refuse a second rider", func(t *testing.T) {
		p := newParties()
		o := restored(t, p, order.Ready, &p.rider, 5000)

		err := o.AssignRider(kernel.NewUUID(), now)

		assert.ErrorIs(t, err, order.ErrRiderAlreadyAssigned)
		assert.True(t, o.RiderID().IsEqual(p.rider))
	})

	t.Run("should refuse orders that are not ready", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Preparing, order.OutForDelivery, order.Cancelled} {
			o := restored(t, newParties(), status, nil, 5000)

			err := o.AssignRider(kernel.NewUUID(), now)

			assert.ErrorIs(t, err, order.ErrNotReadyForAssignment, status)
			assert.ErrorIs(t, err, errs.ErrConflict, status)
		}
	})
}

func TestNumber(t *testing.T) {
	t.Run("should pad sequence to three digits", func(t *testing.T) {
		n, err := order.NewNumber(now, 7)
		require.NoError(t, err)
		assert.Equal(t, "ORD-20240102-007", n.String())
	})

	t.Run("should grow past three digits", func(t *testing.T) {
		n, err := order.NewNumber(now, 1234)
		require.NoError(t, err)
		assert.Equal(t, "ORD-20240102-1234", n.String())

		parsed, err := order.ParseNumber(n.String())
		require.NoError(t, err)
		assert.Equal(t, n, parsed)
	})

	t.Run("should reject malformed numbers", func(t *testing.T) {
		for _, s := range []string{"", "ORD-2024-001", "X-20240102-001", "ORD-20241302-001", "ORD-20240102-0a1", "ORD-20240102-01"} {
			_, err := order.ParseNumber(s)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid, s)
		}
	})

	t.Run("should reject non-positive sequence", func(t *testing.T) {
		_, err := order.NewNumber(now, 0)
		assert.Error(t, err)
	})
}

func TestDecodeEvent(t *testing.T) {
	p := newParties()
	o := restored(t, p, order.Ready, &p.rider, 5000)
	require.NoError(t, o.TransitionTo(actor(t, p.rider, order.RoleRider), p.owner, order.OutForDelivery, "", now))
	original := o.DomainEvents()[0]

	payload, err := json.Marshal(original)
	require.NoError(t, err)
	decoded, err := order.DecodeEvent(original.EventType(), payload)

	require.NoError(t, err)
	assert.Equal(t, original, decoded)

	_, err = order.DecodeEvent("order.unknown", payload)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errs.ErrConflict))
}
