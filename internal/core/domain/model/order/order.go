package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// RiderEarningBasisPoints is the rider's share of the delivery fee (80%).
const RiderEarningBasisPoints int64 = 8000

// DefaultCancellationReason is stored when a customer cancels without giving a reason.
const DefaultCancellationReason = "cancelled by customer"

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
	// ErrNoItems is returned when an order would be created from an empty cart.
	ErrNoItems = errs.NewValueIsRequiredError("items")
	// ErrRiderAlreadyAssigned is returned by AssignRider when a rider is already attached.
	ErrRiderAlreadyAssigned = errs.NewConflictError("order already has a rider")
	// ErrNotReadyForAssignment is returned by AssignRider outside of the ready status.
	ErrNotReadyForAssignment = errs.NewConflictError("order is not ready for rider assignment")
)

// StatusChange is one entry of the append-only status trail of an order.
// The first entry of every order has an empty From and To == Pending.
type StatusChange struct {
	From      Status
	To        Status
	ActorID   kernel.UUID
	ActorRole Role
	Reason    string
	At        time.Time
}

// Order is the aggregate root of the order lifecycle. It owns its items, the
// money invariants and the state machine; every mutation goes through a
// method that validates the move and records a domain event.
//
// Order follows these invariants:
//   - total = subtotal + delivery fee, subtotal = Σ quantity × price
//   - rider earning is set only when delivered with a rider, cleared on cancel
//   - status changes only along the role transition table
//   - a rider is attached only while ready and only once
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id           kernel.UUID
	number       Number
	customerID   kernel.UUID
	restaurantID kernel.UUID
	addressID    kernel.UUID
	riderID      *kernel.UUID

	status        Status
	items         []Item
	subtotal      kernel.Money
	deliveryFee   kernel.Money
	total         kernel.Money
	paymentStatus PaymentStatus
	riderEarning  *kernel.Money

	deliveredAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason string
	createdAt          time.Time
	updatedAt          time.Time

	// lastChange is the status change made since load, persisted by the repository.
	lastChange *StatusChange
	events     []kernel.DomainEvent
	guard      guard.ConstructorGuard
}

// NewOrder creates a pending order from snapshot items. Subtotal and total
// are computed here and never accepted from the caller.
//
// Example:
//
//	number, _ := order.NewNumber(now, 7) // ORD-20240102-007
//	o, err := order.NewOrder(kernel.NewUUID(), number, customerID, restaurantID, addressID, items, fee, now)
//
// The new order records a PlacedEvent and the initial status change.
func NewOrder(
	id kernel.UUID,
	number Number,
	customerID, restaurantID, addressID kernel.UUID,
	items []Item,
	deliveryFee kernel.Money,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		deliveryFee:   deliveryFee,
		paymentStatus: PaymentPending,
		createdAt:     now,
		updatedAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(customerID, restaurantID, addressID),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.total = o.subtotal.Add(o.deliveryFee)
	o.lastChange = &StatusChange{To: Pending, ActorID: customerID, ActorRole: RoleCustomer, At: now}
	o.record(PlacedEvent{
		ID:           kernel.NewUUID(),
		OrderID:      o.id,
		OrderNumber:  o.number.String(),
		CustomerID:   o.customerID,
		RestaurantID: o.restaurantID,
		TotalCents:   o.total.Cents(),
		At:           now,
	})
	return o, nil
}

// Snapshot carries the persisted state of an order into RestoreOrder.
type Snapshot struct {
	ID                 kernel.UUID
	Number             Number
	CustomerID         kernel.UUID
	RestaurantID       kernel.UUID
	AddressID          kernel.UUID
	RiderID            *kernel.UUID
	Status             Status
	Items              []Item
	Subtotal           kernel.Money
	DeliveryFee        kernel.Money
	Total              kernel.Money
	PaymentStatus      PaymentStatus
	RiderEarning       *kernel.Money
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RestoreOrder reconstructs an order loaded from storage. Stored money values
// are checked against the total = subtotal + fee invariant but not recomputed
// from items, because item prices are snapshots.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		riderID:            s.RiderID,
		items:              append([]Item(nil), s.Items...),
		subtotal:           s.Subtotal,
		deliveryFee:        s.DeliveryFee,
		total:              s.Total,
		riderEarning:       s.RiderEarning,
		deliveredAt:        s.DeliveredAt,
		cancelledAt:        s.CancelledAt,
		cancellationReason: s.CancellationReason,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setParties(s.CustomerID, s.RestaurantID, s.AddressID),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if s.Subtotal.Add(s.DeliveryFee) != s.Total {
		return nil, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s is not %s + %s", s.Total, s.Subtotal, s.DeliveryFee))
	}
	o.status = s.Status
	o.paymentStatus = s.PaymentStatus
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Number() Number               { return o.number }
func (o *Order) CustomerID() kernel.UUID      { return o.customerID }
func (o *Order) RestaurantID() kernel.UUID    { return o.restaurantID }
func (o *Order) AddressID() kernel.UUID       { return o.addressID }
func (o *Order) RiderID() *kernel.UUID        { return o.riderID }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Items() []Item                { return append([]Item(nil), o.items...) }
func (o *Order) Subtotal() kernel.Money       { return o.subtotal }
func (o *Order) DeliveryFee() kernel.Money    { return o.deliveryFee }
func (o *Order) Total() kernel.Money          { return o.total }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) RiderEarning() *kernel.Money  { return o.riderEarning }
func (o *Order) DeliveredAt() *time.Time      { return o.deliveredAt }
func (o *Order) CancelledAt() *time.Time      { return o.cancelledAt }
func (o *Order) CancellationReason() string   { return o.cancellationReason }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }
func (o *Order) LastChange() *StatusChange    { return o.lastChange }
func (o *Order) HasRider() bool               { return o.riderID != nil }
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), o.events...)
}

// ClearDomainEvents drops recorded events once they were written to the outbox.
func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// Authorize checks that actor is a party of this order in the role it claims:
// the ordering customer, the owner of the restaurant or the assigned rider.
// restaurantOwnerID is the owner of o.RestaurantID(), resolved by the caller.
func (o *Order) Authorize(actor Actor, restaurantOwnerID kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	switch actor.Role() {
	case RoleCustomer:
		if o.customerID.IsEqual(actor.ID()) {
			return nil
		}
	case RoleRestaurantOwner:
		if restaurantOwnerID.IsEqual(actor.ID()) {
			return nil
		}
	case RoleRider:
		if o.riderID != nil && o.riderID.IsEqual(actor.ID()) {
			return nil
		}
	}
	return errs.NewForbiddenError(fmt.Sprintf("%s %s is not a party of order %s", actor.Role(), actor.ID(), o.id))
}

// TransitionTo moves the order to target on behalf of actor.
//
// Errors:
//   - ForbiddenError if actor is not a party of the order in its role
//   - ValueIsInvalidError if target is not a known status
//   - ErrInvalidTransition (a ConflictError) if the role table has no such edge
//
// Side effects: delivered sets deliveredAt and the rider earning
// (fee × 80%, rounded to cents); cancelled sets cancelledAt and the reason
// and clears the rider earning.
func (o *Order) TransitionTo(actor Actor, restaurantOwnerID kernel.UUID, target Status, reason string, now time.Time) error {
	if err := o.Authorize(actor, restaurantOwnerID); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}
	from := o.status
	if !CanTransition(actor.Role(), from, target) {
		return fmt.Errorf("%w: %s cannot move order from %s to %s", ErrInvalidTransition, actor.Role(), from, target)
	}

	switch target {
	case Delivered:
		o.deliveredAt = &now
		if o.riderID != nil {
			earning, err := o.deliveryFee.Share(RiderEarningBasisPoints)
			if err != nil {
				return err
			}
			o.riderEarning = &earning
		}
	case Cancelled:
		if reason == "" {
			reason = DefaultCancellationReason
		}
		o.cancelledAt = &now
		o.cancellationReason = reason
		o.riderEarning = nil
	}

	o.status = target
	o.updatedAt = now
	o.lastChange = &StatusChange{
		From:      from,
		To:        target,
		ActorID:   actor.ID(),
		ActorRole: actor.Role(),
		Reason:    reason,
		At:        now,
	}
	o.record(StatusChangedEvent{
		ID:           kernel.NewUUID(),
		OrderID:      o.id,
		OrderNumber:  o.number.String(),
		CustomerID:   o.customerID,
		RestaurantID: o.restaurantID,
		RiderID:      o.riderID,
		From:         from,
		To:           target,
		ActorID:      actor.ID(),
		ActorRole:    actor.Role(),
		Reason:       reason,
		At:           now,
	})
	return nil
}

// AssignRider attaches riderID to a ready order that has no rider yet.
func (o *Order) AssignRider(riderID kernel.UUID, now time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.riderID != nil {
		return ErrRiderAlreadyAssigned
	}
	if o.status != Ready {
		return fmt.Errorf("%w: status is %s", ErrNotReadyForAssignment, o.status)
	}

	o.riderID = &riderID
	o.updatedAt = now
	o.record(RiderAssignedEvent{
		ID:           kernel.NewUUID(),
		OrderID:      o.id,
		OrderNumber:  o.number.String(),
		CustomerID:   o.customerID,
		RestaurantID: o.restaurantID,
		RiderID:      riderID,
		At:           now,
	})
	return nil
}

func (o *Order) record(e kernel.DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number Number) error {
	if number.IsZero() {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

func (o *Order) setParties(customerID, restaurantID, addressID kernel.UUID) error {
	if err := errors.Join(customerID.Validate(), restaurantID.Validate(), addressID.Validate()); err != nil {
		return err
	}
	o.customerID = customerID
	o.restaurantID = restaurantID
	o.addressID = addressID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	subtotal := kernel.ZeroMoney()
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
	}
	o.items = append([]Item(nil), items...)
	o.subtotal = subtotal
	return nil
}
