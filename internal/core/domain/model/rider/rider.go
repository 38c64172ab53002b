package rider

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when a rider has no display name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via RestoreRider constructor")
)

// Rider is the dispatch view of a delivery rider. Rider profiles are managed
// outside of the order core; only activity matters for assignment.
type Rider struct {
	id       kernel.UUID
	name     string
	isActive bool
	guard    guard.ConstructorGuard
}

// RestoreRider reconstructs a rider from storage.
func RestoreRider(id kernel.UUID, name string, isActive bool) (*Rider, error) {
	r := &Rider{isActive: isActive, guard: guard.NewConstructorGuard()}
	if err := errors.Join(r.setID(id), r.setName(name)); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate ensures the rider was properly constructed.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

func (r *Rider) ID() kernel.UUID {
	return r.id
}

func (r *Rider) Name() string {
	return r.name
}

func (r *Rider) IsActive() bool {
	return r.isActive
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}
