// Package address holds the ownership view of a delivery address.
package address

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// Address is a delivery address owned by one user. Its content is managed elsewhere.
type Address struct {
	id     kernel.UUID
	userID kernel.UUID
}

func RestoreAddress(id, userID kernel.UUID) (*Address, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	return &Address{id: id, userID: userID}, nil
}

func (a *Address) ID() kernel.UUID     { return a.id }
func (a *Address) UserID() kernel.UUID { return a.userID }

// EnsureOwnedBy returns a ForbiddenError unless userID owns the address.
func (a *Address) EnsureOwnedBy(userID kernel.UUID) error {
	if a.userID.IsEqual(userID) {
		return nil
	}
	return errs.NewForbiddenError(fmt.Sprintf("address %s does not belong to user %s", a.id, userID))
}
