// Package authz holds the ownership check shared by every mutating feature.
package authz

import "errors"

// ErrForbidden is returned when the caller does not own the resource.
var ErrForbidden = errors.New("forbidden")

// RequireOwnership fails with ErrForbidden unless callerID owns the resource.
func RequireOwnership(resourceOwnerID, callerID uint) error {
	if resourceOwnerID != callerID {
		return ErrForbidden
	}
	return nil
}
