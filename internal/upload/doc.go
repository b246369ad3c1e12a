// Package upload models the state of a background upload task as seen by
// observers of its lifecycle.
//
// Info is an immutable snapshot handed to every lifecycle callback; derived
// values such as progress percentage, elapsed time, and transfer rate are
// computed on demand so observers never disagree about them. The package also
// owns the failure classification shared between the upload engine and its
// observers: a user-initiated cancellation is reported with ErrUserCancelled
// and every other failure is opaque.
package upload
