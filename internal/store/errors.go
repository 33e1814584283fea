package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when a user with the same email
	// already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrMembershipNotFound is returned when no membership matches the lookup.
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrMembershipAlreadyExists is returned when the user already owns
	// a membership record.
	ErrMembershipAlreadyExists = errors.New("membership already exists for user")

	// ErrMembershipIDTaken is returned when an allocated membership
	// identifier collides with an existing one.
	ErrMembershipIDTaken = errors.New("membership identifier already taken")

	// ErrPlanNotFound is returned when no plan matches the lookup.
	ErrPlanNotFound = errors.New("plan not found")

	// ErrDestinationNotFound is returned when a destination is absent or
	// a referenced destination id does not exist.
	ErrDestinationNotFound = errors.New("destination not found")

	// ErrBrochureNotFound is returned when no brochure matches the id.
	ErrBrochureNotFound = errors.New("brochure not found")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery     = errors.New("error building sql query")
	ErrExecutingQuery       = errors.New("error executing sql query")
	ErrBeginningTransaction = errors.New("failed to begin transaction")
	ErrCommitingTransaction = errors.New("failed to commit transaction")
	ErrExecutingStatement   = errors.New("failed to execute statement")
	ErrScanningRow          = errors.New("failed to scan row")
	ErrScanningRows         = errors.New("failed to scan rows")
)
