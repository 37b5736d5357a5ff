package repository

import "errors"

// Business-rule and not-found errors shared across repositories. Handlers
// translate these into response codes; anything else is treated as a store
// failure.
var (
	ErrProjectNotFound = errors.New("project not found")
	ErrStatusNotFound  = errors.New("status not found")
	ErrCardNotFound    = errors.New("card not found")
	ErrTagNotFound     = errors.New("tag not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrMemberNotFound  = errors.New("member not found")

	// ErrLastStatus guards the invariant that a project always keeps at
	// least one status.
	ErrLastStatus = errors.New("cannot delete the last status of a project")

	// ErrIncompleteOrder is returned when a reorder list is not an exact
	// permutation of the container's current ids.
	ErrIncompleteOrder = errors.New("order list must contain every item of the container exactly once")

	ErrMemberExists     = errors.New("user is already a member of this project")
	ErrStatusExists     = errors.New("status with this name already exists in the project")
	ErrTagExists        = errors.New("tag with this name already exists in the project")
	ErrTagAlreadyOnCard = errors.New("tag is already attached to this card")
	ErrTagNotOnCard     = errors.New("tag is not attached to this card")

	// ErrUnknownAction marks a programming error: an activity was recorded
	// with an action outside the closed enumeration.
	ErrUnknownAction = errors.New("unknown activity action")
)
