package policycontent

import "errors"

// Error types
var (
	// ErrContentNotFound indicates a content item was not found
	ErrContentNotFound = errors.New("content item not found")

	// ErrWorkshopNotFound indicates a workshop was not found
	ErrWorkshopNotFound = errors.New("workshop not found")

	// ErrCollaborationNotFound indicates a collaboration submission was not found
	ErrCollaborationNotFound = errors.New("collaboration submission not found")

	// ErrInvalidContentType indicates an unknown content type discriminant
	ErrInvalidContentType = errors.New("invalid content type")

	// ErrInvalidStatus indicates an invalid lifecycle status value
	ErrInvalidStatus = errors.New("invalid status")

	// ErrValidationFailed indicates local validation rejected the input
	ErrValidationFailed = errors.New("validation failed")

	// ErrConflictingImageState indicates both an image file and a retained
	// image URL were supplied for the same request
	ErrConflictingImageState = errors.New("conflicting image state: both file and url set")

	// ErrAnalyticsUnavailable indicates the server analytics call failed and
	// no summary can be presented
	ErrAnalyticsUnavailable = errors.New("analytics unavailable")
)
