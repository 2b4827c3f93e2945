package repositories

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrOptionNotFound  = errors.New("option does not belong to poll")
	ErrDuplicateOption = errors.New("option text already used in poll")
	// ErrStatusConflict means the poll was not in the status the write expected.
	ErrStatusConflict = errors.New("poll status changed concurrently")
	ErrPollNotOpen    = errors.New("poll is not open")
	ErrMarkerExists   = errors.New("voter marker already exists")
	ErrMarkerMissing  = errors.New("voter marker does not exist")
	ErrCreationLimit  = errors.New("creation limit reached")
)
