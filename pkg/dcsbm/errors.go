package dcsbm

import "errors"

var (
	// ErrInvalidGroupCount is returned when the number of groups is not positive.
	ErrInvalidGroupCount = errors.New("group count must be at least 1")

	// ErrInvalidTrialCount is returned when the number of trials is not positive.
	ErrInvalidTrialCount = errors.New("trial count must be at least 1")

	// ErrPartitionLength is returned when a partition does not cover every node.
	ErrPartitionLength = errors.New("partition length does not match node count")

	// ErrGroupOutOfRange is returned when a partition entry lies outside [0, c).
	ErrGroupOutOfRange = errors.New("group index out of range")

	ErrSelfLoop       = errors.New("self-loops are not supported")
	ErrDuplicateEdge  = errors.New("duplicate edge")
	ErrNodeOutOfRange = errors.New("node index out of range")
)
