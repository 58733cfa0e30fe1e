package store

import "errors"

var (
	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("store: nil parameter")

	// ErrEmptyTag indicates the contract tag is empty.
	ErrEmptyTag = errors.New("store: empty contract tag")

	// ErrSnapshotNotFound indicates no snapshot is stored under the tag.
	ErrSnapshotNotFound = errors.New("store: snapshot not found")
)
