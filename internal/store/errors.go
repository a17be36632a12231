package store

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("already exists")
	ErrMissingItemID = errors.New("sheet must contain an 'Item ID' column")
)
