package core

import "errors"

var (
	ErrNotFound            = errors.New("record not found")
	ErrReferenceNotFound   = errors.New("referenced record does not exist")
	ErrInUse               = errors.New("record is still referenced")
	ErrDuplicate           = errors.New("record already exists")
	ErrUnknownSalaryFactor = errors.New("salary factor is not configured")
)
