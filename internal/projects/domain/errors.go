package domain

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidStatus   = errors.New("invalid project status")
	ErrInvalidFlowType = errors.New("invalid flow type")
	ErrInvalidPersona  = errors.New("invalid persona")
	ErrCommentRequired = errors.New("rejection requires a comment")
	ErrNotPermitted    = errors.New("persona may not act on this status")
	ErrAlreadyApproved = errors.New("project is already approved")
)
