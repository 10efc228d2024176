package repository

import "errors"

var (
	ErrInvalidRefreshStateData = errors.New("invalid refresh state data")
	ErrInvalidSinkKey          = errors.New("invalid sink key")
)
