package domain

import "errors"

var (
	ErrEmptyPrompt      = errors.New("empty prompt")
	ErrNoImageSelected  = errors.New("no image selected")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrBatchBusy        = errors.New("batch already running")
	ErrAllItemsFailed   = errors.New("all batch items failed")
	ErrProviderFailure  = errors.New("provider failure")
	ErrUnknownPreset    = errors.New("unknown preset")
)
