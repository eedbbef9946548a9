package contract

import "errors"

var (
	ErrConfigNotFound     = errors.New("configuration file not found")
	ErrConfigParse        = errors.New("configuration is not valid json")
	ErrConfigShape        = errors.New("configuration shape is invalid")
	ErrUnknownModelTier   = errors.New("unknown model tier")
	ErrNotInitialized     = errors.New("configuration not initialized")
	ErrNotImplemented     = errors.New("not implemented")
	ErrClientConstruction = errors.New("chat client construction failed")
	ErrUpstream           = errors.New("upstream call failed")
	ErrContentRejected    = errors.New("content rejected by safety check")
	ErrValidation         = errors.New("validation failed")
)
