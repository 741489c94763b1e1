package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify pipeline failures. Config and state errors are fatal
// for the run (or the variant), delivery errors are partial failures.
var (
	ErrTagConfig   = goerr.NewTag("config")
	ErrTagState    = goerr.NewTag("state")
	ErrTagHistory  = goerr.NewTag("history")
	ErrTagDelivery = goerr.NewTag("delivery")
)
