package boltkeystore

import "errors"

var (
	// ErrBucketNotFound ...
	ErrBucketNotFound = errors.New("key file bucket not found")
	// ErrMissingKeyFileName ...
	ErrMissingKeyFileName = errors.New("missing key file name")
	// ErrMalformedKeyFile ...
	ErrMalformedKeyFile = errors.New("key file seed must be a 32 byte hex string")
)
