package sparql

import (
	kiterrors "github.com/graphbound/sparqlkit/pkg/errors"
)

// Error predicates for the failure taxonomy. Each inspects the error
// chain for the corresponding code from pkg/errors.

// IsConfigInvalid reports whether err is a configuration error from New.
func IsConfigInvalid(err error) bool {
	return kiterrors.Is(err, kiterrors.ErrCodeConfigInvalid)
}

// IsMalformedQuery reports whether the endpoint rejected the operation
// text with HTTP 400.
func IsMalformedQuery(err error) bool {
	return kiterrors.Is(err, kiterrors.ErrCodeMalformedQuery)
}

// IsClientError reports whether the endpoint returned a non-400 client
// failure status.
func IsClientError(err error) bool {
	return kiterrors.Is(err, kiterrors.ErrCodeClientError)
}

// IsServerError reports whether the endpoint returned a 5xx status.
func IsServerError(err error) bool {
	return kiterrors.Is(err, kiterrors.ErrCodeServerError)
}

// IsTransport reports whether the exchange failed below the protocol
// layer, after any retries were exhausted.
func IsTransport(err error) bool {
	return kiterrors.Is(err, kiterrors.ErrCodeTransport)
}

// IsDecode reports whether a success response body could not be decoded,
// including unsupported content types.
func IsDecode(err error) bool {
	return kiterrors.Is(err, kiterrors.ErrCodeDecode) ||
		kiterrors.Is(err, kiterrors.ErrCodeUnsupportedFormat)
}

// IsUnsupportedFormat reports whether the response declared a content type
// no decoder recognizes.
func IsUnsupportedFormat(err error) bool {
	return kiterrors.Is(err, kiterrors.ErrCodeUnsupportedFormat)
}
