// Copyright 2025 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

// Status is a request status code. Codes below 500 describe problems with the
// caller's request; codes of 500 and above describe problems with the ledger
// itself.
type Status uint64

const (
	// OK means the request completed.
	OK Status = 200

	// BadRequest means the request was invalid.
	BadRequest Status = 400

	// NotFound means a requested record does not exist.
	NotFound Status = 404

	// MalformedMessage means a challenge message does not match the issued
	// format.
	MalformedMessage Status = 460

	// Expired means a challenge message is older than the validation window.
	Expired Status = 461

	// SignatureInvalid means a signature could not be verified against the
	// claimed address.
	SignatureInvalid Status = 462

	// VerificationFailed wraps any ownership-verification failure surfaced by
	// a submission.
	VerificationFailed Status = 463

	// UnknownError means an unknown error occurred.
	UnknownError Status = 500

	// InternalError means an internal error occurred.
	InternalError Status = 501

	// EncodingError means encoding or decoding failed.
	EncodingError Status = 502

	// TamperedBlock means a block's stored hash does not match its recomputed
	// hash.
	TamperedBlock Status = 530

	// BrokenLink means a block's previous-hash does not match its
	// predecessor's hash.
	BrokenLink Status = 531

	// ChainCorrupted means validation found the chain inconsistent and a
	// write was refused.
	ChainCorrupted Status = 532

	// ChainError wraps any chain failure surfaced by a submission.
	ChainError Status = 533
)

// Success returns true if the status represents success.
func (s Status) Success() bool { return s < 300 }

// IsClientError returns true if the status is a client error.
func (s Status) IsClientError() bool { return s >= 400 && s < 500 }

// IsServerError returns true if the status is a server error.
func (s Status) IsServerError() bool { return s >= 500 }

// Error implements error.
func (s Status) Error() string { return s.String() }

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case BadRequest:
		return "bad request"
	case NotFound:
		return "not found"
	case MalformedMessage:
		return "malformed message"
	case Expired:
		return "expired"
	case SignatureInvalid:
		return "signature invalid"
	case VerificationFailed:
		return "verification failed"
	case UnknownError:
		return "unknown error"
	case InternalError:
		return "internal error"
	case EncodingError:
		return "encoding error"
	case TamperedBlock:
		return "tampered block"
	case BrokenLink:
		return "broken link"
	case ChainCorrupted:
		return "chain corrupted"
	case ChainError:
		return "chain error"
	default:
		return "unknown status"
	}
}
