package apitest

import "errors"

var (
	errUnknownID      = errors.New("apitest: unknown credentials id")
	errStaleTimestamp = errors.New("apitest: stale timestamp")
	errReplayedNonce  = errors.New("apitest: replayed nonce")
	errPayloadHash    = errors.New("apitest: payload hash mismatch")
)
