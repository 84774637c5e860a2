// Package hash computes and verifies keyed hashes. Verification codes are
// stored only as HMAC digests so a cache compromise does not expose the
// codes themselves.
package hash
