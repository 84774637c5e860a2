// Package jwt issues and verifies the access tokens that gate the API.
// Claims carry the user ID and email alongside the registered claims, and
// context helpers pass verified claims from middleware to use cases.
package jwt
