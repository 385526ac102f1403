// Package users persists credential records as one JSON array under the
// "oracle_users" key of the record store.
package users
