package models

import "errors"

// ErrMissingRelation is returned by ToDTO conversions when a record lacks a
// relationship the wire format requires (e.g. an expense without a resolvable
// payer). The change collector logs and skips such records instead of failing
// the whole push batch.
var ErrMissingRelation = errors.New("record is missing a required relation")
