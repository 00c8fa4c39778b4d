package domain

import "time"

// AssetNative selects the platform's base value unit. Any other non-empty
// asset kind is the identifier of a fungible asset on the external ledger.
const AssetNative = "native"

// Promise is a funding request posted by a creator. The asset kind and the
// requested amount are fixed at creation; Fulfilled flips to true at most
// once and Fulfiller is immutable afterwards.
type Promise struct {
	ID              uint64    `json:"id"`
	Creator         string    `json:"creator"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	MediaRef        string    `json:"media_ref,omitempty"`
	Asset           string    `json:"asset"`
	AmountRequested uint64    `json:"amount_requested"`
	Visible         bool      `json:"visible"`
	Fulfilled       bool      `json:"fulfilled"`
	Fulfiller       string    `json:"fulfiller,omitempty"`
	Raised          uint64    `json:"raised"`
	Withdrawn       uint64    `json:"withdrawn"`
	CreatedAt       time.Time `json:"created_at"`
}
