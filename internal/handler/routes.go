package handler

// APIV1Prefix is the canonical base path for public HTTP API v1.
// Handlers and tests build paths from it.
const APIV1Prefix = "/api/v1"

// Route paths under APIV1Prefix.
const (
	BalancesPath = "/balances"
	ImportPath   = "/import"
)
