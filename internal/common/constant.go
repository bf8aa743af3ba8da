// Package common contains constants, sentinel errors and small helpers shared
// by the GophDrive server and client. Callers match errors with errors.Is.
package common

import "time"

// AuthorizationHeader carries "Bearer <token>" on API requests.
const AuthorizationHeader = "Authorization"

// RequestIDHeader is echoed back on every API response.
const RequestIDHeader = "X-Request-Id"

// Row limits used by the dashboard and file-details views.
const (
	DashboardLimit = 3
	DetailsLimit   = 5
)

// SignedURLTTL is the lifetime of preview links.
const SignedURLTTL = 3600 * time.Second

// SummaryUnavailable is merged into a record when enrichment fails.
const SummaryUnavailable = "AI summary not available for this file."
