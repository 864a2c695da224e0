// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// ContentSecurityPolicy allows same-origin resources plus inline styles,
// which project pages use for their brand gradients.
const ContentSecurityPolicy = "default-src 'self'; img-src 'self' data: https:; " +
	"style-src 'self' 'unsafe-inline'; script-src 'self'; frame-ancestors 'self'; form-action 'self'"

// SecureHeaders adds security-related HTTP headers to every response.
// In development HSTS is not sent and the CSP is left out so local
// tooling keeps working.
func SecureHeaders(dev bool) func(http.Handler) http.Handler {
	opts := secure.Options{
		CustomFrameOptionsValue: "SAMEORIGIN",
		ContentTypeNosniff:      true,
		CustomBrowserXssValue:   "0",
		ReferrerPolicy:          "strict-origin-when-cross-origin",
		PermissionsPolicy:       "interest-cohort=()",
		SSLProxyHeaders:         map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:              31536000,
		STSIncludeSubdomains:    true,
		IsDevelopment:           dev,
	}
	if !dev {
		opts.ContentSecurityPolicy = ContentSecurityPolicy
	}
	return secure.New(opts).Handler
}
