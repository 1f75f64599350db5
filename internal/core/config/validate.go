package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hay-kot/criterio"
)

// Validate checks the configuration for structural problems. Returned errors
// are criterio.FieldErrors so the printer can render them per-field.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	switch u, err := url.Parse(c.APIURL); {
	case err != nil:
		errs = errs.Append("api_url", fmt.Errorf("invalid URL: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = errs.Append("api_url", fmt.Errorf("scheme must be http or https, got %q", u.Scheme))
	case strings.HasSuffix(c.APIURL, "/"):
		errs = errs.Append("api_url", fmt.Errorf("must not end with a trailing slash"))
	}

	if c.RequestTimeoutSeconds < 1 {
		errs = errs.Append("request_timeout_seconds", fmt.Errorf("must be at least 1, got %d", c.RequestTimeoutSeconds))
	}

	if c.PageSize < 1 {
		errs = errs.Append("page_size", fmt.Errorf("must be at least 1, got %d", c.PageSize))
	}

	return errs.ToError()
}
