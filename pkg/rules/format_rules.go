package rules

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// Email requires an RFC 5322 address with a dotted domain.
func Email() Definition {
	return formatRule("email", "must be a valid email address", validEmail)
}

// URL requires an absolute http or https URL with a host.
func URL() Definition {
	return formatRule("url", "must be a valid URL", validURL)
}

// UUID requires the canonical 36 character UUID form.
func UUID() Definition {
	return formatRule("uuid", "must be a valid UUID", validUUID)
}

func formatRule(code, msg string, valid func(string) bool) Definition {
	return Definition{
		Name: code,
		Check: func(value any, _ *form.ValidationContext) string {
			s, ok := toString(value)
			if !ok {
				return CodeInvalidType
			}
			if !valid(s) {
				return code
			}
			return ""
		},
		Messages: map[string]string{code: msg, CodeInvalidType: msgNotString},
	}
}

func validEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}

	local, domain, ok := strings.Cut(addr.Address, "@")
	if !ok || local == "" {
		return false
	}
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	return !strings.Contains(domain, "..")
}

func validURL(value string) bool {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validUUID(value string) bool {
	// uuid.Parse also accepts urn and braced forms; only the canonical one is allowed.
	if len(value) != 36 {
		return false
	}
	if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
