package parser

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strings"
)

// E-mail address rules: dot-atom or quoted-string local part, hostname or
// bracketed IP literal domain part (RFC 5321 §4.1.3). Label length capped
// at 63 characters per RFC 1034.
var (
	emailUserRE = regexp.MustCompile(`(?i)^([-!#$%&'*+/=?^_` + "`" + `{}|~0-9A-Z]+(\.[-!#$%&'*+/=?^_` + "`" + `{}|~0-9A-Z]+)*|"([\x01-\x08\x0b\x0c\x0e-\x1f!#-\[\]-\x7f]|\\[\x01-\x09\x0b\x0c\x0e-\x7f])*")$`)

	emailDomainRE = regexp.MustCompile(`(?i)^(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+(?:[A-Z0-9-]{1,62}[A-Z0-9])$`)

	emailLiteralRE = regexp.MustCompile(`(?i)^\[([A-F0-9:.]+)\]$`)
)

// ValidateEmail checks addr for syntactic validity and returns its domain
// part. The domain may be a hostname or a bracketed IPv4/IPv6 literal.
func ValidateEmail(addr string) (string, error) {
	at := strings.LastIndex(addr, "@")
	if at < 0 {
		return "", fmt.Errorf("invalid e-mail format: %q", addr)
	}

	user, domain := addr[:at], addr[at+1:]
	if !emailUserRE.MatchString(user) {
		return "", fmt.Errorf("invalid e-mail format: %q", addr)
	}
	if !validEmailDomain(domain) {
		return "", fmt.Errorf("invalid e-mail format: %q", addr)
	}
	return domain, nil
}

func validEmailDomain(domain string) bool {
	if emailDomainRE.MatchString(domain) {
		return true
	}
	if m := emailLiteralRE.FindStringSubmatch(domain); m != nil {
		return net.ParseIP(m[1]) != nil
	}
	return false
}

// CheckEmailDomainMX reports whether the domain has at least one MX record.
func CheckEmailDomainMX(ctx context.Context, domain string) bool {
	records, err := net.DefaultResolver.LookupMX(ctx, domain)
	return err == nil && len(records) > 0
}
