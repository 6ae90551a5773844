package domain

import "strings"

// MediumEmail is the only delivery medium the IdP supports.
const MediumEmail = "email"

// CodeDelivery describes where a verification code went.
type CodeDelivery struct {
	Medium      string
	Destination string
}

// MaskDestination hides all but the first character of the local part of an
// address, e.g. "alice@example.com" becomes "a***@example.com".
func MaskDestination(addr string) string {
	local, domain, ok := strings.Cut(addr, "@")
	if !ok || local == "" {
		if len(addr) <= 1 {
			return "***"
		}
		return addr[:1] + "***"
	}
	return local[:1] + "***@" + domain
}
