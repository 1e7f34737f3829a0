package capture

import (
	"fmt"
	"net"
	"net/url"

	"github.com/desertthunder/daylight/internal/shared"
)

// ExtractCode returns the value of the code query parameter in rawURL.
//
// Values are decoded per application/x-www-form-urlencoded rules, so both
// percent- and plus-encoding round-trip. The parameter may appear anywhere in
// the query string; ok is false only when it is entirely absent, never for an
// empty value.
func ExtractCode(rawURL string) (code string, ok bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}

	values := u.Query()
	if vs, present := values["code"]; present && len(vs) > 0 {
		return vs[0], true
	}

	return "", false
}

// ListenAddrPort maps a bound listener address to its numeric port.
//
// Fails with [shared.ErrUnsupportedAddress] for any non-IP representation
// (e.g. a unix socket).
func ListenAddrPort(addr net.Addr) (uint16, error) {
	tcp, ok := addr.(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("%w: %s", shared.ErrUnsupportedAddress, addr.Network())
	}
	return uint16(tcp.Port), nil
}
