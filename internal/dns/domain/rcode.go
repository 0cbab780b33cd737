package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
type RCode uint8

// Response codes per RFC 1035 section 4.1.1.
const (
	RCodeNoError        RCode = 0 // no error condition
	RCodeFormatError    RCode = 1 // the server could not interpret the query
	RCodeServerFailure  RCode = 2 // the server failed to process the query
	RCodeNameError      RCode = 3 // NXDOMAIN - the name does not exist
	RCodeNotImplemented RCode = 4 // the server does not support the request
	RCodeRefused        RCode = 5 // the server refused the query by policy
)

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case RCodeNoError:
		return "NOERROR"
	case RCodeFormatError:
		return "FORMERR"
	case RCodeServerFailure:
		return "SERVFAIL"
	case RCodeNameError:
		return "NXDOMAIN"
	case RCodeNotImplemented:
		return "NOTIMP"
	case RCodeRefused:
		return "REFUSED"
	default:
		return fmt.Sprintf("RCODE%d", uint8(r))
	}
}
