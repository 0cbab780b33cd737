package domain

import "fmt"

// RRClass represents a DNS class (always IN for this resolver).
type RRClass uint16

// DNS Resource Record Class constants
const (
	RRClassIN RRClass = 1 // IN - Internet
)

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	switch c {
	case RRClassIN:
		return "IN"
	default:
		return fmt.Sprintf("CLASS%d", uint16(c))
	}
}
