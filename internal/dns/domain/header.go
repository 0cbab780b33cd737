package domain

// Flags is the 16-bit flags word of a DNS message header, laid out per
// RFC 1035 section 4.1.1: QR, Opcode(4), AA, TC, RD, RA, Z(3), RCODE(4).
type Flags uint16

// Flag bit masks.
const (
	FlagResponse           Flags = 0x8000 // QR
	FlagAuthoritative      Flags = 0x0400 // AA
	FlagTruncated          Flags = 0x0200 // TC
	FlagRecursionDesired   Flags = 0x0100 // RD
	FlagRecursionAvailable Flags = 0x0080 // RA
	FlagAuthenticData      Flags = 0x0020 // AD
	FlagCheckingDisabled   Flags = 0x0010 // CD

	opcodeMask Flags = 0x7800
	rcodeMask  Flags = 0x000F
)

// Response reports whether the QR bit is set (message is a response).
func (f Flags) Response() bool { return f&FlagResponse != 0 }

// Authoritative reports whether the AA bit is set.
func (f Flags) Authoritative() bool { return f&FlagAuthoritative != 0 }

// Truncated reports whether the TC bit is set.
func (f Flags) Truncated() bool { return f&FlagTruncated != 0 }

// RecursionDesired reports whether the RD bit is set.
func (f Flags) RecursionDesired() bool { return f&FlagRecursionDesired != 0 }

// RecursionAvailable reports whether the RA bit is set.
func (f Flags) RecursionAvailable() bool { return f&FlagRecursionAvailable != 0 }

// Opcode extracts the 4-bit opcode field.
func (f Flags) Opcode() uint8 { return uint8(f & opcodeMask >> 11) }

// RCode extracts the 4-bit response code field.
func (f Flags) RCode() RCode { return RCode(f & rcodeMask) }

// Header is the fixed 12-byte DNS message header.
type Header struct {
	ID              uint16
	Flags           Flags
	QuestionCount   uint16
	AnswerCount     uint16
	AuthorityCount  uint16
	AdditionalCount uint16
}

// QueryHeader returns a header for a standard recursive query with the
// given transaction id and a single question.
func QueryHeader(id uint16) Header {
	return Header{
		ID:            id,
		Flags:         FlagRecursionDesired,
		QuestionCount: 1,
	}
}
