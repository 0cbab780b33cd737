package wire

import (
	"encoding/binary"

	"github.com/haukened/sr-dns/internal/dns/domain"
)

// AppendHeader appends the 12-byte wire encoding of a message header.
func AppendHeader(dst []byte, h domain.Header) []byte {
	dst = binary.BigEndian.AppendUint16(dst, h.ID)
	dst = binary.BigEndian.AppendUint16(dst, uint16(h.Flags))
	dst = binary.BigEndian.AppendUint16(dst, h.QuestionCount)
	dst = binary.BigEndian.AppendUint16(dst, h.AnswerCount)
	dst = binary.BigEndian.AppendUint16(dst, h.AuthorityCount)
	dst = binary.BigEndian.AppendUint16(dst, h.AdditionalCount)
	return dst
}

// AppendQuestion appends the wire encoding of a question section entry.
func AppendQuestion(dst []byte, q domain.Question) ([]byte, error) {
	dst, err := AppendName(dst, q.Name)
	if err != nil {
		return nil, err
	}
	dst = binary.BigEndian.AppendUint16(dst, uint16(q.Type))
	dst = binary.BigEndian.AppendUint16(dst, uint16(q.Class))
	return dst, nil
}

// AppendQuery appends a complete single-question recursive query message.
func AppendQuery(dst []byte, id uint16, q domain.Question) ([]byte, error) {
	dst = AppendHeader(dst, domain.QueryHeader(id))
	return AppendQuestion(dst, q)
}
