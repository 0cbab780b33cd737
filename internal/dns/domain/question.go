package domain

import "fmt"

// MaxNameLength is the longest textual domain name the resolver accepts,
// per RFC 1035 (255 bytes on the wire, 253 in presentation form).
const MaxNameLength = 253

// Question represents a DNS query section entry.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question and validates its fields.
func NewQuestion(name string, rrtype RRType) (Question, error) {
	q := Question{
		Name:  name,
		Type:  rrtype,
		Class: RRClassIN,
	}
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	return q, nil
}

// Validate checks whether the Question fields are structurally valid.
func (q Question) Validate() error {
	if q.Name == "" {
		return fmt.Errorf("query name must not be empty")
	}
	if len(q.Name) > MaxNameLength {
		return fmt.Errorf("query name exceeds %d characters", MaxNameLength)
	}
	if !q.Type.IsQueryType() {
		return fmt.Errorf("unsupported query type: %s", q.Type)
	}
	return nil
}

// Equivalent reports whether the echoed question on a response matches
// this question. Names compare case-insensitively because RFC-compliant
// servers may alter the case of the echoed name.
func (q Question) Equivalent(other Question) bool {
	return EqualNames(q.Name, other.Name) && q.Type == other.Type && q.Class == other.Class
}
