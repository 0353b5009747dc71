package domain

import (
	"fmt"
	"strings"
)

type SearchField uint8

const (
	SearchTitle SearchField = 1 << iota
	SearchContent
	SearchWriter
)

// SearchFields is the set of board columns a keyword is matched against
type SearchFields uint8

const AllSearchFields = SearchFields(SearchTitle | SearchContent | SearchWriter)

func NewSearchFields(fields ...SearchField) SearchFields {
	var s SearchFields
	for _, f := range fields {
		s |= SearchFields(f)
	}
	return s
}

func (s SearchFields) Has(f SearchField) bool {
	return s&SearchFields(f) != 0
}

func (s SearchFields) Empty() bool {
	return s == 0
}

var searchCodes = []struct {
	code  byte
	field SearchField
}{
	{'t', SearchTitle},
	{'c', SearchContent},
	{'w', SearchWriter},
}

// ParseSearchFields reads the legacy short code used by clients: any combination of
// t (title), c (content) and w (writer), e.g. "tc" or "tcw". Empty code gives an empty set.
func ParseSearchFields(code string) (SearchFields, error) {
	var s SearchFields
	for i := 0; i < len(code); i++ {
		c := code[i] | 0x20 // ascii lower
		found := false
		for _, sc := range searchCodes {
			if sc.code == c {
				s |= SearchFields(sc.field)
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown search type %q", code[i])
		}
	}
	return s, nil
}

func (s SearchFields) String() string {
	var b strings.Builder
	for _, sc := range searchCodes {
		if s.Has(sc.field) {
			b.WriteByte(sc.code)
		}
	}
	return b.String()
}
