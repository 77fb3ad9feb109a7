package script

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	blankCode = iota + 1
	newLineCode
	commentCode
	identifierCode
	integerCode
)

var (
	blankToken      = parsly.NewToken(blankCode, "Blank", &blankMatcher{})
	newLineToken    = parsly.NewToken(newLineCode, "NewLine", matcher.NewByte('\n'))
	commentToken    = parsly.NewToken(commentCode, "Comment", &commentMatcher{})
	identifierToken = parsly.NewToken(identifierCode, "Command", &identifierMatcher{})
	integerToken    = parsly.NewToken(integerCode, "Integer", &integerMatcher{})
)

// blankMatcher matches spaces and tabs but not line breaks.
type blankMatcher struct{}

func (m *blankMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		switch cursor.Input[i] {
		case ' ', '\t', '\r':
			matched++
			continue
		}
		break
	}
	return matched
}

// commentMatcher matches '#' up to, excluding, the line break.
type commentMatcher struct{}

func (m *commentMatcher) Match(cursor *parsly.Cursor) int {
	if cursor.Pos >= cursor.InputSize || cursor.Input[cursor.Pos] != '#' {
		return 0
	}
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize && cursor.Input[i] != '\n'; i++ {
		matched++
	}
	return matched
}

type identifierMatcher struct{}

func (m *identifierMatcher) Match(cursor *parsly.Cursor) int {
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize && isLetter(cursor.Input[i]); i++ {
		matched++
	}
	return matched
}

// integerMatcher matches an optionally negative decimal number.
type integerMatcher struct{}

func (m *integerMatcher) Match(cursor *parsly.Cursor) int {
	pos := cursor.Pos
	if pos < cursor.InputSize && (cursor.Input[pos] == '-' || cursor.Input[pos] == '+') {
		pos++
	}
	digits := 0
	for i := pos; i < cursor.InputSize && isDigit(cursor.Input[i]); i++ {
		digits++
	}
	if digits == 0 {
		return 0
	}
	return pos - cursor.Pos + digits
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
