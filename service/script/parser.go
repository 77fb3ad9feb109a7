package script

import (
	"context"
	"fmt"
	"strconv"

	"github.com/viant/afs"
	"github.com/viant/parsly"
)

// Parse parses a command script: one command per line, integer arguments
// separated by blanks, '#' starting a comment.
func Parse(text string) ([]*Command, error) {
	cursor := parsly.NewCursor("script", []byte(text), 0)
	var commands []*Command
	line := 1
	for {
		matched := cursor.MatchAfterOptional(blankToken, newLineToken, commentToken, identifierToken)
		switch matched.Code {
		case parsly.EOF:
			return commands, nil
		case newLineCode, commentCode:
			if matched.Code == newLineCode {
				line++
			}
			continue
		case identifierCode:
		default:
			return nil, fmt.Errorf("line %d: %w", line, cursor.NewError(identifierToken, commentToken))
		}

		word := matched.Text(cursor)
		name, ok := lookupName(word)
		if !ok {
			return nil, fmt.Errorf("%w: %q at line %d", ErrUnknownCommand, word, line)
		}
		command := &Command{Name: name, Line: line}
		for i := 0; i < arity[name]; i++ {
			matched = cursor.MatchAfterOptional(blankToken, integerToken)
			if matched.Code != integerCode {
				return nil, fmt.Errorf("%w: %v expects %d argument(s) at line %d", ErrArguments, name, arity[name], line)
			}
			value, err := strconv.Atoi(matched.Text(cursor))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrArguments, line, err)
			}
			command.Args = append(command.Args, value)
		}

		matched = cursor.MatchAfterOptional(blankToken, newLineToken, commentToken)
		switch matched.Code {
		case parsly.EOF, commentCode:
		case newLineCode:
			line++
		default:
			return nil, fmt.Errorf("%w: %v expects %d argument(s) at line %d", ErrArguments, name, arity[name], line)
		}
		commands = append(commands, command)
	}
}

// Load downloads and parses a script from URL.
func Load(ctx context.Context, fs afs.Service, URL string) ([]*Command, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("script: failed to load %s: %w", URL, err)
	}
	return Parse(string(data))
}
