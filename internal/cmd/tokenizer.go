package cmd

import (
	"fmt"
	"strings"
)

// Redirect holds output-redirect info parsed from a command line.
type Redirect struct {
	Append bool   // >> vs >
	Path   string // target path
}

// Tokenize splits a command line into tokens, handling single and double
// quotes, backslash escapes and a trailing > / >> redirect.
func Tokenize(line string) ([]string, *Redirect, error) {
	var tokens []string
	var current strings.Builder
	var redirect *Redirect
	var inToken, wantPath, inSingle, inDouble, escaped bool

	flush := func() error {
		if !inToken {
			return nil
		}
		tok := current.String()
		current.Reset()
		inToken = false
		if wantPath {
			redirect.Path = tok
			wantPath = false
			return nil
		}
		if redirect != nil {
			return fmt.Errorf("syntax error: unexpected token after redirect: %s", tok)
		}
		tokens = append(tokens, tok)
		return nil
	}

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case escaped:
			current.WriteByte(ch)
			inToken = true
			escaped = false
		case ch == '\\' && !inSingle:
			escaped = true
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
			inToken = true
		case ch == '"' && !inSingle:
			inDouble = !inDouble
			inToken = true
		case inSingle || inDouble:
			current.WriteByte(ch)
		case ch == '>':
			if err := flush(); err != nil {
				return nil, nil, err
			}
			if redirect != nil {
				return nil, nil, fmt.Errorf("syntax error: multiple redirects")
			}
			redirect = &Redirect{}
			if i+1 < len(line) && line[i+1] == '>' {
				redirect.Append = true
				i++
			}
			wantPath = true
		case ch == ' ' || ch == '\t':
			if err := flush(); err != nil {
				return nil, nil, err
			}
		default:
			current.WriteByte(ch)
			inToken = true
		}
	}

	if inSingle || inDouble {
		return nil, nil, fmt.Errorf("syntax error: unterminated quote")
	}
	if err := flush(); err != nil {
		return nil, nil, err
	}
	if redirect != nil && redirect.Path == "" {
		return nil, nil, fmt.Errorf("syntax error: redirect without target")
	}
	return tokens, redirect, nil
}
