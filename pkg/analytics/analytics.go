package analytics

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Analytics counts words in plain-text files.
type Analytics struct{}

// Count is the outcome of counting one file: either a word count or a failure message.
// The zero value is a successful count of 0.
type Count struct {
	words int
	err   string
}

// Ok returns a successful count.
func Ok(words int) Count {
	return Count{words: words}
}

// Failed returns a failed count carrying a human-readable message.
func Failed(message string) Count {
	if message == "" {
		message = "unknown error"
	}
	return Count{err: message}
}

// IsError reports whether the file could not be counted.
func (c Count) IsError() bool {
	return c.err != ""
}

// Words returns the word count, or 0 for a failed count.
func (c Count) Words() int {
	if c.IsError() {
		return 0
	}
	return c.words
}

// Err returns the failure message, or "" for a successful count.
func (c Count) Err() string {
	return c.err
}

func (c Count) String() string {
	if c.IsError() {
		return "Error: " + c.err
	}
	return strconv.Itoa(c.words)
}

// CountWords returns the number of whitespace-delimited tokens in text.
func CountWords(text string) int {
	return len(strings.Fields(text)) // strings.Fields handles runs of spaces, tabs and newlines
}

// CountFile reads the whole file and counts its words.
// Read failures and invalid UTF-8 are returned as a failed Count, never as a partial count.
func (a *Analytics) CountFile(path string) Count {
	data, err := os.ReadFile(path)
	if err != nil {
		return Failed(err.Error())
	}

	if !utf8.Valid(data) {
		return Failed(fmt.Sprintf("%s: invalid UTF-8 content", path))
	}

	return Ok(CountWords(string(data)))
}
