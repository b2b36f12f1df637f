// Package response extracts structured data from the engine's reply
// documents.
//
// The engine's response schema varies across versions, so each operation is
// parsed by an ordered list of shape handlers tried in sequence; an
// unrecognized document degrades to an empty result with a logged warning
// rather than a hard failure.
package response

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Parser extracts results for the four engine operations.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a parser. A nil logger disables warning output.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log}
}

// parse reads raw into an element tree. The engine occasionally emits
// bare fragments, so a read failure is reported by the caller per
// operation rather than here.
func parse(raw []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, err
	}
	return doc, nil
}

// Error marker tags. Any of these anywhere in a response signals failure.
var errorMarkers = []string{"LINEERROR", "ERROR", "ERRORS"}

// ErrorText collects the concatenated text of every error-marker node in
// raw. ok is false when no marker is present.
func ErrorText(raw []byte) (text string, ok bool) {
	doc, err := parse(raw)
	if err != nil {
		return "", false
	}
	return errorText(doc)
}

func errorText(doc *etree.Document) (string, bool) {
	var parts []string
	for _, marker := range errorMarkers {
		for _, el := range doc.FindElements("//" + marker) {
			if t := strings.TrimSpace(el.Text()); t != "" {
				parts = append(parts, t)
			}
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "; "), true
}

// childText returns the trimmed text of the first matching child tag.
func childText(el *etree.Element, tags ...string) string {
	for _, tag := range tags {
		if child := el.FindElement(tag); child != nil {
			return strings.TrimSpace(child.Text())
		}
	}
	return ""
}

// amount parses an engine amount string, tolerating blanks.
func amount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
