// Package schema reads MAVLink message-definition XML and turns it into laid
// out mavlink.Message values.
package schema

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Document is the parsed form of a MAVLink definition file.
type Document struct {
	XMLName  xml.Name     `xml:"mavlink"`
	Includes []string     `xml:"include"`
	Version  int          `xml:"version"`
	Dialect  int          `xml:"dialect"`
	Messages *MessageList `xml:"messages"`
}

// MessageList is the <messages> container.
type MessageList struct {
	Messages []MessageNode `xml:"message"`
}

// MessageNode is a single <message> declaration.
type MessageNode struct {
	ID          string    `xml:"id,attr"`
	Name        string    `xml:"name,attr"`
	Description *string   `xml:"description"`
	WIP         *struct{} `xml:"wip"`
	// Nodes holds the remaining children (fields, extension markers,
	// deprecation notes) in document order.
	Nodes []Node `xml:",any"`
}

// Node is a generic child element of a message.
type Node struct {
	XMLName xml.Name
	Type    string `xml:"type,attr"`
	Name    string `xml:"name,attr"`
	Enum    string `xml:"enum,attr"`
	Units   string `xml:"units,attr"`
	Text    string `xml:",chardata"`
}

// IsField reports whether the node is a <field> declaration.
func (n Node) IsField() bool { return n.XMLName.Local == "field" }

// Parse decodes a MAVLink XML document.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse mavlink document: %w", err)
	}
	return &doc, nil
}

// ParseFile opens and decodes the document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// normalizeText collapses the whitespace XML pretty-printing leaves in descriptions.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
