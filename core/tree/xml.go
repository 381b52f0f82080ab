package tree

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// xmlElement is a generic element used to unmarshal arbitrary XML without a
// target type. Attribute and child matching uses the ",any" wildcards.
type xmlElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr   `xml:",any,attr"`
	Content    string       `xml:",chardata"`
	Children   []xmlElement `xml:",any"`
}

// DecodeXML parses input as a single XML document and returns the content of
// its root element as a tree. Attributes become members prefixed with "@",
// repeated child elements fold into an Array at the position of their first
// occurrence, and elements carrying both attributes and text expose the text
// under the "#text" key. All scalar leaves are strings; XML has no native
// numeric or boolean grammar.
//
// The whole input must be one document: exactly one root element, with only
// whitespace, comments, directives and processing instructions around it.
func DecodeXML(input string) (Value, error) {
	dec := xml.NewDecoder(strings.NewReader(input))
	var root *xmlElement

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, errors.New("multiple root elements")
			}
			var el xmlElement
			if err := dec.DecodeElement(&el, &t); err != nil {
				return nil, err
			}
			root = &el
		case xml.CharData:
			if strings.TrimSpace(string(t)) != "" {
				return nil, errors.New("text content outside root element")
			}
		}
	}

	if root == nil {
		return nil, errors.New("no XML element found")
	}
	return elementContent(root), nil
}

// elementContent converts a single element's attributes, text and children
// into a tree node.
func elementContent(el *xmlElement) Value {
	text := strings.TrimSpace(el.Content)

	if len(el.Children) == 0 && len(el.Attributes) == 0 {
		return String(text)
	}

	obj := &Object{}
	for _, attr := range el.Attributes {
		name := attr.Name.Local
		if attr.Name.Space != "" {
			name = attr.Name.Space + ":" + attr.Name.Local
		}
		obj.Set("@"+name, String(attr.Value))
	}

	if len(el.Children) == 0 {
		obj.Set("#text", String(text))
		return obj
	}

	for i := range el.Children {
		child := &el.Children[i]
		value := elementContent(child)
		name := child.XMLName.Local

		existing, ok := obj.Get(name)
		if !ok {
			obj.Set(name, value)
			continue
		}
		// Same element name again: fold into an array in place.
		if arr, isArr := existing.(*Array); isArr {
			arr.Items = append(arr.Items, value)
		} else {
			obj.Set(name, &Array{Items: []Value{existing, value}})
		}
	}
	return obj
}
