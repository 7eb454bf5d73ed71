package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"payline-connector/internal/core/domain"
)

const (
	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"

	prefixEnvelope = "soapenv"
	prefixImpl     = "impl"
	prefixObject   = "obj"
)

// EncodeRequest builds a document/literal envelope for action. The request
// wrapper and its direct children live in the service namespace, the
// content of complex types in the object namespace.
func EncodeRequest(action, serviceNS, objectNS string, args domain.Fields) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)

	envelope := xml.StartElement{
		Name: xml.Name{Local: prefixEnvelope + ":Envelope"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:" + prefixEnvelope}, Value: envelopeNS},
			{Name: xml.Name{Local: "xmlns:" + prefixImpl}, Value: serviceNS},
			{Name: xml.Name{Local: "xmlns:" + prefixObject}, Value: objectNS},
		},
	}
	header := xml.StartElement{Name: xml.Name{Local: prefixEnvelope + ":Header"}}
	body := xml.StartElement{Name: xml.Name{Local: prefixEnvelope + ":Body"}}
	request := xml.StartElement{Name: xml.Name{Local: prefixImpl + ":" + action + "Request"}}

	tokens := []xml.Token{envelope, header, header.End(), body, request}
	for _, tok := range tokens {
		if err := enc.EncodeToken(tok); err != nil {
			return nil, fmt.Errorf("encoding envelope: %w", err)
		}
	}

	for _, f := range args {
		if err := encodeValue(enc, prefixImpl, f.Name, f.Value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", f.Name, err)
		}
	}

	for _, tok := range []xml.Token{request.End(), body.End(), envelope.End()} {
		if err := enc.EncodeToken(tok); err != nil {
			return nil, fmt.Errorf("encoding envelope: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return nil, fmt.Errorf("encoding envelope: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeValue(enc *xml.Encoder, prefix, name string, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		for _, item := range v {
			if err := encodeValue(enc, prefix, name, item); err != nil {
				return err
			}
		}
		return nil
	}

	start := xml.StartElement{Name: xml.Name{Local: prefix + ":" + name}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}

	switch v := value.(type) {
	case domain.Fields:
		for _, f := range v {
			if err := encodeValue(enc, prefixObject, f.Name, f.Value); err != nil {
				return err
			}
		}
	case string:
		if err := enc.EncodeToken(xml.CharData(v)); err != nil {
			return err
		}
	default:
		if err := enc.EncodeToken(xml.CharData(fmt.Sprint(v))); err != nil {
			return err
		}
	}

	return enc.EncodeToken(start.End())
}

// Fault is a SOAP fault returned by the service.
type Fault struct {
	Code   string
	String string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, f.String)
}

// DecodeResponse extracts the body payload of a response envelope. A SOAP
// fault is returned as *Fault.
func DecodeResponse(data []byte) (domain.Response, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	inBody := false
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if !inBody {
			inBody = start.Name.Local == "Body"
			continue
		}

		payload, err := decodeElement(dec)
		if err != nil {
			return nil, fmt.Errorf("decoding response: %w", err)
		}
		node, _ := payload.(map[string]any)
		if start.Name.Local == "Fault" {
			return nil, &Fault{Code: stringAt(node, "faultcode"), String: stringAt(node, "faultstring")}
		}
		if node == nil {
			node = map[string]any{}
		}
		return domain.Response(node), nil
	}
}

// decodeElement reads the content of the element whose start tag was just
// consumed. Elements with children become maps, repeated children lists,
// leaves their trimmed text.
func decodeElement(dec *xml.Decoder) (any, error) {
	var (
		children map[string]any
		text     strings.Builder
	)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec)
			if err != nil {
				return nil, err
			}
			if children == nil {
				children = make(map[string]any)
			}
			addChild(children, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if children != nil {
				return children, nil
			}
			return strings.TrimSpace(text.String()), nil
		}
	}
}

func addChild(children map[string]any, name string, value any) {
	existing, ok := children[name]
	if !ok {
		children[name] = value
		return
	}
	if list, ok := existing.([]any); ok {
		children[name] = append(list, value)
		return
	}
	children[name] = []any{existing, value}
}

func stringAt(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}
