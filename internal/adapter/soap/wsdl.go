package soap

import (
	"encoding/xml"
	"fmt"
	"sort"
)

// Definition is the part of a WSDL document the client needs: which
// operations a service declares and how to address them.
type Definition struct {
	TargetNamespace string
	Address         string
	operations      map[string]string // operation -> soapAction
}

// HasOperation reports whether the service declares name.
func (d *Definition) HasOperation(name string) bool {
	_, ok := d.operations[name]
	return ok
}

// SOAPAction returns the soapAction declared by the binding for name.
func (d *Definition) SOAPAction(name string) string {
	return d.operations[name]
}

// Operations lists the declared operations, sorted.
func (d *Definition) Operations() []string {
	out := make([]string, 0, len(d.operations))
	for name := range d.operations {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

type wsdlOperation struct {
	Name   string `xml:"name,attr"`
	Action struct {
		SOAPAction string `xml:"soapAction,attr"`
	} `xml:"operation"`
}

type wsdlDocument struct {
	XMLName         xml.Name `xml:"definitions"`
	TargetNamespace string   `xml:"targetNamespace,attr"`
	PortTypes       []struct {
		Operations []wsdlOperation `xml:"operation"`
	} `xml:"portType"`
	Bindings []struct {
		Operations []wsdlOperation `xml:"operation"`
	} `xml:"binding"`
	Services []struct {
		Ports []struct {
			Address struct {
				Location string `xml:"location,attr"`
			} `xml:"address"`
		} `xml:"port"`
	} `xml:"service"`
}

// ParseWSDL reads operations from the portType and soapActions from the binding.
func ParseWSDL(data []byte) (*Definition, error) {
	var doc wsdlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing wsdl: %w", err)
	}

	def := &Definition{
		TargetNamespace: doc.TargetNamespace,
		operations:      make(map[string]string),
	}
	for _, pt := range doc.PortTypes {
		for _, op := range pt.Operations {
			if op.Name != "" {
				def.operations[op.Name] = ""
			}
		}
	}
	if len(def.operations) == 0 {
		return nil, fmt.Errorf("parsing wsdl: no operations declared")
	}

	for _, b := range doc.Bindings {
		for _, op := range b.Operations {
			if _, ok := def.operations[op.Name]; ok {
				def.operations[op.Name] = op.Action.SOAPAction
			}
		}
	}

	for _, svc := range doc.Services {
		for _, port := range svc.Ports {
			if port.Address.Location != "" {
				def.Address = port.Address.Location
				break
			}
		}
	}

	return def, nil
}
