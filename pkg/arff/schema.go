package arff

// AttributeType is the declared type of an ARFF attribute.
type AttributeType int

const (
	Numeric AttributeType = iota
	Nominal
	String
	Date
)

func (t AttributeType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Nominal:
		return "nominal"
	case String:
		return "string"
	case Date:
		return "date"
	}
	return "unknown"
}

// Attribute is one @ATTRIBUTE declaration.
type Attribute struct {
	Name   string
	Type   AttributeType
	Values []string // declared categories, nominal only
}

// Schema describes the header of an ARFF file.
type Schema struct {
	Relation   string
	Attributes []Attribute
}

// Names returns the attribute names in declaration order.
func (s Schema) Names() []string {
	names := make([]string, len(s.Attributes))
	for i, a := range s.Attributes {
		names[i] = a.Name
	}
	return names
}

// Index returns the position of the named attribute, or -1.
func (s Schema) Index(name string) int {
	for i, a := range s.Attributes {
		if a.Name == name {
			return i
		}
	}
	return -1
}
