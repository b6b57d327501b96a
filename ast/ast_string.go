package ast

import "fmt"

var baseTypeNames = map[BaseType]string{
	Void: "void",
	Int:  "int",
}

func (v BaseType) String() string {
	if name, ok := baseTypeNames[v]; ok {
		return name
	}
	return fmt.Sprintf("BaseType(%d)", int(v))
}

func (v ListType) String() string {
	return "[" + v.Element.String() + "]"
}

// TypeToString renders a type for messages. Unlike the generator it never
// fails.
func TypeToString(t Type) string {
	switch v := t.(type) {
	case BaseType:
		return v.String()
	case ListType:
		return v.String()
	case nil:
		return "<nil>"
	}

	return fmt.Sprintf("%T", t)
}
