package dom

// Kind is the runtime kind of a style enumeration member.
type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindNull
	KindFunction
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindNull:
		return "null"
	case KindFunction:
		return "function"
	default:
		return "object"
	}
}

// StyleEntry is one member of a computed style enumeration.
type StyleEntry struct {
	Name  string
	Value string
	Kind  Kind
}

// Raw returns the entry value as the enumeration exposes it.
func (e StyleEntry) Raw() interface{} {
	switch e.Kind {
	case KindString, KindNumber:
		return e.Value
	default:
		return nil
	}
}

// Declaration is a computed style enumeration in enumeration order.
type Declaration []StyleEntry

func (d Declaration) Get(name string) (StyleEntry, bool) {
	for _, e := range d {
		if e.Name == name {
			return e, true
		}
	}
	return StyleEntry{}, false
}
