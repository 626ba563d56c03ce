package prototype

// Kind classifies a recipe ingredient or result. The wire format tags these
// with a free-form "type" string; everything downstream switches on the
// parsed enum instead of re-inspecting the string.
type Kind string

const (
	KindItem  Kind = "item"
	KindFluid Kind = "fluid"
	KindOther Kind = "other"
)

// ParseKind maps a wire "type" value onto the canonical enum. An absent tag
// means item, the historical default for ingredient shorthand.
func ParseKind(raw string) Kind {
	switch raw {
	case "", string(KindItem):
		return KindItem
	case string(KindFluid):
		return KindFluid
	default:
		return KindOther
	}
}
