package records

import (
	"ndefkit/ndef"
)

func init() {
	Register(ndef.DefaultRegistry)
}

// Register adds the Text, URI and Smart Poster descriptors to reg. The records
// nested inside a Smart Poster are decoded with a registry derived from reg
// at this point, which additionally knows the Action and Size records.
func Register(reg *ndef.Registry) {
	reg.MustRegister(TextType, textDescriptor())
	reg.MustRegister(URIType, uriDescriptor())

	nested := reg.Derive()
	nested.MustRegister(ActionType, actionDescriptor())
	nested.MustRegister(SizeType, sizeDescriptor())
	reg.MustRegister(SmartPosterType, smartPosterDescriptor(nested))
}
