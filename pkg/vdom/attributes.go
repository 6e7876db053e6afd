package vdom

// Attribute constructs an arbitrary attribute.
func Attribute(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Class sets the class attribute.
func Class(value string) Attr {
	return Attr{Key: "class", Value: value}
}

// ID sets the id attribute.
func ID(value string) Attr {
	return Attr{Key: "id", Value: value}
}

// Key sets the reconciliation key.
func Key(value string) Attr {
	return Attr{Key: "key", Value: value}
}

// Href sets the href attribute.
func Href(value string) Attr {
	return Attr{Key: "href", Value: value}
}

// Src sets the src attribute.
func Src(value string) Attr {
	return Attr{Key: "src", Value: value}
}

// Alt sets the alt attribute.
func Alt(value string) Attr {
	return Attr{Key: "alt", Value: value}
}

// Name sets the name attribute.
func Name(value string) Attr {
	return Attr{Key: "name", Value: value}
}

// Type sets the type attribute.
func Type(value string) Attr {
	return Attr{Key: "type", Value: value}
}

// Value sets the value attribute.
func Value(value any) Attr {
	return Attr{Key: "value", Value: value}
}

// Placeholder sets the placeholder attribute.
func Placeholder(value string) Attr {
	return Attr{Key: "placeholder", Value: value}
}

// Rel sets the rel attribute.
func Rel(value string) Attr {
	return Attr{Key: "rel", Value: value}
}

// Content sets the content attribute.
func Content(value string) Attr {
	return Attr{Key: "content", Value: value}
}

// Charset sets the charset attribute.
func Charset(value string) Attr {
	return Attr{Key: "charset", Value: value}
}

// Lang sets the lang attribute.
func Lang(value string) Attr {
	return Attr{Key: "lang", Value: value}
}

// Action sets the action attribute.
func Action(value string) Attr {
	return Attr{Key: "action", Value: value}
}

// Method sets the method attribute.
func Method(value string) Attr {
	return Attr{Key: "method", Value: value}
}

// Disabled sets the disabled attribute.
func Disabled(value bool) Attr {
	return Attr{Key: "disabled", Value: value}
}

// Checked sets the checked attribute.
func Checked(value bool) Attr {
	return Attr{Key: "checked", Value: value}
}

// Data sets a data-* attribute.
func Data(suffix string, value any) Attr {
	return Attr{Key: "data-" + suffix, Value: value}
}

// Defer sets the defer attribute.
func Defer() Attr {
	return Attr{Key: "defer", Value: true}
}
