package nodetree

import "sort"

// Properties is an unordered set of property names to values, carrying game or tool data on a Node. The glTF loader
// fills it from each node's extras.
type Properties struct {
	props map[string]*Property
}

// NewProperties returns a new Properties object.
func NewProperties() *Properties {
	return &Properties{map[string]*Property{}}
}

// Clone returns a copy of the Properties. Values are copied shallowly.
func (props *Properties) Clone() *Properties {
	newProps := NewProperties()
	for k, v := range props.props {
		newProps.Get(k).Set(v.Value)
	}
	return newProps
}

// Clear removes every property.
func (props *Properties) Clear() {
	props.props = map[string]*Property{}
}

// Remove removes the property specified.
func (props *Properties) Remove(name string) {
	delete(props.props, name)
}

// Has returns true if a property exists under every name given.
func (props *Properties) Has(names ...string) bool {
	for _, n := range names {
		if _, exists := props.props[n]; !exists {
			return false
		}
	}
	return true
}

// Get returns the property with the name given, creating an empty one if it doesn't exist yet.
func (props *Properties) Get(name string) *Property {
	if _, ok := props.props[name]; !ok {
		props.props[name] = &Property{}
	}
	return props.props[name]
}

// Names returns the names of all properties, sorted.
func (props *Properties) Names() []string {
	names := make([]string, 0, len(props.props))
	for n := range props.props {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of properties.
func (props *Properties) Count() int {
	return len(props.props)
}

// Property represents a single named value in a Properties set.
type Property struct {
	Value any
}

// Set sets the property's value to the given value.
func (prop *Property) Set(value any) {
	prop.Value = value
}

// IsBool returns true if the Property is a boolean value.
func (prop *Property) IsBool() bool {
	_, ok := prop.Value.(bool)
	return ok
}

// AsBool returns the value as a bool, or false if it isn't one.
func (prop *Property) AsBool() bool {
	v, _ := prop.Value.(bool)
	return v
}

// IsString returns true if the Property is a string.
func (prop *Property) IsString() bool {
	_, ok := prop.Value.(string)
	return ok
}

// AsString returns the value as a string, or "" if it isn't one.
func (prop *Property) AsString() string {
	v, _ := prop.Value.(string)
	return v
}

// IsFloat64 returns true if the Property is a float64. Numbers decoded from JSON extras are always float64.
func (prop *Property) IsFloat64() bool {
	_, ok := prop.Value.(float64)
	return ok
}

// AsFloat64 returns the value as a float64, or 0 if it isn't one.
func (prop *Property) AsFloat64() float64 {
	v, _ := prop.Value.(float64)
	return v
}
