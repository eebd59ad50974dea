package model

import (
	"time"
)

// Message represents one annotated training example: a text plus the named
// properties attached to it by loaders and pipeline stages.
type Message struct {
	Text             string     `json:"text"`
	Data             Data       `json:"data,omitempty"`
	OutputProperties Set        `json:"output_properties,omitempty"`
	Time             *time.Time `json:"time,omitempty"`
}

// NewMessage creates a Message with its own containers, so two messages never
// alias the same nested data.
func NewMessage(text string, data Data) *Message {
	if data == nil {
		data = Data{}
	}
	return &Message{
		Text:             text,
		Data:             data,
		OutputProperties: Set{},
	}
}

// Set overwrites the property unconditionally. With addToOutput the property
// is also marked for external serialization.
func (m *Message) Set(property string, value any, addToOutput bool) {
	m.Data[property] = value
	if addToOutput {
		m.OutputProperties.Add(property)
	}
}

// Update merges the value into an existing property or inserts it when
// absent. Sequences are appended to, mappings and sets are unioned in place.
// A kind mismatch or a scalar-on-scalar call returns false and leaves the
// data untouched.
func (m *Message) Update(property string, value any, addToOutput bool) bool {
	if existing, ok := m.Data[property]; ok {
		merged, ok := merge(existing, value)
		if !ok {
			return false
		}
		m.Data[property] = merged
	} else {
		m.Data[property] = value
	}
	if addToOutput {
		m.OutputProperties.Add(property)
	}
	return true
}

// Get returns the property value, or nil when absent.
func (m *Message) Get(property string) any {
	return m.Data[property]
}

// GetDefault returns the property value, or the default when absent.
func (m *Message) GetDefault(property string, def any) any {
	if value, ok := m.Data[property]; ok {
		return value
	}
	return def
}

// AsDict projects the message data to a plain mapping. With
// onlyOutputProperties only the marked properties are included. The result
// always carries the text under "text".
func (m *Message) AsDict(onlyOutputProperties bool) Data {
	d := Data{}
	for key, value := range m.Data {
		if onlyOutputProperties && !m.OutputProperties.Contains(key) {
			continue
		}
		d[key] = value
	}
	d["text"] = m.Text
	return d
}

// Equal reports whether two messages carry the same text and the same data
// under canonical form, ignoring container insertion order.
func (m *Message) Equal(other *Message) bool {
	if other == nil {
		return false
	}
	return m.Text == other.Text &&
		CanonicalString(m.Data) == CanonicalString(other.Data)
}

// Fingerprint hashes text and canonical data, so equal messages always hash
// equally.
func (m *Message) Fingerprint() uint64 {
	return Fingerprint([]any{m.Text, Canonical(m.Data)})
}
