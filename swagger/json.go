package swagger

import (
	"bytes"
	"encoding/json"
)

// primitiveTypes are the canonical names of types that are never models.
var primitiveTypes = map[string]bool{
	"boolean": true,
	"byte":    true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"string":  true,
	"Date":    true,
	"void":    true,
}

// IsPrimitive reports whether a canonical type name denotes a primitive
// rather than a model id.
func IsPrimitive(typeName string) bool { return primitiveTypes[typeName] }

type items struct {
	Type string `json:"type,omitempty"`
	Ref  string `json:"$ref,omitempty"`
}

// itemsOf describes the element of a single-argument container. Containers
// with several type arguments, such as maps, have no items.
func itemsOf(containerOf string) *items {
	if containerOf == "" || hasTopLevelComma(containerOf) {
		return nil
	}
	if IsPrimitive(containerOf) {
		return &items{Type: containerOf}
	}
	return &items{Ref: containerOf}
}

// hasTopLevelComma reports a comma outside the brackets of generic names
// such as "Page[Tag, User]".
func hasTopLevelComma(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler for Property.
// Enumeration properties emit only their constants.
func (p Property) MarshalJSON() ([]byte, error) {
	if p.IsEnum() {
		return json.Marshal(&struct {
			Enum []string `json:"enum"`
		}{
			Enum: p.Enum,
		})
	}
	return json.Marshal(&struct {
		Type        string `json:"type"`
		Description string `json:"description,omitempty"`
		Items       *items `json:"items,omitempty"`
	}{
		Type:        p.Type,
		Description: p.Description,
		Items:       itemsOf(p.ContainerOf),
	})
}

// MarshalJSON implements json.Marshaler for Model.
// Properties are written in insertion order.
func (m *Model) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	if err := writeJSON(&buf, m.ID); err != nil {
		return nil, err
	}
	buf.WriteString(`,"properties":{`)
	for i, p := range m.properties {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, p.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, p); err != nil {
			return nil, err
		}
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for ModelSet.
// The set is written as an object keyed by model ID, in insertion order.
func (s *ModelSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range s.Models() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, m.ID); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, m); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler for Parameter.
func (p Parameter) MarshalJSON() ([]byte, error) {
	kind := p.Kind
	if kind == ParamNone {
		kind = ParamBody
	}
	return json.Marshal(&struct {
		ParamType   ParamKind `json:"paramType"`
		Name        string    `json:"name"`
		Description string    `json:"description,omitempty"`
		Type        string    `json:"type"`
	}{
		ParamType:   kind,
		Name:        p.Name,
		Description: p.Description,
		Type:        p.Type,
	})
}

// MarshalJSON implements json.Marshaler for Operation.
// The path is carried by the enclosing API and is not repeated.
func (o *Operation) MarshalJSON() ([]byte, error) {
	params := o.Parameters
	if params == nil {
		params = []Parameter{}
	}
	return json.Marshal(&struct {
		Method           HTTPMethod        `json:"method"`
		Nickname         string            `json:"nickname"`
		Type             string            `json:"type"`
		Parameters       []Parameter       `json:"parameters"`
		Summary          string            `json:"summary,omitempty"`
		Notes            string            `json:"notes,omitempty"`
		ResponseMessages []ResponseMessage `json:"responseMessages,omitempty"`
	}{
		Method:           o.Method,
		Nickname:         o.Name,
		Type:             o.ReturnType,
		Parameters:       params,
		Summary:          o.Summary,
		Notes:            o.Notes,
		ResponseMessages: o.ResponseMessages,
	})
}

func writeJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
