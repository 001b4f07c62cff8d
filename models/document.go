// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDocumentField is returned while decoding a document when one of
// the well-known fields has a value of an unexpected type.
var ErrInvalidDocumentField = errors.New("invalid document field")

// Attributes holds the schema-less part of a stored document: every field the
// client sent that has no dedicated column. It is persisted as JSONB.
type Attributes map[string]any

// Value implements [driver.Valuer]. A nil map is stored as an empty object.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}

	data, err := json.Marshal(map[string]any(a))
	if err != nil {
		return nil, fmt.Errorf("error marshaling attributes: %w", err)
	}

	return data, nil
}

// Scan implements [sql.Scanner] for JSONB columns.
func (a *Attributes) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*a = Attributes{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Attributes", src)
	}

	attrs := Attributes{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &attrs); err != nil {
			return fmt.Errorf("error unmarshaling attributes: %w", err)
		}
	}
	*a = attrs

	return nil
}

// Amount is a monetary value. It decodes from a JSON number or from a string
// holding a number, since listing forms frequently submit prices as text.
type Amount float64

// NewAmount returns v as an optional Amount.
func NewAmount(v float64) *Amount {
	a := Amount(v)
	return &a
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*a = Amount(value)
		return nil
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return fmt.Errorf("%w: amount %q is not a number", ErrInvalidDocumentField, value)
		}
		*a = Amount(parsed)
		return nil
	default:
		return fmt.Errorf("%w: amount must be a number", ErrInvalidDocumentField)
	}
}

// document is the decoded form of a JSON object split into the fields a model
// knows about and the rest.
type document struct {
	fields map[string]json.RawMessage
}

func decodeDocument(b []byte) (document, error) {
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(b, &fields); err != nil {
		return document{}, err
	}
	if fields == nil {
		return document{}, fmt.Errorf("%w: document must be a JSON object", ErrInvalidDocumentField)
	}
	return document{fields: fields}, nil
}

// take decodes the first of keys whose value fits dst and removes it from the
// document. Values that are null or of another type stay in the document and
// end up in the attributes unchanged.
func (d document) take(dst any, keys ...string) bool {
	for _, key := range keys {
		raw, ok := d.fields[key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			continue
		}
		delete(d.fields, key)
		return true
	}
	return false
}

// drop removes keys the client may not set.
func (d document) drop(keys ...string) {
	for _, key := range keys {
		delete(d.fields, key)
	}
}

// takeString is take for non-empty strings. An empty string is left in the
// document.
func (d document) takeString(dst *string, keys ...string) {
	for _, key := range keys {
		var value string
		if raw, ok := d.fields[key]; !ok || json.Unmarshal(raw, &value) != nil || value == "" {
			continue
		}
		delete(d.fields, key)
		*dst = value
		return
	}
}

// takeAmount sets dst when key holds a number or a numeric string.
func (d document) takeAmount(dst **Amount, key string) {
	var amount Amount
	if d.take(&amount, key) {
		*dst = &amount
	}
}

// takeTime decodes an RFC 3339 timestamp. Any other value is left in the
// document and dst is untouched.
func (d document) takeTime(dst *time.Time, key string) {
	var raw string
	if rawJSON, ok := d.fields[key]; !ok || json.Unmarshal(rawJSON, &raw) != nil {
		return
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return
	}
	delete(d.fields, key)
	*dst = parsed
}

// rest returns the remaining fields as attributes.
func (d document) rest() (Attributes, error) {
	attrs := make(Attributes, len(d.fields))
	for key, raw := range d.fields {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocumentField, key, err)
		}
		attrs[key] = v
	}
	return attrs, nil
}

// encodeDocument flattens attributes and known fields into a single JSON
// object. Known fields win over attributes with the same name.
func encodeDocument(attrs Attributes, known map[string]any) ([]byte, error) {
	out := make(map[string]any, len(attrs)+len(known))
	for key, value := range attrs {
		out[key] = value
	}
	for key, value := range known {
		out[key] = value
	}
	return json.Marshal(out)
}
