// Package jsonutil contains helpers for decoding model output that is
// supposed to be JSON but often arrives wrapped in Markdown fences or with
// loosely typed fields.
package jsonutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidJSON indicates that the model's text could not be decoded as JSON.
var ErrInvalidJSON = errors.New("response is not valid JSON")

// CleanFences strips Markdown code-fence markers from a model response.
// Calling it on already-clean text is a no-op, so the operation is
// idempotent.
func CleanFences(text string) string {
	text = strings.ReplaceAll(text, "```json\n", "")
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```\n", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// Unmarshal strips fences and decodes into dst, mapping decode failures to
// ErrInvalidJSON.
func Unmarshal(text string, dst any) error {
	cleaned := CleanFences(text)
	if err := json.Unmarshal([]byte(cleaned), dst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// FlexString decodes JSON strings, numbers, and booleans into a display
// string. Durations and costs in model output are human-readable text, not
// numbers to compute with, but models occasionally emit them as bare
// numbers anyway.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(strconv.FormatFloat(n, 'f', -1, 64))
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	// Anything else (object, array, null) renders as empty rather than
	// failing the whole parse.
	*f = ""
	return nil
}

// StringList decodes a JSON array of strings, coercing absent or
// wrong-typed values to an empty list instead of failing the parse.
// Non-string elements inside a valid array are stringified when scalar and
// skipped otherwise.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = StringList{}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		var f FlexString
		if err := f.UnmarshalJSON(item); err == nil && f != "" {
			out = append(out, string(f))
		}
	}
	*l = out
	return nil
}

// Strings returns the list as a plain slice, never nil.
func (l StringList) Strings() []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
