package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/nodeutil"
)

// jsonNumberPattern matches number text that is valid JSON as written.
var jsonNumberPattern = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][-+]?[0-9]+)?$`)

// MarshalOrderedJSON marshals the document to compact JSON with fields
// in the same order as the source document.
func (d *Document) MarshalOrderedJSON() ([]byte, error) {
	return MarshalNodeJSON(d.Root)
}

// MarshalOrderedJSONIndent marshals the document to indented JSON
// with fields in the same order as the source document.
//
// Example:
//
//	doc, _ := parser.New().Parse("api.yaml")
//	out, _ := doc.MarshalOrderedJSONIndent("", "  ")
func (d *Document) MarshalOrderedJSONIndent(prefix, indent string) ([]byte, error) {
	return MarshalNodeJSONIndent(d.Root, prefix, indent)
}

// MarshalOrderedYAML marshals the document to block-style YAML with fields
// in the same order as the source document.
func (d *Document) MarshalOrderedYAML() ([]byte, error) {
	return MarshalNodeYAML(d.Root)
}

// Marshal renders the document in the requested format: YAML for
// SourceFormatYAML, two-space indented JSON with a trailing newline otherwise.
func (d *Document) Marshal(format SourceFormat) ([]byte, error) {
	if format == SourceFormatYAML {
		return d.MarshalOrderedYAML()
	}
	out, err := d.MarshalOrderedJSONIndent("", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// MarshalNodeJSON writes a value tree as compact JSON. Mapping keys are
// emitted in node order; '<', '>' and '&' are not escaped and non-ASCII
// text is written as-is.
func MarshalNodeJSON(n *yaml.Node) ([]byte, error) {
	w := newJSONWriter()
	if err := w.write(n); err != nil {
		return nil, err
	}
	return w.buf.Bytes(), nil
}

// MarshalNodeJSONIndent is like MarshalNodeJSON but applies indentation.
func MarshalNodeJSONIndent(n *yaml.Node, prefix, indent string) ([]byte, error) {
	data, err := MarshalNodeJSON(n)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalNodeYAML writes a value tree as block-style YAML. The input is not modified.
func MarshalNodeYAML(n *yaml.Node) ([]byte, error) {
	n = nodeutil.Resolve(n)
	if n == nil {
		return []byte("null\n"), nil
	}
	out := nodeutil.Clone(n)
	blockStyle(out)
	return yaml.Marshal(out)
}

// blockStyle clears flow styling so collections that came from JSON text
// are rendered as block YAML.
func blockStyle(n *yaml.Node) {
	if n.Kind == yaml.MappingNode || n.Kind == yaml.SequenceNode {
		n.Style &^= yaml.FlowStyle
	}
	for _, c := range n.Content {
		blockStyle(c)
	}
}

type jsonWriter struct {
	buf     bytes.Buffer
	scratch bytes.Buffer
	enc     *json.Encoder
}

func newJSONWriter() *jsonWriter {
	w := &jsonWriter{}
	w.enc = json.NewEncoder(&w.scratch)
	w.enc.SetEscapeHTML(false)
	return w
}

func (w *jsonWriter) write(n *yaml.Node) error {
	n = nodeutil.Resolve(n)
	if n == nil {
		w.buf.WriteString("null")
		return nil
	}

	switch n.Kind {
	case yaml.MappingNode:
		w.buf.WriteByte('{')
		for i, p := range nodeutil.Pairs(n) {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.writeString(p.Key); err != nil {
				return err
			}
			w.buf.WriteByte(':')
			if err := w.write(p.Value); err != nil {
				return fmt.Errorf("%s: %w", p.Key, err)
			}
		}
		w.buf.WriteByte('}')
		return nil

	case yaml.SequenceNode:
		w.buf.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				w.buf.WriteByte(',')
			}
			if err := w.write(item); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		w.buf.WriteByte(']')
		return nil

	case yaml.ScalarNode:
		return w.writeScalar(n)

	default:
		return fmt.Errorf("unsupported node kind %v", n.Kind)
	}
}

func (w *jsonWriter) writeScalar(n *yaml.Node) error {
	switch nodeutil.ScalarTag(n) {
	case nodeutil.TagNull:
		w.buf.WriteString("null")
	case nodeutil.TagBool:
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return w.writeString(n.Value)
		}
		w.buf.WriteString(strconv.FormatBool(b))
	case nodeutil.TagInt:
		if jsonNumberPattern.MatchString(n.Value) {
			w.buf.WriteString(n.Value)
			return nil
		}
		i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64)
		if err != nil {
			return w.writeString(n.Value)
		}
		w.buf.WriteString(strconv.FormatInt(i, 10))
	case nodeutil.TagFloat:
		if jsonNumberPattern.MatchString(n.Value) {
			w.buf.WriteString(n.Value)
			return nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err != nil {
			// .inf and .nan have no JSON form
			return fmt.Errorf("cannot encode %q as a JSON number", n.Value)
		}
		w.buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	default:
		return w.writeString(n.Value)
	}
	return nil
}

func (w *jsonWriter) writeString(s string) error {
	w.scratch.Reset()
	if err := w.enc.Encode(s); err != nil {
		return err
	}
	w.buf.Write(unescapeLineSeparators(bytes.TrimSuffix(w.scratch.Bytes(), []byte("\n"))))
	return nil
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes encoding/json
// always applies back into raw U+2028 and U+2029. Escaped backslashes are
// skipped as a pair so a literal "\\u2028" in the text is left alone.
func unescapeLineSeparators(enc []byte) []byte {
	if !bytes.Contains(enc, []byte(`\u202`)) {
		return enc
	}
	out := make([]byte, 0, len(enc))
	for i := 0; i < len(enc); i++ {
		if enc[i] != '\\' || i+1 >= len(enc) {
			out = append(out, enc[i])
			continue
		}
		if enc[i+1] == 'u' && i+5 < len(enc) && string(enc[i+2:i+5]) == "202" && (enc[i+5] == '8' || enc[i+5] == '9') {
			out = utf8.AppendRune(out, rune(0x2020+int(enc[i+5]-'0')))
			i += 5
			continue
		}
		out = append(out, enc[i], enc[i+1])
		i++
	}
	return out
}
