package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasreduce/internal/nodeutil"
)

// decodeJSONNode decodes JSON text into a node tree that keeps object key
// order and the exact text of numbers. A repeated key keeps its first
// position and takes the last value, matching common JSON decoders.
func decodeJSONNode(data []byte) (*yaml.Node, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := readJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}
	return root, nil
}

func readJSONValue(dec *json.Decoder) (*yaml.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return readJSONObject(dec)
		case '[':
			return readJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q at offset %d", v, dec.InputOffset())
		}
	case string:
		return nodeutil.NewString(v), nil
	case json.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: numberTag(v), Value: v.String()}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nodeutil.TagBool, Value: strconv.FormatBool(v)}, nil
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nodeutil.TagNull, Value: "null"}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func readJSONObject(dec *json.Decoder) (*yaml.Node, error) {
	m := nodeutil.NewMapping()
	var index map[string]int
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", keyTok)
		}
		val, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		if i, dup := index[key]; dup {
			m.Content[i+1] = val
			continue
		}
		if index == nil {
			index = make(map[string]int)
		}
		index[key] = len(m.Content)
		m.Content = append(m.Content, nodeutil.NewString(key), val)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func readJSONArray(dec *json.Decoder) (*yaml.Node, error) {
	s := &yaml.Node{Kind: yaml.SequenceNode, Tag: nodeutil.TagSeq}
	for dec.More() {
		val, err := readJSONValue(dec)
		if err != nil {
			return nil, err
		}
		s.Content = append(s.Content, val)
	}
	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return s, nil
}

func numberTag(n json.Number) string {
	if strings.ContainsAny(n.String(), ".eE") {
		return nodeutil.TagFloat
	}
	return nodeutil.TagInt
}
