package conduit

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToYAML renders the tree rooted at n as YAML, preserving child order.
// Single-element numeric leaves render as scalars, others as flow sequences.
func (n *Node) ToYAML() (string, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{n.yamlNode()}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n *Node) yamlNode() *yaml.Node {
	switch {
	case n.IsObject():
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, c := range n.children {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.name}
			m.Content = append(m.Content, key, c.yamlNode())
		}
		return m
	case n.dtype.ID == Char8StrID:
		s, _ := n.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
	case n.IsLeaf():
		elems := n.formatElements()
		if len(elems) == 1 {
			return elems[0].yaml()
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, e := range elems {
			seq.Content = append(seq.Content, e.yaml())
		}
		return seq
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// ToJSON renders the tree rooted at n as indented JSON, preserving child
// order. Non-finite floats render as strings.
func (n *Node) ToJSON() (string, error) {
	var compact bytes.Buffer
	if err := n.writeJSON(&compact); err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	switch {
	case n.IsObject():
		buf.WriteByte('{')
		for i, c := range n.children {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(c.name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := c.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case n.dtype.ID == Char8StrID:
		s, _ := n.AsString()
		b, err := json.Marshal(s)
		if err != nil {
			return err
		}
		buf.Write(b)
	case n.IsLeaf():
		elems := n.formatElements()
		if len(elems) == 1 {
			buf.WriteString(elems[0].json())
			return nil
		}
		buf.WriteByte('[')
		for i, e := range elems {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(e.json())
		}
		buf.WriteByte(']')
	default:
		buf.WriteString("null")
	}
	return nil
}

// formattedElement is a rendered number; quoted marks non-finite floats.
type formattedElement struct {
	text   string
	quoted bool
}

func (e formattedElement) yaml() *yaml.Node {
	if e.quoted {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: e.text}
	}
	tag := "!!int"
	if _, err := strconv.ParseInt(e.text, 10, 64); err != nil {
		if _, err := strconv.ParseUint(e.text, 10, 64); err != nil {
			tag = "!!float"
		}
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: e.text}
}

func (e formattedElement) json() string {
	if e.quoted {
		return strconv.Quote(e.text)
	}
	return e.text
}

func (n *Node) formatElements() []formattedElement {
	out := make([]formattedElement, n.dtype.NumElements)
	id := n.dtype.ID
	for i := range out {
		switch {
		case id.IsSignedInteger():
			v, _ := n.Int64At(i)
			out[i] = formattedElement{text: strconv.FormatInt(v, 10)}
		case id.IsUnsignedInteger():
			v, _ := n.Uint64At(i)
			out[i] = formattedElement{text: strconv.FormatUint(v, 10)}
		default:
			v, _ := n.Float64At(i)
			out[i] = formatFloat(v, id)
		}
	}
	return out
}

func formatFloat(v float64, id TypeID) formattedElement {
	switch {
	case math.IsNaN(v):
		return formattedElement{text: ".nan", quoted: true}
	case math.IsInf(v, 1):
		return formattedElement{text: ".inf", quoted: true}
	case math.IsInf(v, -1):
		return formattedElement{text: "-.inf", quoted: true}
	}
	bits := 64
	if id == Float32ID {
		bits = 32
	}
	s := strconv.FormatFloat(v, 'g', -1, bits)
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		// keep floats distinguishable from integers
		s += ".0"
	}
	return formattedElement{text: s}
}
