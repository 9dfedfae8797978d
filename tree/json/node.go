package json

import (
	"fmt"

	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
)

type jsonNode struct {
	Split        *jsonSplit     `json:"s,omitempty"`
	Left         *jsonNode      `json:"l,omitempty"`
	Right        *jsonNode      `json:"r,omitempty"`
	Label        string         `json:"lbl,omitempty"`
	Confidence   float64        `json:"conf,omitempty"`
	Samples      int            `json:"n,omitempty"`
	Distribution map[string]int `json:"dist,omitempty"`
}

type jsonSplit struct {
	Type      string  `json:"t"`
	Feature   string  `json:"f"`
	Threshold float64 `json:"th,omitempty"`
	Value     string  `json:"v,omitempty"`
}

func encodeNode(n *tree.Node) *jsonNode {
	if n == nil {
		return nil
	}
	jn := &jsonNode{
		Label:        n.Label,
		Confidence:   n.Confidence,
		Samples:      n.Samples,
		Distribution: n.Distribution,
		Left:         encodeNode(n.Left),
		Right:        encodeNode(n.Right),
	}
	if n.Split != nil {
		jn.Split = encodeSplit(n.Split)
	}
	return jn
}

func encodeSplit(s *tree.Split) *jsonSplit {
	js := &jsonSplit{Feature: s.Feature}
	switch s.Kind {
	case tree.Numeric:
		js.Type = "numeric"
		js.Threshold = s.Threshold
	case tree.Categorical:
		js.Type = "categorical"
		js.Value = s.Category
	}
	return js
}

func decodeNode(jn *jsonNode) (*tree.Node, error) {
	if jn == nil {
		return nil, nil
	}
	n := &tree.Node{
		Label:        jn.Label,
		Confidence:   jn.Confidence,
		Samples:      jn.Samples,
		Distribution: jn.Distribution,
	}
	if jn.Split != nil {
		s, err := decodeSplit(jn.Split)
		if err != nil {
			return nil, err
		}
		n.Split = s
		if jn.Left == nil || jn.Right == nil {
			return nil, fmt.Errorf("decision node on feature '%s' is missing a branch", s.Feature)
		}
	}
	var err error
	n.Left, err = decodeNode(jn.Left)
	if err != nil {
		return nil, err
	}
	n.Right, err = decodeNode(jn.Right)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func decodeSplit(js *jsonSplit) (*tree.Split, error) {
	s := &tree.Split{Feature: js.Feature}
	switch js.Type {
	case "numeric":
		s.Kind = tree.Numeric
		s.Threshold = js.Threshold
	case "categorical":
		s.Kind = tree.Categorical
		s.Category = js.Value
	default:
		return nil, fmt.Errorf("unknown split type '%s' on feature '%s'", js.Type, js.Feature)
	}
	return s, nil
}
