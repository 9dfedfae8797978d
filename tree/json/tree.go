/*
Package json marshals trees to JSON and back.

A tree is serialized as a JSON object with the following fields:
  - "target": a string with the name of the feature the tree predicts
  - "root": the node at the root of the tree

Nodes nest their subtrees directly and use short keys to keep
the payload small: a decision node carries its split under "s"
and its branches under "l" and "r", a leaf carries its label
under "lbl". Every node records the number of training samples
that reached it ("n"), its confidence or information gain
("conf") and the class distribution of those samples ("dist").
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
)

type jsonTree struct {
	Target string    `json:"target"`
	Root   *jsonNode `json:"root"`
}

/*
EncodeTree takes a pointer to a tree.Tree and returns a slice of
bytes with the tree serialized as JSON, or an error if the tree
cannot be serialized.
*/
func EncodeTree(t *tree.Tree) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot encode a nil tree")
	}
	return json.Marshal(&jsonTree{Target: t.Target, Root: encodeNode(t.Root)})
}

/*
DecodeTree takes a slice of bytes with a JSON-serialized tree and
returns a pointer to the decoded tree.Tree, or an error if the
JSON cannot be parsed or describes an invalid tree: one without a
target or a root, with a decision node missing a branch, or with
a split of an unknown type.
*/
func DecodeTree(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, err
	}
	if jt.Target == "" {
		return nil, fmt.Errorf("no target feature defined")
	}
	if jt.Root == nil {
		return nil, fmt.Errorf("no root node available")
	}
	root, err := decodeNode(jt.Root)
	if err != nil {
		return nil, err
	}
	return tree.New(root, jt.Target), nil
}

/*
WriteJSONTree takes a pointer to a tree.Tree and an io.Writer and
serializes the given tree as JSON onto the io.Writer. An error is
returned if the tree cannot be serialized or written onto the
io.Writer.
*/
func WriteJSONTree(t *tree.Tree, w io.Writer) error {
	data, err := EncodeTree(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

/*
ReadJSONTree takes an io.Reader and returns the tree.Tree decoded
from its contents. An error is returned if the JSON cannot be
read from the io.Reader or does not describe a valid tree.
*/
func ReadJSONTree(r io.Reader) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeTree(data)
}
