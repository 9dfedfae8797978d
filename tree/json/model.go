package json

import (
	"encoding/json"
	"fmt"
	"time"

	featurejson "github.com/farazjawedd/XAI-FINAL-PROJ/feature/json"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
)

/*
ModelEncodeDecoder is an interface for objects that allow
encoding models into slices of bytes and decoding them back to
models.
*/
type ModelEncodeDecoder interface {

	//Encode receives a *tree.Model and returns a slice
	//of bytes with the model encoded or an error if the
	//encoding could not be performed for some reason.
	Encode(*tree.Model) ([]byte, error)

	//Decode receives a slice of bytes and returns a
	//*tree.Model decoded from the slice of bytes or an
	//error if the decoding could not be performed for
	//some reason.
	Decode([]byte) (*tree.Model, error)
}

type modelEncodeDecoder struct{}

type jsonModel struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Target    string          `json:"target"`
	Features  json.RawMessage `json:"features"`
	Tree      json.RawMessage `json:"tree"`
	CreatedAt time.Time       `json:"createdAt"`
}

/*
NewModelEncodeDecoder returns a ModelEncodeDecoder that marshals
and unmarshals models into/from slices of bytes as JSON, encoding
the model's features with this package's feature serialization
and its tree with EncodeTree.
*/
func NewModelEncodeDecoder() ModelEncodeDecoder {
	return &modelEncodeDecoder{}
}

func (med *modelEncodeDecoder) Encode(m *tree.Model) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("cannot encode a nil model")
	}
	features, err := featurejson.EncodeFeatures(m.Features)
	if err != nil {
		return nil, fmt.Errorf("encoding model features: %v", err)
	}
	t, err := EncodeTree(m.Tree)
	if err != nil {
		return nil, fmt.Errorf("encoding model tree: %v", err)
	}
	return json.Marshal(&jsonModel{
		ID:        m.ID,
		Name:      m.Name,
		Target:    m.Target,
		Features:  json.RawMessage(features),
		Tree:      json.RawMessage(t),
		CreatedAt: m.CreatedAt,
	})
}

func (med *modelEncodeDecoder) Decode(data []byte) (*tree.Model, error) {
	jm := &jsonModel{}
	err := json.Unmarshal(data, jm)
	if err != nil {
		return nil, err
	}
	features, err := featurejson.DecodeFeatures(jm.Features)
	if err != nil {
		return nil, fmt.Errorf("decoding model features: %v", err)
	}
	t, err := DecodeTree(jm.Tree)
	if err != nil {
		return nil, fmt.Errorf("decoding model tree: %v", err)
	}
	return &tree.Model{
		ID:        jm.ID,
		Name:      jm.Name,
		Target:    jm.Target,
		Features:  features,
		Tree:      t,
		CreatedAt: jm.CreatedAt,
	}, nil
}
