package main

import (
	"context"
	"fmt"
	"os"

	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree"
	treejson "github.com/farazjawedd/XAI-FINAL-PROJ/tree/json"
	"github.com/farazjawedd/XAI-FINAL-PROJ/tree/redisstore"
	redis "gopkg.in/redis.v5"
)

const registryKeyPrefix = "xai"

/*
openRegistry takes a redis URL and returns the model registry
backed by it.
*/
func openRegistry(url string) (tree.Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing registry URL %s: %v", url, err)
	}
	return redisstore.New(redis.NewClient(opts), registryKeyPrefix, treejson.NewModelEncodeDecoder()), nil
}

/*
findModel takes a registry and an ID or name and returns the
stored model it identifies. Lookup is by ID first, falling back
to matching model names; when several models share a name the
newest one wins.
*/
func findModel(ctx context.Context, store tree.Store, idOrName string) (*tree.Model, error) {
	m, err := store.Load(ctx, idOrName)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %v", idOrName, err)
	}
	if m != nil {
		return m, nil
	}
	models, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing models: %v", err)
	}
	for _, listed := range models {
		// List is oldest first, so the last match is the newest
		if listed.Name == idOrName {
			m = listed
		}
	}
	if m == nil {
		return nil, fmt.Errorf("no model with ID or name %s in the registry", idOrName)
	}
	return m, nil
}

/*
validateTreeSource checks the flags commands that need a grown
tree take: exactly one of the tree and model flags, with the
model flag requiring a registry to look it up in.
*/
func validateTreeSource(treeInput, registryURL, modelRef string) error {
	if treeInput == "" && modelRef == "" {
		return fmt.Errorf("either the tree or the model flag must be set")
	}
	if treeInput != "" && modelRef != "" {
		return fmt.Errorf("the tree and model flags cannot be set at the same time")
	}
	if modelRef != "" && registryURL == "" {
		return fmt.Errorf("required registry flag was not set: the model flag loads from a registry")
	}
	return nil
}

/*
resolveTree loads the tree the flags point to: a JSON file when
the tree flag is set, a registry model otherwise. For a registry
model the features it was grown on are returned along the tree.
*/
func resolveTree(rcc *rootCmdConfig, treeInput, registryURL, modelRef string) (*tree.Tree, []feature.Feature, error) {
	if modelRef == "" {
		t, err := loadTree(treeInput)
		return t, nil, err
	}
	store, err := openRegistry(registryURL)
	if err != nil {
		return nil, nil, err
	}
	defer store.Close(rcc.Context())
	rcc.Logf("Loading model %s from the registry at %s...", modelRef, registryURL)
	m, err := findModel(rcc.Context(), store, modelRef)
	if err != nil {
		return nil, nil, err
	}
	return m.Tree, m.Features, nil
}

func loadTree(filepath string) (*tree.Tree, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading tree in JSON from %s: %v", filepath, err)
	}
	defer f.Close()
	t, err := treejson.ReadJSONTree(f)
	if err != nil {
		return nil, fmt.Errorf("parsing tree in JSON from %s: %v", filepath, err)
	}
	return t, nil
}
