/*
Package mongodataset stores datasets in a MongoDB database.

Records are stored as documents of a samples collection on the
session's default database, one field per feature. An undefined
value is an absent field. Each feature gets a sparse index so that
value counting stays cheap on large collections.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/farazjawedd/XAI-FINAL-PROJ/dataset"
	"github.com/farazjawedd/XAI-FINAL-PROJ/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const samplesCollectionName = "samples"

// DialTimeout is the time Dial waits to establish a connection
// to a MongoDB server before giving up.
const DialTimeout = 10 * time.Second

/*
Set is a dataset stored on a MongoDB database. Records can be
written to it and read back, either streamed or loaded whole into
a dataset.Dataset.
*/
type Set struct {
	session  *mgo.Session
	features []feature.Feature
}

/*
Dial takes a MongoDB connection URL, whose path selects the
database to use, and a slice of feature.Feature, and returns a Set
working on that database or an error if the connection cannot be
established.
*/
func Dial(url string, features []feature.Feature) (*Set, error) {
	session, err := mgo.DialWithTimeout(url, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %v", url, err)
	}
	session.SetSafe(&mgo.Safe{})
	s, err := Open(session, features)
	if err != nil {
		session.Close()
		return nil, err
	}
	return s, nil
}

/*
Open takes a MongoDB database session and a slice of
feature.Feature and returns a Set that works on the default
database for that session, or an error if a feature cannot be
stored as a document field or its index cannot be ensured.
*/
func Open(session *mgo.Session, features []feature.Feature) (*Set, error) {
	s := &Set{session: session, features: features}
	err := s.ensureIndexes()
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
Features returns the features whose values the set stores, in
column order.
*/
func (s *Set) Features() []feature.Feature {
	return s.features
}

/*
Write takes a slice of dataset.Record and stores them as documents
on the samples collection. It returns the number of records
actually written and, when not all could be written, an error
describing the problem. Values missing from a record are left out
of its document.
*/
func (s *Set) Write(ctx context.Context, records []dataset.Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	docs := make([]interface{}, 0, len(records))
	for i, r := range records {
		doc := make(bson.M, len(s.features))
		for _, f := range s.features {
			v, ok := r[f.Name()]
			if !ok || v == nil {
				continue
			}
			valid, err := f.Valid(v)
			if err != nil {
				return 0, fmt.Errorf("encoding record %d: %v", i, err)
			}
			if !valid {
				return 0, fmt.Errorf("encoding record %d: value %v is not valid for feature %s", i, v, f.Name())
			}
			doc[f.Name()] = v
		}
		docs = append(docs, doc)
	}
	err := s.samples().Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("writing records: %v", err)
	}
	return len(records), nil
}

/*
Read returns a channel over which the stored records are sent and
a channel over which at most one error is sent. Both channels are
closed when the read ends, whether exhausted, failed or cancelled
through the context.
*/
func (s *Set) Read(ctx context.Context) (<-chan dataset.Record, <-chan error) {
	recordc := make(chan dataset.Record)
	errc := make(chan error, 1)
	go func() {
		defer close(recordc)
		defer close(errc)
		var doc bson.M
		iter := s.samples().Find(nil).Iter()
		defer iter.Close()
		for iter.Next(&doc) {
			select {
			case recordc <- s.record(doc):
			case <-ctx.Done():
				errc <- fmt.Errorf("reading records: %v", ctx.Err())
				return
			}
			doc = bson.M{}
		}
		if err := iter.Err(); err != nil {
			errc <- fmt.Errorf("reading records: %v", err)
		}
	}()
	return recordc, errc
}

/*
Dataset loads every stored record and returns them as an in-memory
dataset.Dataset with the set's features as columns. Records with
undefined values are skipped and counted on the second return value,
because the tree grower requires every record to define every column.
*/
func (s *Set) Dataset(ctx context.Context) (*dataset.Dataset, int, error) {
	var records []dataset.Record
	skipped := 0
	recordc, errc := s.Read(ctx)
	for r := range recordc {
		if len(r) < len(s.features) {
			skipped++
			continue
		}
		records = append(records, r)
	}
	if err := <-errc; err != nil {
		return nil, skipped, err
	}
	columns := make([]string, len(s.features))
	for i, f := range s.features {
		columns[i] = f.Name()
	}
	return dataset.New(columns, records), skipped, nil
}

/*
Count returns the number of records stored on the set.
*/
func (s *Set) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := s.samples().Find(bson.M{}).Count()
	if err != nil {
		return 0, fmt.Errorf("counting records: %v", err)
	}
	return n, nil
}

/*
CountValues takes the name of a categorical feature of the set and
returns the number of records stored per value of the feature,
computed with an aggregation on the samples collection. Records
with the value undefined are not counted.
*/
func (s *Set) CountValues(ctx context.Context, featureName string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f := s.feature(featureName)
	if f == nil {
		return nil, fmt.Errorf("counting values: unknown feature %s", featureName)
	}
	if _, ok := f.(*feature.CategoricalFeature); !ok {
		return nil, fmt.Errorf("counting values: feature %s is not categorical", featureName)
	}
	iter := s.samples().Pipe([]bson.M{
		{"$match": bson.M{featureName: bson.M{"$exists": true}}},
		{"$group": bson.M{"_id": fmt.Sprintf("$%s", featureName), "count": bson.M{"$sum": 1}}},
	}).Iter()
	defer iter.Close()
	var doc bson.M
	result := make(map[string]int)
	for iter.Next(&doc) {
		count, ok := doc["count"].(int)
		if !ok {
			return nil, fmt.Errorf("counting values of %s: aggregation returned a %T instead of an int as count", featureName, doc["count"])
		}
		result[fmt.Sprintf("%v", doc["_id"])] = count
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("counting values of %s: %v", featureName, err)
	}
	return result, nil
}

/*
Close closes the set's database session. The set cannot be used
after it has been closed.
*/
func (s *Set) Close() error {
	s.session.Close()
	return nil
}

func (s *Set) ensureIndexes() error {
	for _, f := range s.features {
		fName := f.Name()
		if fName == "_id" {
			return fmt.Errorf("invalid feature name %q: reserved collection field", fName)
		}
		if strings.ContainsAny(fName, ".$") {
			return fmt.Errorf("invalid feature name %q: contains reserved characters %q or %q", fName, ".", "$")
		}
		index := mgo.Index{
			Key:        []string{fName},
			Background: true,
			Sparse:     true,
		}
		err := s.samples().EnsureIndex(index)
		if err != nil {
			return fmt.Errorf("ensuring index on %s: %v", fName, err)
		}
	}
	return nil
}

func (s *Set) record(doc bson.M) dataset.Record {
	r := make(dataset.Record, len(s.features))
	for _, f := range s.features {
		v, ok := doc[f.Name()]
		if !ok || v == nil {
			continue
		}
		if _, numeric := f.(*feature.NumericFeature); numeric {
			switch n := v.(type) {
			case float64:
				r[f.Name()] = n
			case int:
				r[f.Name()] = float64(n)
			case int64:
				r[f.Name()] = float64(n)
			default:
				continue
			}
			continue
		}
		r[f.Name()] = fmt.Sprintf("%v", v)
	}
	return r
}

func (s *Set) feature(name string) feature.Feature {
	for _, f := range s.features {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func (s *Set) samples() *mgo.Collection {
	return s.session.DB("").C(samplesCollectionName)
}
