package feature

import "fmt"

/*
Feature represents a column of a dataset that can be used
to split it: a property every record is expected to define.
*/
type Feature interface {
	Name() string
	Valid(interface{}) (bool, error)
}

/*
CategoricalFeature represents a property that can only take
a value among a finite set of category labels.

The order of the category labels is preserved as declared or
first observed, and is part of the behavior of split search.
*/
type CategoricalFeature struct {
	name   string
	values []string
}

/*
NumericFeature represents a property that takes float64 values.
*/
type NumericFeature struct {
	name string
}

/*
NewCategoricalFeature takes a name string and a slice of category
label strings and returns a categorical feature with the given
name and labels.
*/
func NewCategoricalFeature(name string, values []string) *CategoricalFeature {
	return &CategoricalFeature{name, values}
}

/*
NewNumericFeature takes a name string and returns a numeric feature
with the given name.
*/
func NewNumericFeature(name string) *NumericFeature {
	return &NumericFeature{name}
}

/*
Name returns a string with the name of the feature
*/
func (cf *CategoricalFeature) Name() string {
	return cf.name
}

/*
Valid receives an interface value and returns a boolean and an error.
When the value parameter is one of the category labels of the feature,
the method returns true and nil. Otherwise it returns false and an
error describing the reason.
*/
func (cf *CategoricalFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	vs, ok := value.(string)
	if !ok {
		return false, fmt.Errorf("categorical feature %s expects string value, got %T value", cf.Name(), value)
	}
	for _, av := range cf.values {
		if av == vs {
			return true, nil
		}
	}
	return false, fmt.Errorf("categorical feature %s got unknown value %s", cf.Name(), vs)
}

/*
Values returns a string slice with the category labels of the feature,
in declaration order.
*/
func (cf *CategoricalFeature) Values() []string {
	return cf.values
}

func (cf *CategoricalFeature) String() string {
	return cf.name
}

/*
Name returns a string with the name of the feature
*/
func (nf *NumericFeature) Name() string {
	return nf.name
}

/*
Valid receives an interface value and returns a boolean and an error.
When the value parameter is a float64 it returns true and nil, otherwise
it returns false and an error describing the reason.
*/
func (nf *NumericFeature) Valid(value interface{}) (bool, error) {
	if value == nil {
		return true, nil
	}
	_, ok := value.(float64)
	if !ok {
		return false, fmt.Errorf("numeric feature %s expects float64 value, got %T value", nf.Name(), value)
	}
	return true, nil
}

func (nf *NumericFeature) String() string {
	return nf.name
}
