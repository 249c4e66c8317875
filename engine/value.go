package engine

import (
	"github.com/cockroachdb/errors"

	"github.com/tuneinsight/qseries/convert"
	"github.com/tuneinsight/qseries/series"
	"github.com/tuneinsight/qseries/utils/bignum"
)

// Value is an argument of a builtin call.
// Implemented by SeriesValue, IntValue, SeriesList, IntList and JacValue.
type Value interface {
	isValue()
}

// SeriesValue is a truncated power series argument.
type SeriesValue struct {
	series.Series
}

// IntValue is a machine integer argument.
type IntValue int64

// SeriesList is a list of series argument.
type SeriesList []series.Series

// IntList is a list of integers argument.
type IntList []int

// JacValue is a Jacobi product argument, as returned by jacprodmake.
type JacValue []convert.JacFactor

func (SeriesValue) isValue() {}
func (IntValue) isValue()    {}
func (SeriesList) isValue()  {}
func (IntList) isValue()     {}
func (JacValue) isValue()    {}

// Ints wraps integers as values.
func Ints(v ...int64) []Value {
	out := make([]Value, len(v))
	for i := range v {
		out[i] = IntValue(v[i])
	}
	return out
}

func typeName(v Value) string {
	switch v.(type) {
	case SeriesValue:
		return "series"
	case IntValue:
		return "integer"
	case SeriesList:
		return "list of series"
	case IntList:
		return "list of integers"
	case JacValue:
		return "Jacobi product"
	default:
		return "nil"
	}
}

// args gives typed access to the arguments of a call.
type args struct {
	name  string
	vals  []Value
	trunc int
}

func (a args) argError(i int, want string) error {
	return errors.Wrapf(ErrArgType, "%s: argument %d is a %s, expected a %s", a.name, i+1, typeName(a.vals[i]), want)
}

// int returns the i-th argument as an integer. A constant series with an
// integer constant term is accepted.
func (a args) int(i int) (int, error) {
	switch v := a.vals[i].(type) {
	case IntValue:
		return int(v), nil
	case SeriesValue:
		c := v.Coeff(0)
		if (v.IsZero() || (v.Len() == 1 && !c.IsZero())) && c.IsInt() {
			if n, ok := c.Int64(); ok {
				return int(n), nil
			}
		}
	}
	return 0, a.argError(i, "integer")
}

func (a args) int64(i int) (int64, error) {
	if v, ok := a.vals[i].(IntValue); ok {
		return int64(v), nil
	}
	n, err := a.int(i)
	return int64(n), err
}

// series returns the i-th argument as a series. An integer is taken as a
// constant series at the active truncation.
func (a args) series(i int) (series.Series, error) {
	switch v := a.vals[i].(type) {
	case SeriesValue:
		return v.Series, nil
	case IntValue:
		return series.Constant(bignum.FracOf(int64(v)), a.trunc), nil
	}
	return series.Series{}, a.argError(i, "series")
}

func (a args) seriesList(i int) ([]series.Series, error) {
	if v, ok := a.vals[i].(SeriesList); ok {
		return v, nil
	}
	return nil, a.argError(i, "list of series")
}

func (a args) intList(i int) ([]int, error) {
	if v, ok := a.vals[i].(IntList); ok {
		return v, nil
	}
	return nil, a.argError(i, "list of integers")
}

func (a args) jac(i int) ([]convert.JacFactor, error) {
	if v, ok := a.vals[i].(JacValue); ok {
		return v, nil
	}
	return nil, a.argError(i, "Jacobi product")
}

// ints returns the arguments at the given indices as integers.
func (a args) ints(idx ...int) ([]int, error) {
	out := make([]int, len(idx))
	for j, i := range idx {
		n, err := a.int(i)
		if err != nil {
			return nil, err
		}
		out[j] = n
	}
	return out, nil
}
