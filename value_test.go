package ark

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternIdentity(t *testing.T) {
	pool := NewPool()

	assert.Same(t, pool.Bool(true), pool.Bool(true))
	assert.Same(t, pool.Num(3.5), pool.Num(3.5))
	assert.Same(t, pool.Str("hi"), pool.Str("hi"))

	assert.NotSame(t, pool.Bool(true), pool.Bool(false))
	assert.NotSame(t, pool.Num(1), pool.Num(2))
}

func TestNullAndUndefinedAreSingletons(t *testing.T) {
	assert.Same(t, Null, Null)
	assert.Same(t, Undefined, Undefined)
	assert.NotEqual(t, Null, Undefined)
}

func TestObjectPropertyAbsentReadsAsNull(t *testing.T) {
	obj := NewObject()
	v, err := obj.getProperty("nope")
	assert.NoError(t, err)
	assert.Same(t, Null, v)

	_, err = obj.setProperty("nope", NewNum(1))
	assert.NoError(t, err)
	v, err = obj.getProperty("nope")
	assert.NoError(t, err)
	assert.Equal(t, 1.0, v.(*Num).Value)
}

func TestListLengthIsLive(t *testing.T) {
	l := NewList([]Value{NewNum(1), NewNum(2)})
	length, err := l.getProperty("length")
	assert.NoError(t, err)
	assert.Equal(t, 2.0, length.(*Num).Value)

	l.Items = append(l.Items, NewNum(3))
	length, err = l.getProperty("length")
	assert.NoError(t, err)
	assert.Equal(t, 3.0, length.(*Num).Value, "length must be computed live, not snapshotted at construction (spec §9)")
}
