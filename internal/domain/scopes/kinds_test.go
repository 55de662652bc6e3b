package scopes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/mouse-blink/pedant/internal/model"
)

func TestKindsIntersectIsSubsetOfBoth(t *testing.T) {
	pairs := [][2]Kinds{
		{Character | Culture, Culture | Province},
		{ck3All, Character},
		{None, None | Bool},
		{Faith | Religion, Character},
	}

	for _, p := range pairs {
		got := p[0].Intersect(p[1])
		assert.True(t, p[0].Contains(got), "intersection must be a subset of the left operand")
		assert.True(t, p[1].Contains(got), "intersection must be a subset of the right operand")
	}
}

func TestKindsUnionIdempotent(t *testing.T) {
	for _, k := range []Kinds{Character, Character | Culture, ck3All, None} {
		assert.Equal(t, k, k.Union(k))
	}
}

func TestKindsIntersectWithAll(t *testing.T) {
	for _, k := range []Kinds{Character, Province | Faith, None | Value, ck3All} {
		assert.Equal(t, k, k.Intersect(ck3All))
	}
}

func TestKindsDifference(t *testing.T) {
	assert.Equal(t, Character, (Character | Culture).Difference(Culture))
	assert.Equal(t, Kinds(0), Character.Difference(Character))
	assert.True(t, (Character.Difference(Province)).Contains(Character))
}

func TestKindsNoneIsOrdinaryInAlgebra(t *testing.T) {
	assert.Equal(t, None|Character, None.Union(Character))
	assert.Equal(t, None, (None | Character).Intersect(None|Culture))
	assert.True(t, ck3All.Contains(None))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "character", describe(Character))
	assert.Equal(t, "character or culture", describe(Character|Culture))
	assert.Equal(t, "character, culture or province", describe(Character|Culture|Province))
	assert.Equal(t, "no scope at all", describe(0))
}

func TestProfileDescribeAll(t *testing.T) {
	tables := TablesFor(m.GameCK3)

	assert.Equal(t, "any scope", tables.Describe(ck3All))
	assert.Equal(t, "character", tables.Describe(Character))
}
