package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	// "Cádiz" с комбинируемым акцентом (U+0301) и в составной форме
	decomposed := "Ca\u0301diz"
	composed := "C\u00e1diz"

	assert.Equal(t, composed, NormalizeText("  "+decomposed+"\t"))
	assert.Equal(t, "MADRID", NormalizeText("MADRID"))
	assert.Equal(t, "", NormalizeText("   "))
}

func TestSplitCommaSeparated(t *testing.T) {
	assert.Nil(t, SplitCommaSeparated(""))
	assert.Equal(t, []string{"MADRID", "TOLEDO"}, SplitCommaSeparated(" MADRID, ,TOLEDO ,"))
	assert.Equal(t, []string{}, SplitCommaSeparated(" , "))
	assert.Equal(t, []string{"a b"}, SplitCommaSeparated("a b"))
}

func TestMeasureString(t *testing.T) {
	assert.Equal(t, Unknown, UnknownMeasure().String())
	assert.Equal(t, "85.5", KnownMeasure(85.5).String())
	assert.Equal(t, "1975", KnownMeasure(1975).String())
}
