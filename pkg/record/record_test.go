package record

import (
	"testing"

	"github.com/LambdaTest/xdist-tracker/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestRecordAddKeepsFirstOrder(t *testing.T) {
	r := New()
	for _, id := range []core.TestID{"a", "b", "a", "c", "b"} {
		r.Add(id)
	}
	assert.Equal(t, []core.TestID{"a", "b", "c"}, r.IDs())
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Contains("c"))
	assert.False(t, r.Contains("d"))
}

func TestRecordAddReportsNew(t *testing.T) {
	r := New()
	assert.True(t, r.Add("t::a"))
	assert.False(t, r.Add("t::a"))
}

func TestRecordIDsIsCopy(t *testing.T) {
	r := New()
	r.Add("a")
	ids := r.IDs()
	ids[0] = "mutated"
	assert.Equal(t, []core.TestID{"a"}, r.IDs())
}

func TestCodecRoundTrip(t *testing.T) {
	tests := []core.TestID{
		"tests/test_a.py::test_one",
		"tests/test_a.py::test_param[a\nb]",
		"tests/test_a.py::test_percent[100%]",
		"tests/test_ü.py::test_日本",
		"tests/test_a.py::test_space[a b]",
		"tests/test_a.py::test_cr[\r]",
	}
	for _, id := range tests {
		encoded := Encode(id)
		assert.NotContains(t, encoded, "\n")
		assert.NotContains(t, encoded, "\r")
		decoded, ok := Decode(encoded)
		assert.True(t, ok)
		assert.Equal(t, id, decoded)
	}
}

func TestDecodeLegacyLine(t *testing.T) {
	id, ok := Decode("tests/test_a.py::test_one")
	assert.True(t, ok)
	assert.Equal(t, core.TestID("tests/test_a.py::test_one"), id)

	id, ok = Decode("tests/test_a.py::test[50%]")
	assert.False(t, ok)
	assert.Equal(t, core.TestID("tests/test_a.py::test[50%]"), id)
}
