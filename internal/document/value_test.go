package document

import (
	"encoding/json"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatNonFiniteIsNull(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.True(t, Float(f).IsNull())
	}
	assert.False(t, Float(0).IsNull())
}

func TestLabel(t *testing.T) {
	assert.True(t, Label("").IsNull())
	s, ok := Label("Atlantic").Str()
	assert.True(t, ok)
	assert.Equal(t, "Atlantic", s)
}

func TestMarshalPreservesStructure(t *testing.T) {
	year := 2001
	v := Object(
		F("zeta", Int(3)),
		F("alpha", Float(1.5)),
		F("name", String("Océan <Sud>")),
		F("missing", OptFloat(nil)),
		F("year", OptInt(&year)),
		F("ok", Bool(true)),
		F("list", List(Int(1), Float(math.NaN()), String("x"))),
		F("empty", List()),
		F("nested", Object(F("b", Int(1)), F("a", Int(2)))),
	)
	b, err := v.MarshalJSON()
	require.NoError(t, err)

	want := `{"zeta":3,"alpha":1.5,"name":"Océan <Sud>","missing":null,"year":2001,"ok":true,` +
		`"list":[1,null,"x"],"empty":[],"nested":{"b":1,"a":2}}`
	assert.Equal(t, want, string(b))
}

func TestGet(t *testing.T) {
	v := Object(F("a", Int(1)))
	got, ok := v.Get("a")
	require.True(t, ok)
	n, _ := got.Number()
	assert.Equal(t, 1.0, n)

	_, ok = v.Get("b")
	assert.False(t, ok)
}

// randomValue builds a tree where roughly a third of the numbers are
// non-finite.
func randomValue(r *rand.Rand, depth int) Value {
	if depth == 0 {
		switch r.IntN(4) {
		case 0:
			return Float([]float64{math.NaN(), math.Inf(1), math.Inf(-1)}[r.IntN(3)])
		case 1:
			return Float(r.NormFloat64() * 1e6)
		case 2:
			return Int(r.IntN(1000))
		default:
			return Label([]string{"", "a", "b"}[r.IntN(3)])
		}
	}
	n := r.IntN(4)
	if r.IntN(2) == 0 {
		items := make([]Value, n)
		for i := range items {
			items[i] = randomValue(r, depth-1)
		}
		return List(items...)
	}
	fields := make([]Field, n)
	for i := range fields {
		fields[i] = F(string(rune('a'+i)), randomValue(r, depth-1))
	}
	return Object(fields...)
}

func TestEncodeNeverEmitsNonFiniteTokens(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		doc := Document{Name: "random", Body: randomValue(r, 4)}
		b, err := Encode(doc)
		require.NoError(t, err)
		s := string(b)
		assert.NotContains(t, s, "NaN")
		assert.NotContains(t, s, "Inf")

		var decoded any
		require.NoError(t, json.Unmarshal(b, &decoded), s)
	}
}

func TestEncodeIndentsAndKeepsUnicode(t *testing.T) {
	doc := Document{Name: Metrics, Body: Object(F("ocean", String("Àrtic <N>")))}
	b, err := Encode(doc)
	require.NoError(t, err)

	want := "{\n  \"ocean\": \"Àrtic <N>\"\n}\n"
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Errorf("encoded document mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "metrics.json", doc.FileName())
}

func TestNamesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, n := range Names {
		assert.False(t, seen[n], n)
		assert.False(t, strings.Contains(n, "."), n)
		seen[n] = true
	}
	assert.Len(t, Names, 10)
}
