package orm

import (
	"testing"

	"github.com/iov-one/authlock/weavetest/assert"
)

func TestPrefixRangeEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"empty":         {prefix: nil, want: nil},
		"simple":        {prefix: []byte("abc"), want: []byte("abd")},
		"overflow last": {prefix: []byte{1, 255}, want: []byte{2}},
		"overflow all":  {prefix: []byte{255, 255}, want: nil},
		"namespace":     {prefix: []byte("cnts:"), want: []byte("cnts;")},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, prefixRangeEnd(tc.prefix))
		})
	}
}

func TestNamespaceKeyDoesNotAlias(t *testing.T) {
	ns := newNamespace("cnts")
	a := ns.key([]byte("a"))
	b := ns.key([]byte("b"))
	assert.Equal(t, []byte("cnts:a"), a)
	assert.Equal(t, []byte("cnts:b"), b)
	assert.Equal(t, []byte("a"), ns.strip(a))
}
