package partition

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, Partition{0, 1, 1, 0, 2}))
	assert.Equal(t, "0 1 1 0 2\n", buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, Partition{}))
	assert.Equal(t, "\n", buf.String())
}

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader("0 1\n1\t0  2\n"))
	require.NoError(t, err)
	assert.Equal(t, Partition{0, 1, 1, 0, 2}, p)

	p, err = Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader("0 1 x 1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 2")
}

func TestEncodeDecodeKarateSplit(t *testing.T) {
	p := Partition{0, 0, 0, 0, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 1, 0, 0, 1, 0, 1, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, p))
	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestString(t *testing.T) {
	assert.Equal(t, "2 0 1", Partition{2, 0, 1}.String())
	assert.Equal(t, "", Partition{}.String())
}
