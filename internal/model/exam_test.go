package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionMapScan(t *testing.T) {
	raw := `{"MCQ":{"count":5,"duration":300},"Essay":{"count":1,"duration":900}}`

	// MySQL 驱动可能返回 []byte 或 string
	var fromBytes SectionMap
	require.NoError(t, fromBytes.Scan([]byte(raw)))
	assert.Equal(t, SectionConfig{Count: 5, Duration: 300}, fromBytes["MCQ"])

	var fromString SectionMap
	require.NoError(t, fromString.Scan(raw))
	assert.Equal(t, SectionConfig{Count: 1, Duration: 900}, fromString["Essay"])

	var fromNil SectionMap
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	var bad SectionMap
	assert.Error(t, bad.Scan(42))
}

func TestSectionMapValue(t *testing.T) {
	m := SectionMap{"Paragraph": {Count: 2, Duration: 600}}
	v, err := m.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"Paragraph":{"count":2,"duration":600}}`, string(v.([]byte)))

	var empty SectionMap
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestQuestionOptionMap(t *testing.T) {
	q := Question{Options: []byte(`{"a":"one","b":"two"}`)}
	opts, err := q.OptionMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "one", "b": "two"}, opts)

	var noOptions Question
	opts, err = noOptions.OptionMap()
	require.NoError(t, err)
	assert.Empty(t, opts)
}
