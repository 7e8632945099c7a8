package handler_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func indexOf(s, sub string) int {
	return strings.Index(s, sub)
}

// jsonField returns the raw JSON of key in the i-th element of a JSON array.
func jsonField(t *testing.T, body []byte, i int, key string) string {
	t.Helper()

	var items []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &items))
	require.Greater(t, len(items), i)
	return string(items[i][key])
}
