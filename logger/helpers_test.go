package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/philipp01105/termlog/core"
)

func readLogFile(t *testing.T, filename string) []core.Entry {
	t.Helper()
	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()

	var out []core.Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e core.Entry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		out = append(out, e)
	}
	require.NoError(t, sc.Err())
	return out
}
