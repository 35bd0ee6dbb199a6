package sim

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordWriter_RoundTrip(t *testing.T) {
	recs := []StepRecord{
		{
			Step: 0, BikerID: "abcdefg",
			StartLon: -111.05, StartLat: 45.67, StartLocale: "",
			IdealLon: -111.051, IdealLat: 45.671, DestLocale: "A",
			EndLon: -111.051, EndLat: 45.671, EndLocale: "A",
			Distance: 123.45, ExcessDistance: 0,
		},
		{
			Step: 1, BikerID: "hijklmn",
			StartLon: -111.051, StartLat: 45.671, StartLocale: "A",
			IdealLon: -111.052, IdealLat: 45.672, DestLocale: "B",
			EndLon: -111.053, EndLat: 45.673, EndLocale: CampusLocale,
			Distance: 456.78, ExcessDistance: 99.99,
		},
	}

	var buf bytes.Buffer
	w := NewRecordWriter(&buf)
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Flush())

	got, err := ReadRecords(&buf)
	require.NoError(t, err)
	assert.Equal(t, recs, got)
}

func TestReadRecords_RejectsWrongHeader(t *testing.T) {
	in := "step,who\n1,abc\n"
	_, err := ReadRecords(strings.NewReader(in))
	assert.Error(t, err)
}

func TestReadRecords_RejectsBadNumericField(t *testing.T) {
	var buf bytes.Buffer
	w := NewRecordWriter(&buf)
	require.NoError(t, w.Write(StepRecord{Step: 0, BikerID: "x"}))
	require.NoError(t, w.Flush())
	corrupted := strings.Replace(buf.String(), "\n0,x,0", "\n0,x,oops", 1)

	_, err := ReadRecords(strings.NewReader(corrupted))
	assert.Error(t, err)
}
