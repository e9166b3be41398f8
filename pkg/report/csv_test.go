package report

import (
	"bytes"
	"testing"

	"github.com/grexie/classifier/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLossCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLossCSV(&buf, model.LossHistory{0.5, 0.25}))
	assert.Equal(t, "Step,Loss\n1,0.50000000\n2,0.25000000\n", buf.String())
}

func TestWriteLossSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLossSummaryCSV(&buf, model.LossHistory{4, 2, 1}, 2))
	assert.Equal(t,
		"Start,End,Loss (Mean),Loss (Min),Loss (Max),Loss (StdDev)\n"+
			"1,2,3.000000,2.000000,4.000000,1.414214\n"+
			"3,3,1.000000,1.000000,1.000000,0.000000\n",
		buf.String())
}

func TestWriteConfusionCSV(t *testing.T) {
	cm := model.NewConfusionMatrix([]string{"a", "b"})
	cm.Add(0, 0)
	cm.Add(1, 0)
	cm.Add(1, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteConfusionCSV(&buf, cm))
	assert.Equal(t, "Actual,a,b\na,1,0\nb,1,1\n", buf.String())
}
