package reference

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/vfg2006/opportunity-loss-api/internal/features"
	"github.com/vfg2006/opportunity-loss-api/pkg/log"
)

func init() {
	log.SetupTestLogger()
}

const sampleCSV = `opportunity_id,sales_agent,product,account,deal_stage,engage_date,close_date,close_value,sector,revenue,employees,year_established
1C1I7A6R,Moses Frase,GTX Plus Basic,Cancity,Won,2016-10-20,2017-03-01,1054,retail,718.62,2448,2001
Z063OYW0,Darcel Schlecht,GTXPro,Isdom,Lost,2016-10-25,2017-03-11,0,medical,3178.24,4540,2002
EC4QE1BX,Darcel Schlecht,MG Special,Cancity,Engaging,2017-02-09,,,retail,abc,,
ZZZ,,GTK 500,Foo,Won,2017-01-01,2017-02-01,10,,,,
`

func TestReadOpportunities(t *testing.T) {
	opportunities, warnings, err := ReadOpportunities(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, opportunities, 4)

	first := opportunities[0]
	assert.Equal(t, "Moses Frase", first.SalesAgent)
	assert.Equal(t, "GTX Plus Basic", first.Product)
	require.NotNil(t, first.DealStage)
	assert.Equal(t, "Won", *first.DealStage)
	assert.Equal(t, "2016-10-20", *first.EngageDate)
	assert.Equal(t, 1054.0, *first.CloseValue)
	assert.Equal(t, 2448, *first.Employees)
	assert.Equal(t, 2001, *first.YearEstablished)
	assert.Nil(t, first.OfficeLocation)

	engaging := opportunities[2]
	assert.Nil(t, engaging.CloseDate)
	assert.Nil(t, engaging.CloseValue)
	assert.Nil(t, engaging.Revenue)

	withoutAgent := opportunities[3]
	assert.Empty(t, withoutAgent.SalesAgent)
	assert.Equal(t, "2017-01-01", *withoutAgent.EngageDate)

	require.Len(t, warnings, 1)
	assert.Equal(t, 4, warnings[0].Row)
	assert.Contains(t, warnings[0].Message, "revenue")
}

func TestReadOpportunities_RowsWithoutAgentCountForMedian(t *testing.T) {
	const data = `sales_agent,product,engage_date,close_date
Moses Frase,GTK 500,2017-01-01,2017-01-11
,GTK 500,2017-01-01,2017-03-02
,,2017-02-01,2017-04-02
`

	opportunities, warnings, err := ReadOpportunities(context.Background(), strings.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, opportunities, 3)

	state := features.FitDuration(opportunities)
	assert.Equal(t, 3, state.ReferenceRows)
	assert.Equal(t, 3, state.ValidDurations)
	assert.Equal(t, 60.0, state.MedianDuration)
}

func TestReadOpportunities_BOM(t *testing.T) {
	t.Run("utf-8", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(sampleCSV)...)

		opportunities, _, err := ReadOpportunities(context.Background(), bytes.NewReader(data))
		require.NoError(t, err)
		assert.Len(t, opportunities, 4)
	})

	t.Run("utf-16le", func(t *testing.T) {
		encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
		data, err := encoder.Bytes([]byte(sampleCSV))
		require.NoError(t, err)

		opportunities, _, err := ReadOpportunities(context.Background(), bytes.NewReader(data))
		require.NoError(t, err)
		require.Len(t, opportunities, 4)
		assert.Equal(t, "Moses Frase", opportunities[0].SalesAgent)
	})
}

func TestReadOpportunities_HeaderErrors(t *testing.T) {
	_, _, err := ReadOpportunities(context.Background(), strings.NewReader(""))
	assert.Error(t, err)

	_, _, err = ReadOpportunities(context.Background(), strings.NewReader("sales_agent,product\nAna,GTK 500\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestCSVSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	opportunities, err := NewCSVSource(path).ListReferenceOpportunities(context.Background())
	require.NoError(t, err)
	assert.Len(t, opportunities, 4)

	_, err = NewCSVSource(filepath.Join(t.TempDir(), "missing.csv")).ListReferenceOpportunities(context.Background())
	assert.Error(t, err)
}
