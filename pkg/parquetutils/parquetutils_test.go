package parquetutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name  string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Count int64  `parquet:"name=count, type=INT64"`
}

func TestWriteAllReadBytes(t *testing.T) {
	rows := []row{
		{Name: "Axe", Count: 5},
		{Name: "Sladar", Count: 0},
	}
	data, err := WriteAll(rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	read, err := ReadBytes[row](data)
	require.NoError(t, err)
	assert.Equal(t, rows, read)
}

func TestReadBytesRejectsGarbage(t *testing.T) {
	_, err := ReadBytes[row]([]byte("not a parquet file"))
	require.Error(t, err)
}
