// Package parquetutils reads and writes whole parquet files held in memory.
package parquetutils

import (
	"github.com/cockroachdb/errors"
	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ReaderConcurrency parallel number of file readers.
var ReaderConcurrency int64 = 8

// ReadAll reads all records from the parquet file.
func ReadAll[T any](sourceFile source.ParquetFile) ([]T, error) {
	r, err := reader.NewParquetReader(sourceFile, new(T), ReaderConcurrency)
	if err != nil {
		return nil, errors.Wrap(err, "can't create parquet reader")
	}
	defer r.ReadStop()

	data := make([]T, r.GetNumRows())
	if err = r.Read(&data); err != nil {
		return nil, errors.Wrap(err, "failed to read parquet data")
	}

	return data, nil
}

// ReadBytes reads all records from an in-memory parquet file. data is not copied.
func ReadBytes[T any](data []byte) ([]T, error) {
	records, err := ReadAll[T](parquetbuffer.NewBufferFileFromBytesNoAlloc(data))
	return records, errors.WithStack(err)
}

// WriteAll encodes records into an in-memory parquet file.
func WriteAll[T any](records []T) ([]byte, error) {
	buf := parquetbuffer.NewBufferFile()
	w, err := writer.NewParquetWriter(buf, new(T), 1)
	if err != nil {
		return nil, errors.Wrap(err, "can't create parquet writer")
	}
	for i := range records {
		if err := w.Write(records[i]); err != nil {
			return nil, errors.Wrapf(err, "failed to write record %d", i)
		}
	}
	if err := w.WriteStop(); err != nil {
		return nil, errors.Wrap(err, "failed to flush parquet writer")
	}
	return buf.Bytes(), nil
}
