package port

import (
	"context"
	"io"
)

// GridReaderPort превращает табличный файл в двумерный массив значений ячеек
type GridReaderPort interface {
	ReadGrid(ctx context.Context, r io.Reader, filename string) ([][]interface{}, error)
}
