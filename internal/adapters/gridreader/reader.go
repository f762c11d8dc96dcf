package gridreader

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"catastro-service/internal/contextkeys"
	"catastro-service/internal/core/domain"
	"catastro-service/internal/core/port"
)

// GridReaderAdapter выбирает декодер по расширению файла
type GridReaderAdapter struct{}

func NewGridReaderAdapter() *GridReaderAdapter {
	return &GridReaderAdapter{}
}

// ReadGrid возвращает значения ячеек: string, float64, bool или nil для пустых
func (a *GridReaderAdapter) ReadGrid(ctx context.Context, r io.Reader, filename string) ([][]interface{}, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "GridReaderAdapter",
		"filename":  filename,
	})

	ext := strings.ToLower(filepath.Ext(filename))

	var (
		grid [][]interface{}
		err  error
	)
	switch ext {
	case ".xlsx", ".xlsm":
		grid, err = readWorkbook(r)
	case ".csv":
		grid, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedGridFormat, ext)
	}
	if err != nil {
		logger.Error("Failed to decode grid", err, nil)
		return nil, err
	}

	logger.Debug("Grid decoded", port.Fields{"rows": len(grid)})
	return grid, nil
}
