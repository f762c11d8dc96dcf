package domain

import "errors"

var (
	// ErrNotAReference возвращается, когда строка не соответствует ни одному из форматов кадастровой ссылки
	ErrNotAReference = errors.New("value is not a cadastral reference")
	// ErrUnsupportedGridFormat - формат загруженного файла не поддерживается
	ErrUnsupportedGridFormat = errors.New("unsupported tabular file format")
)
