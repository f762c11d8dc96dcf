package port

import (
	"context"
	"catastro-service/internal/core/domain"
)

// CatastroFetcherPort - операции с реестром Catastro
type CatastroFetcherPort interface {
	// FetchPropertyRecord выполняет ровно один запрос к реестру и возвращает нормализованную запись.
	// Отсутствующие в ответе поля заменяются заглушками, ошибкой это не считается.
	FetchPropertyRecord(ctx context.Context, ref domain.CadastralReference) (*domain.PropertyRecord, error)
}
