package catastrofetcher

import (
	"fmt"
	"net/url"
	"time"

	"catastro-service/internal/constants"

	"github.com/gocolly/colly/v2"
)

// Config - настройки адаптера реестра Catastro
type Config struct {
	// BaseURL - адрес сервиса Consulta_DNPRC (без параметров)
	BaseURL string
	// Parallelism - сколько запросов к реестру может выполняться одновременно
	Parallelism int
	// Delay - пауза между запросами к домену реестра
	Delay time.Duration
	// Timeout - таймаут одного запроса, 0 - значение по умолчанию
	Timeout time.Duration
}

const defaultRequestTimeout = 15 * time.Second

// CatastroFetcherAdapter отвечает за все взаимодействия с сервисом Catastro
type CatastroFetcherAdapter struct {
	// родительский коллектор, который разделяет лимиты
	collector *colly.Collector
	baseURL   *url.URL
}

// NewCatastroFetcherAdapter - конструктор
func NewCatastroFetcherAdapter(cfg Config) (*CatastroFetcherAdapter, error) {
	baseURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("CatastroFetcherAdapter: invalid base url %q: %w", cfg.BaseURL, err)
	}
	if baseURL.Scheme == "" || baseURL.Hostname() == "" {
		return nil, fmt.Errorf("CatastroFetcherAdapter: base url %q must be absolute", cfg.BaseURL)
	}

	parallelism := cfg.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}

	// AllowURLRevisit: повторный запрос той же ссылки всегда идет в сеть, кэша нет
	c := colly.NewCollector(colly.AllowedDomains(baseURL.Hostname()), colly.AllowURLRevisit())

	// Эти правила будут наследоваться всеми клонами коллектора
	err = c.Limit(&colly.LimitRule{
		DomainGlob:  baseURL.Host,
		Parallelism: parallelism,
		Delay:       cfg.Delay,
	})
	if err != nil {
		return nil, fmt.Errorf("CatastroFetcherAdapter: failed to set limit rule: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	c.SetRequestTimeout(timeout)

	return &CatastroFetcherAdapter{
		collector: c,
		baseURL:   baseURL,
	}, nil
}

// requestURL подставляет ссылку в шаблон запроса
func (a *CatastroFetcherAdapter) requestURL(ref string) string {
	u := *a.baseURL
	q := u.Query()
	q.Set(constants.CatastroRefParam, ref)
	u.RawQuery = q.Encode()
	return u.String()
}
