package constants

// Обменник для событий о найденных объектах
const (
	CatastroExchange     = "catastro_exchange"
	CatastroExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyMatchedProperties = "catastro.property.matched"
)

// Версии контрактов публикуемых событий
const (
	MatchedPropertyEventKey = "MatchedPropertyEvent/1.0.0"
)
