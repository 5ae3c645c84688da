package repository

// CacheRepository cachea escenarios serializados, con llave derivada de la
// entrada de la simulación.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
