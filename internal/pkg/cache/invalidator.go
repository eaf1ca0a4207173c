package cache

import (
	"context"

	"goseller/internal/domain"
	"goseller/internal/pkg/logger"
)

// Invalidator implementa a porta domain.CacheInvalidator sobre o Client Redis.
// Cada chave lógica é tratada como prefixo, pois as listagens em cache são
// qualificadas por parâmetros (e.g., "seller-products:42:page=1").
type Invalidator struct {
	client Client
	logger logger.Logger
}

// NewInvalidator cria um novo invalidador de cache de consultas.
func NewInvalidator(client Client, log logger.Logger) *Invalidator {
	return &Invalidator{client: client, logger: log}
}

// Invalidate descarta todas as entradas de cache associadas às chaves lógicas.
// Falhas de invalidação são registradas mas não propagadas como fatais:
// a pior consequência é uma listagem momentaneamente desatualizada.
func (i *Invalidator) Invalidate(ctx domain.Context, keys ...string) error {
	ctxGo, ok := ctx.(context.Context)
	if !ok {
		ctxGo = context.Background()
	}

	for _, key := range keys {
		if err := i.client.DeleteByPrefix(ctxGo, key); err != nil {
			i.logger.Warn("Falha ao invalidar cache de consultas.", map[string]interface{}{"key": key, "error": err.Error()})
			return err
		}
	}
	return nil
}
