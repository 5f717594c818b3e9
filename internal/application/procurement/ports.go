package procurement

import (
	"context"

	"github.com/jhoicas/nexus-procurement/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de persistencia, pasando un
// repositorio atado a esa transacción. Si fn devuelve error no se guarda nada.
// Garantiza que una mutación que toca varias colecciones se persista completa o no se persista.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.CollectionRepository) error) error
}
