package procurement

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	requisitionPrefix = "PR-"
	orderPrefix       = "PO-"
)

// sequence contador monotónico para números de pantalla (PR-<n>, PO-<n>).
// El número es cosmético; la identidad siempre es el ID.
type sequence struct {
	prefix string
	last   int
}

// next avanza el contador y devuelve el número formateado.
func (s *sequence) next() string {
	s.last++
	return fmt.Sprintf("%s%04d", s.prefix, s.last)
}

// observe reanuda el contador desde números ya existentes (datos cargados o sembrados).
// Ignora los que no siguen el formato <prefix><entero>.
func (s *sequence) observe(number string) {
	rest, ok := strings.CutPrefix(number, s.prefix)
	if !ok {
		return
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n <= s.last {
		return
	}
	s.last = n
}
