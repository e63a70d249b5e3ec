package diff

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

// Differ compara o input com o registo persistido, campo a campo, por igualdade de valor.
type Differ struct {
	opts cmp.Options
}

func New() *Differ {
	return &Differ{opts: cmp.Options{cmpopts.EquateEmpty()}}
}

// UpdatedFields devolve os campos presentes no input cujo valor difere do persistido.
// Sem registo persistido nada está selado, logo nenhum campo conta como alterado.
func (d *Differ) UpdatedFields(input model.FlatInput, persisted *model.Bspaoh) ([]model.Field, error) {
	updated := []model.Field{}
	if persisted == nil {
		return updated, nil
	}
	for _, acc := range model.Accessors() {
		raw, ok := input[acc.Field]
		if !ok {
			continue
		}
		scratch := &model.Bspaoh{}
		if err := acc.Decode(scratch, raw); err != nil {
			return nil, err
		}
		if !cmp.Equal(acc.Get(scratch), acc.Get(persisted), d.opts) {
			updated = append(updated, acc.Field)
		}
	}
	return updated, nil
}
