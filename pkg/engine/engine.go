// Package engine expõe o motor de validação e a máquina de estados do BSPAOH
// a quem não pode importar os pacotes internos.
package engine

import (
	"context"

	"github.com/go-kit/log"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/lifecycle"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
	"github.com/Victor-armando18/service-bspaoh/internal/infrastructure/memory"
	"github.com/Victor-armando18/service-bspaoh/internal/interfaces"
)

// Validator valida bordereaux com o rule pack de uma versão.
type Validator struct {
	eng *engine.Engine
}

func NewValidator(ctx context.Context, rulesVersion string, dir CompanyDirectory, logger log.Logger) (*Validator, error) {
	eng, err := interfaces.NewEngine(ctx, rulesVersion, dir, logger)
	if err != nil {
		return nil, err
	}
	return &Validator{eng: eng}, nil
}

// Validate devolve *ValidationError com todas as violações quando o candidato não é válido.
func (v *Validator) Validate(ctx context.Context, input Input, persisted *Bspaoh, vctx ValidationContext) (*Result, error) {
	return v.eng.Validate(ctx, input, persisted, vctx)
}

func (v *Validator) RulesVersion() string { return v.eng.RulesVersion() }

func NextStatus(b *Bspaoh, t SignatureType) (Status, error) {
	return lifecycle.NextStatus(b, t)
}

// CurrentSignatureType devolve a última etapa assinada, ou "" se nenhuma.
func CurrentSignatureType(b *Bspaoh) SignatureType {
	return engine.CurrentSignatureType(b)
}

// SealedFieldsFor devolve os caminhos externos selados para o utilizador, segundo as etapas assinadas.
func SealedFieldsFor(b *Bspaoh, u *User) []string {
	return engine.SealedPathsFor(b, u)
}

// SealedFieldsForStage devolve os nomes técnicos dos campos selados depois de assinada a etapa.
func SealedFieldsForStage(stage SignatureType) []string {
	fields := engine.SealedFieldsForStage(stage)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, string(f))
	}
	return out
}

// FieldForPath converte um caminho externo (emitter.company.siret) no nome técnico do campo.
func FieldForPath(path string) (string, bool) {
	f, ok := model.FieldForPath(path)
	return string(f), ok
}

func RulesDigest() []RuleDigest {
	return engine.RulesDigest()
}

// NewDirectory devolve um diretório em memória com as empresas indicadas.
func NewDirectory(companies ...Company) CompanyDirectory {
	return memory.NewDirectory(companies...)
}

// LoadDirectory lê um ficheiro JSON de empresas ({"companies": [...]}) para um diretório em memória.
func LoadDirectory(path string) (CompanyDirectory, error) {
	dir, _, err := memory.LoadSeed(path)
	if err != nil {
		return nil, err
	}
	return dir, nil
}

func ParseInput(data []byte) (Input, error) {
	return model.ParseInput(data)
}

func ParseSignatureType(s string) (SignatureType, error) {
	return domain.ParseSignatureType(s)
}

func KindOf(err error) ErrorKind {
	return domain.KindOf(err)
}
