package engine

import (
	"context"
	"encoding/json"

	"golang.org/x/sync/errgroup"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

type companyBlock struct {
	orgID   model.Field
	name    model.Field
	address model.Field
}

var companyBlocks = []companyBlock{
	{orgID: model.EmitterCompanySiret, name: model.EmitterCompanyName, address: model.EmitterCompanyAddress},
	{orgID: model.DestinationCompanySiret, name: model.DestinationCompanyName, address: model.DestinationCompanyAddress},
	{orgID: model.TransporterCompanySiret, name: model.TransporterCompanyName, address: model.TransporterCompanyAddress},
	{orgID: model.TransporterCompanyVatNumber, name: model.TransporterCompanyName, address: model.TransporterCompanyAddress},
}

// runTransformers completa o candidato com os dados do diretório. Só toca em campos não selados.
// As consultas correm em paralelo e os resultados são aplicados no fim.
func runTransformers(ctx context.Context, dir domain.CompanyDirectory, b *model.Bspaoh, sealed []model.Field) error {
	if dir == nil {
		return nil
	}
	isSealed := map[model.Field]bool{}
	for _, f := range sealed {
		isSealed[f] = true
	}

	type registryHit struct {
		block   companyBlock
		company *domain.Company
	}
	blocks := []companyBlock{}
	for _, blk := range companyBlocks {
		if isSealed[blk.orgID] {
			continue
		}
		s, _ := b.Value(blk.orgID).(*string)
		if blank(s) {
			continue
		}
		// o SIRET do transportador tem prioridade sobre a TVA
		if blk.orgID == model.TransporterCompanyVatNumber && !blank(b.TransporterCompanySiret) {
			continue
		}
		blocks = append(blocks, blk)
	}
	hits := make([]registryHit, len(blocks))

	transporterID := b.TransporterOrgID()
	exempted := b.TransporterRecepisseIsExempted != nil && *b.TransporterRecepisseIsExempted
	runRecepisse := transporterID != "" && !exempted &&
		!isSealed[model.TransporterCompanySiret] && !isSealed[model.TransporterCompanyVatNumber]
	var transporter *domain.Company

	g, gctx := errgroup.WithContext(ctx)
	for i, blk := range blocks {
		i, blk := i, blk
		orgID := *b.Value(blk.orgID).(*string)
		g.Go(func() error {
			c, err := lookup(gctx, dir, orgID)
			if err != nil {
				return err
			}
			hits[i] = registryHit{block: blk, company: c}
			return nil
		})
	}
	if runRecepisse {
		g.Go(func() error {
			c, err := lookup(gctx, dir, transporterID)
			if err != nil {
				return err
			}
			transporter = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, h := range hits {
		if h.company == nil {
			continue
		}
		setString(b, h.block.name, h.company.Name)
		setString(b, h.block.address, h.company.Address)
	}

	if runRecepisse {
		applyRecepisse(b, transporter)
	}
	return nil
}

func applyRecepisse(b *model.Bspaoh, c *domain.Company) {
	if c == nil || c.TransporterReceipt == nil {
		b.TransporterRecepisseNumber = nil
		b.TransporterRecepisseDepartment = nil
		b.TransporterRecepisseValidityLimit = nil
		return
	}
	r := c.TransporterReceipt
	b.TransporterRecepisseNumber = model.Ptr(r.Number)
	b.TransporterRecepisseDepartment = model.Ptr(r.Department)
	b.TransporterRecepisseValidityLimit = model.Ptr(r.ValidityLimit)
}

func setString(b *model.Bspaoh, f model.Field, v string) {
	a, ok := model.AccessorFor(f)
	if v == "" || !ok {
		return
	}
	raw, _ := json.Marshal(v)
	_ = a.Decode(b, raw)
}
