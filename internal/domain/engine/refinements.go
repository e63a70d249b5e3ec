package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

const profileHint = "Veuillez vous rapprocher de l'administrateur de cette %s pour qu'il modifie le profil de l'établissement depuis l'interface Trackdéchets Mon Compte > Établissements"

// checkPackagingsAcceptation confronta os conditionnements aceites na receção com os declarados.
func checkPackagingsAcceptation(b *model.Bspaoh, stages []domain.SignatureType) []domain.Issue {
	issues := []domain.Issue{}
	add := func(msg string) {
		issues = append(issues, domain.Issue{
			Field:   string(model.DestinationReceptionWastePackagingsAcceptation),
			Path:    model.PathOf(model.DestinationReceptionWastePackagingsAcceptation),
			Message: msg,
		})
	}

	acceptations := b.DestinationReceptionWastePackagingsAcceptation
	declared := map[string]bool{}
	for _, p := range b.WastePackagings {
		declared[p.ID] = true
	}

	seen := map[string]bool{}
	for _, a := range acceptations {
		if seen[a.ID] {
			add(fmt.Sprintf("Le conditionnement %s est présent plusieurs fois dans l'acceptation", a.ID))
		}
		seen[a.ID] = true
		if !declared[a.ID] {
			add(fmt.Sprintf("Le conditionnement %s n'existe pas sur le bordereau", a.ID))
		}
	}

	if !containsStage(stages, domain.SignatureReception) {
		return issues
	}

	if len(acceptations) > len(b.WastePackagings) {
		add("Le nombre de conditionnements acceptés ne peut pas dépasser le nombre de conditionnements déclarés")
	}

	byID := map[string]domain.PackagingAcceptationStatus{}
	for _, a := range acceptations {
		byID[a.ID] = a.Acceptation
	}
	complete := true
	for _, p := range b.WastePackagings {
		st, ok := byID[p.ID]
		if !ok || st == domain.PackagingPending {
			complete = false
		}
	}
	for _, a := range acceptations {
		if a.Acceptation == domain.PackagingPending {
			complete = false
		}
	}
	if !complete {
		add("Le statut d'acceptation de tous les packagings doit être précisé")
	}

	status := b.DestinationReceptionAcceptationStatus
	if status == nil || len(acceptations) == 0 {
		return issues
	}
	allAccepted, allRefused := true, true
	for _, a := range acceptations {
		if a.Acceptation != domain.PackagingAccepted {
			allAccepted = false
		}
		if a.Acceptation != domain.PackagingRefused {
			allRefused = false
		}
	}
	switch *status {
	case domain.AcceptationAccepted:
		if !allAccepted {
			add("Le bordereau ne peut être accepté que si tous les packagings sont acceptés")
		}
	case domain.AcceptationRefused:
		if !allRefused {
			add("Le bordereau ne peut être refusé que si tous les packagings sont refusés")
		}
	case domain.AcceptationPartiallyRefused:
		if allAccepted || allRefused {
			add("Le bordereau ne peut être partiellement refusé si tous les packagings sont refusés ou acceptés")
		}
	}
	return issues
}

// checkCompanies verifica a inscrição do transportador e do destino. As duas consultas correm em paralelo.
func checkCompanies(ctx context.Context, dir domain.CompanyDirectory, b *model.Bspaoh) ([]domain.Issue, error) {
	if dir == nil {
		return nil, nil
	}
	var transporterIssues, destinationIssues []domain.Issue

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		iss, err := checkTransporterCompany(gctx, dir, b)
		transporterIssues = iss
		return err
	})
	g.Go(func() error {
		iss, err := checkDestinationCompany(gctx, dir, b)
		destinationIssues = iss
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return append(transporterIssues, destinationIssues...), nil
}

func checkTransporterCompany(ctx context.Context, dir domain.CompanyDirectory, b *model.Bspaoh) ([]domain.Issue, error) {
	exempted := b.TransporterRecepisseIsExempted != nil && *b.TransporterRecepisseIsExempted

	if siret := b.TransporterCompanySiret; siret != nil && siretPattern.MatchString(*siret) {
		company, err := lookup(ctx, dir, *siret)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return []domain.Issue{issueFor(model.TransporterCompanySiret,
				fmt.Sprintf("L'établissement avec le SIRET %s n'est pas inscrit sur Trackdéchets", *siret))}, nil
		}
		if !exempted && !company.HasType(domain.CompanyTransporter) {
			return []domain.Issue{issueFor(model.TransporterCompanySiret, transporterProfileMessage("SIRET", *siret))}, nil
		}
		return nil, nil
	}

	if vat := b.TransporterCompanyVatNumber; vat != nil && domain.IsForeignVat(*vat) {
		company, err := lookup(ctx, dir, *vat)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return []domain.Issue{issueFor(model.TransporterCompanyVatNumber,
				fmt.Sprintf("Le transporteur avec le n°de TVA %s n'est pas inscrit sur Trackdéchets", *vat))}, nil
		}
		if !exempted && !company.HasType(domain.CompanyTransporter) {
			return []domain.Issue{issueFor(model.TransporterCompanyVatNumber, transporterProfileMessage("numéro de TVA", *vat))}, nil
		}
	}
	return nil, nil
}

func checkDestinationCompany(ctx context.Context, dir domain.CompanyDirectory, b *model.Bspaoh) ([]domain.Issue, error) {
	siret := b.DestinationCompanySiret
	if siret == nil || !siretPattern.MatchString(*siret) {
		return nil, nil
	}
	company, err := lookup(ctx, dir, *siret)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return []domain.Issue{issueFor(model.DestinationCompanySiret,
			fmt.Sprintf("L'établissement avec le SIRET %s n'est pas inscrit sur Trackdéchets", *siret))}, nil
	}
	crematorium := company.HasType(domain.CompanyCrematorium) ||
		(company.HasType(domain.CompanyWasteProcessor) && company.HasProcessorType(domain.ProcessorCremation))
	if !crematorium {
		msg := fmt.Sprintf("L'entreprise avec le SIRET \"%s\" n'est pas inscrite sur Trackdéchets en tant que crématorium "+
			"et ne dispose pas d'une capacité de crémation. Cette installation ne peut donc pas être visée sur le bordereau. ", *siret) +
			fmt.Sprintf(profileHint, "installation")
		return []domain.Issue{issueFor(model.DestinationCompanySiret, msg)}, nil
	}
	return nil, nil
}

func transporterProfileMessage(kind, id string) string {
	return fmt.Sprintf("Le transporteur saisi sur le bordereau (%s: %s) n'est pas inscrit sur Trackdéchets en tant qu'entreprise de transport. "+
		"Cette entreprise ne peut donc pas être visée sur le bordereau. ", kind, id) + fmt.Sprintf(profileHint, "entreprise")
}

// lookup devolve nil quando a empresa não existe no diretório.
func lookup(ctx context.Context, dir domain.CompanyDirectory, orgID string) (*domain.Company, error) {
	c, err := dir.Lookup(ctx, orgID)
	if errors.Is(err, domain.ErrCompanyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("company lookup %s: %w", orgID, err)
	}
	return c, nil
}

func issueFor(f model.Field, msg string) domain.Issue {
	return domain.Issue{Field: string(f), Path: model.PathOf(f), Message: msg}
}

// weightData prepara os dados dos guards de peso do rule pack.
func weightData(b *model.Bspaoh) map[string]any {
	received, refused := 0.0, 0.0
	if b.DestinationReceptionWasteReceivedWeightValue != nil {
		received = *b.DestinationReceptionWasteReceivedWeightValue
	}
	if b.DestinationReceptionWasteRefusedWeightValue != nil {
		refused = *b.DestinationReceptionWasteRefusedWeightValue
	}
	status := ""
	if b.DestinationReceptionAcceptationStatus != nil {
		status = string(*b.DestinationReceptionAcceptationStatus)
	}
	return map[string]any{
		"received":          received,
		"refused":           refused,
		"hasReceived":       b.DestinationReceptionWasteReceivedWeightValue != nil,
		"hasRefused":        b.DestinationReceptionWasteRefusedWeightValue != nil,
		"acceptationStatus": status,
	}
}
