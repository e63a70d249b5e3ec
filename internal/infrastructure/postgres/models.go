package postgres

import (
	"strings"
	"time"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
)

// CompanyModel é uma empresa inscrita no registo, com o récépissé de transportador quando existe.
type CompanyModel struct {
	OrgID               string     `gorm:"column:org_id;primaryKey;type:varchar(20)"`
	Siret               *string    `gorm:"column:siret;type:varchar(14);uniqueIndex"`
	VatNumber           *string    `gorm:"column:vat_number;type:varchar(20);uniqueIndex"`
	Name                string     `gorm:"column:name;type:varchar(200);not null"`
	Address             string     `gorm:"column:address;type:text"`
	CompanyTypes        string     `gorm:"column:company_types;type:text"`
	WasteProcessorTypes string     `gorm:"column:waste_processor_types;type:text"`
	ReceiptNumber       *string    `gorm:"column:receipt_number;type:varchar(50)"`
	ReceiptDepartment   *string    `gorm:"column:receipt_department;type:varchar(5)"`
	ReceiptValidity     *time.Time `gorm:"column:receipt_validity_limit"`

	Memberships []MembershipModel `gorm:"foreignKey:OrgID;references:OrgID"`
}

func (CompanyModel) TableName() string { return "companies" }

type MembershipModel struct {
	UserID string `gorm:"column:user_id;primaryKey;type:varchar(50)"`
	OrgID  string `gorm:"column:org_id;primaryKey;type:varchar(20)"`
}

func (MembershipModel) TableName() string { return "company_memberships" }

func (m CompanyModel) toDomain() *domain.Company {
	c := &domain.Company{
		OrgID:   m.OrgID,
		Name:    m.Name,
		Address: m.Address,
	}
	if m.Siret != nil {
		c.Siret = *m.Siret
	}
	if m.VatNumber != nil {
		c.VatNumber = *m.VatNumber
	}
	for _, t := range splitList(m.CompanyTypes) {
		c.CompanyTypes = append(c.CompanyTypes, domain.CompanyType(t))
	}
	for _, t := range splitList(m.WasteProcessorTypes) {
		c.WasteProcessorTypes = append(c.WasteProcessorTypes, domain.WasteProcessorType(t))
	}
	if m.ReceiptNumber != nil {
		r := &domain.TransporterReceipt{Number: *m.ReceiptNumber}
		if m.ReceiptDepartment != nil {
			r.Department = *m.ReceiptDepartment
		}
		if m.ReceiptValidity != nil {
			r.ValidityLimit = *m.ReceiptValidity
		}
		c.TransporterReceipt = r
	}
	return c
}

func fromDomain(c domain.Company) CompanyModel {
	m := CompanyModel{
		OrgID:     c.OrgID,
		Siret:     nonEmpty(c.Siret),
		VatNumber: nonEmpty(c.VatNumber),
		Name:      c.Name,
		Address:   c.Address,
	}
	if m.OrgID == "" {
		if c.Siret != "" {
			m.OrgID = c.Siret
		} else {
			m.OrgID = c.VatNumber
		}
	}
	types := make([]string, 0, len(c.CompanyTypes))
	for _, t := range c.CompanyTypes {
		types = append(types, string(t))
	}
	m.CompanyTypes = strings.Join(types, ",")
	procs := make([]string, 0, len(c.WasteProcessorTypes))
	for _, t := range c.WasteProcessorTypes {
		procs = append(procs, string(t))
	}
	m.WasteProcessorTypes = strings.Join(procs, ",")
	if r := c.TransporterReceipt; r != nil {
		m.ReceiptNumber = nonEmpty(r.Number)
		m.ReceiptDepartment = nonEmpty(r.Department)
		if !r.ValidityLimit.IsZero() {
			v := r.ValidityLimit
			m.ReceiptValidity = &v
		}
	}
	return m
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
