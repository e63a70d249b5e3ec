package engine

import (
	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
)

type (
	Bspaoh             = model.Bspaoh
	BspaohTransporter  = model.BspaohTransporter
	Packaging          = model.Packaging
	Input              = model.Input
	Issue              = domain.Issue
	User               = domain.User
	Company            = domain.Company
	TransporterReceipt = domain.TransporterReceipt
	CompanyDirectory   = domain.CompanyDirectory
	ValidationContext  = domain.ValidationContext
	ValidationError    = domain.ValidationError
	SignatureType      = domain.SignatureType
	Status             = domain.BspaohStatus
	ErrorKind          = domain.ErrorKind
	Result             = engine.Result
	RuleDigest         = engine.RuleDigest
)

const (
	SignatureEmission  = domain.SignatureEmission
	SignatureTransport = domain.SignatureTransport
	SignatureDelivery  = domain.SignatureDelivery
	SignatureReception = domain.SignatureReception
	SignatureOperation = domain.SignatureOperation
)
