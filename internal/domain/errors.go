package domain

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindAlreadySigned     ErrorKind = "ALREADY_SIGNED"
	KindInvalidTransition ErrorKind = "INVALID_TRANSITION"
	KindForbidden         ErrorKind = "FORBIDDEN"
)

// ValidationError agrega todas as violações de uma validação.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		msgs = append(msgs, i.Message)
	}
	return strings.Join(msgs, "\n")
}

func (e *ValidationError) Kind() ErrorKind { return KindValidation }

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Le bordereau avec l'identifiant \"%s\" n'existe pas.", e.ID)
}

func (e *NotFoundError) Kind() ErrorKind { return KindNotFound }

type AlreadySignedError struct {
	Type SignatureType
}

func (e *AlreadySignedError) Error() string {
	return fmt.Sprintf("Le bordereau a déjà été signé (%s).", e.Type)
}

func (e *AlreadySignedError) Kind() ErrorKind { return KindAlreadySigned }

type InvalidTransitionError struct {
	From  BspaohStatus
	Event SignatureType
}

func (e *InvalidTransitionError) Error() string {
	return "Vous ne pouvez pas apposer cette signature sur le bordereau."
}

func (e *InvalidTransitionError) Kind() ErrorKind { return KindInvalidTransition }

type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	if e.Message == "" {
		return "Vous ne pouvez pas signer ce bordereau"
	}
	return e.Message
}

func (e *ForbiddenError) Kind() ErrorKind { return KindForbidden }

// KindOf devolve o tipo de um erro de domínio, ou "" para erros internos.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return ""
}
