package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"

	"github.com/Victor-armando18/service-bspaoh/internal/domain"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/engine"
	"github.com/Victor-armando18/service-bspaoh/internal/domain/model"
	"github.com/Victor-armando18/service-bspaoh/internal/interfaces"
	"github.com/Victor-armando18/service-bspaoh/internal/usecase/readiness"
)

const headerUserID = "X-User-ID"

type handlers struct {
	svc          interfaces.BspaohFacade
	readiness    *readiness.UseCase
	rulesVersion string
	logger       log.Logger
}

type signRequest struct {
	Type   string     `json:"type"`
	Author string     `json:"author"`
	Date   *time.Time `json:"date"`
}

func (h *handlers) create(c echo.Context) error {
	in, err := readInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	draft, _ := strconv.ParseBool(c.QueryParam("draft"))

	b, err := h.svc.Create(c.Request().Context(), c.Request().Header.Get(headerUserID), in, draft)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *handlers) get(c echo.Context) error {
	b, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *handlers) update(c echo.Context) error {
	in, err := readInput(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	b, err := h.svc.Update(c.Request().Context(), c.Request().Header.Get(headerUserID), c.Param("id"), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *handlers) publish(c echo.Context) error {
	b, err := h.svc.Publish(c.Request().Context(), c.Request().Header.Get(headerUserID), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *handlers) duplicate(c echo.Context) error {
	b, err := h.svc.Duplicate(c.Request().Context(), c.Request().Header.Get(headerUserID), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *handlers) sign(c echo.Context) error {
	var req signRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Payload inválido"})
	}
	b, err := h.svc.Sign(c.Request().Context(), c.Request().Header.Get(headerUserID), c.Param("id"), interfaces.SignatureInput{
		Type:   domain.SignatureType(req.Type),
		Author: req.Author,
		Date:   req.Date,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *handlers) sealedFields(c echo.Context) error {
	paths, err := h.svc.SealedFields(c.Request().Context(), c.Request().Header.Get(headerUserID), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"id": c.Param("id"), "sealedFields": paths})
}

func (h *handlers) checkReadiness(c echo.Context) error {
	stage, err := domain.ParseSignatureType(c.QueryParam("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	report, err := h.readiness.Check(c.Request().Context(), c.Param("id"), stage)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, report)
}

func (h *handlers) rules(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"version": h.rulesVersion, "rules": engine.RulesDigest()})
}

// fail traduz erros de domínio para o código HTTP correspondente.
func (h *handlers) fail(c echo.Context, err error) error {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		var verr *domain.ValidationError
		errors.As(err, &verr)
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error(), "issues": verr.Issues})
	case domain.KindNotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case domain.KindForbidden:
		return c.JSON(http.StatusForbidden, map[string]string{"error": err.Error()})
	case domain.KindAlreadySigned, domain.KindInvalidTransition:
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error(), "kind": string(domain.KindOf(err))})
	}
	if errors.Is(err, domain.ErrStatusConflict) {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	level.Error(h.logger).Log("msg", "request failed", "path", c.Path(), "err", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func readInput(c echo.Context) (model.Input, error) {
	data, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	return model.ParseInput(data)
}
