package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"bookstoreMq/internal/modules/catalog/application/usecase"
	"bookstoreMq/internal/modules/catalog/domain"
	"bookstoreMq/internal/platform/broker"
	"bookstoreMq/internal/shared/httputil"
)

// CatalogHandler serves the author and publisher REST resources.
type CatalogHandler struct {
	queries  *usecase.CatalogQueries
	commands *usecase.SubmitCommandUseCase

	authorErrors    *httputil.ErrorMapper
	publisherErrors *httputil.ErrorMapper
}

// commandErrors covers the failures shared by every write endpoint.
var commandErrors = httputil.NewErrorMapper(
	httputil.ErrorMapping{Error: domain.ErrMissingFields, Status: http.StatusBadRequest, Message: "missing required fields"},
	httputil.ErrorMapping{Error: broker.ErrConnection, Status: http.StatusInternalServerError, Message: "command queue unavailable"},
	httputil.ErrorMapping{Error: broker.ErrPublish, Status: http.StatusInternalServerError, Message: "command could not be queued"},
)

func NewCatalogHandler(queries *usecase.CatalogQueries, commands *usecase.SubmitCommandUseCase) *CatalogHandler {
	return &CatalogHandler{
		queries:         queries,
		commands:        commands,
		authorErrors:    commandErrors.Extend(notFound("author not found")),
		publisherErrors: commandErrors.Extend(notFound("publisher not found")),
	}
}

func notFound(message string) httputil.ErrorMapping {
	return httputil.ErrorMapping{Error: domain.ErrNotFound, Status: http.StatusNotFound, Message: message}
}

func (h *CatalogHandler) ListAuthors(c echo.Context) error {
	return c.JSON(http.StatusOK, h.queries.ListAuthors())
}

func (h *CatalogHandler) GetAuthor(c echo.Context) error {
	author, ok := h.queries.GetAuthor(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, httputil.ErrorBody{Error: "author not found"})
	}
	return c.JSON(http.StatusOK, author)
}

func (h *CatalogHandler) CreateAuthor(c echo.Context) error {
	var req authorRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	author, err := h.commands.CreateAuthor(c.Request().Context(), usecase.AuthorInput{
		Name: req.Name, Country: req.Country, BirthYear: req.BirthYear.ptr(),
	})
	if err != nil {
		return writeError(c, h.authorErrors, err)
	}
	return c.JSON(http.StatusAccepted, AcceptedResponse{Message: "author creation queued", Data: author})
}

func (h *CatalogHandler) UpdateAuthor(c echo.Context) error {
	var req authorRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	patch, err := h.commands.UpdateAuthor(c.Request().Context(), c.Param("id"), usecase.AuthorInput{
		Name: req.Name, Country: req.Country, BirthYear: req.BirthYear.ptr(),
	})
	if err != nil {
		return writeError(c, h.authorErrors, err)
	}
	return c.JSON(http.StatusAccepted, AcceptedResponse{Message: "author update queued", Data: patch})
}

func (h *CatalogHandler) DeleteAuthor(c echo.Context) error {
	ref, err := h.commands.DeleteAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.authorErrors, err)
	}
	return c.JSON(http.StatusAccepted, AcceptedResponse{Message: "author deletion queued", Data: ref})
}

func (h *CatalogHandler) ListPublishers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.queries.ListPublishers())
}

func (h *CatalogHandler) GetPublisher(c echo.Context) error {
	publisher, ok := h.queries.GetPublisher(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, httputil.ErrorBody{Error: "publisher not found"})
	}
	return c.JSON(http.StatusOK, publisher)
}

func (h *CatalogHandler) CreatePublisher(c echo.Context) error {
	var req publisherRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	publisher, err := h.commands.CreatePublisher(c.Request().Context(), usecase.PublisherInput{
		Name: req.Name, Country: req.Country, FoundedYear: req.FoundedYear.ptr(),
	})
	if err != nil {
		return writeError(c, h.publisherErrors, err)
	}
	return c.JSON(http.StatusAccepted, AcceptedResponse{Message: "publisher creation queued", Data: publisher})
}

func (h *CatalogHandler) UpdatePublisher(c echo.Context) error {
	var req publisherRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c, err)
	}
	patch, err := h.commands.UpdatePublisher(c.Request().Context(), c.Param("id"), usecase.PublisherInput{
		Name: req.Name, Country: req.Country, FoundedYear: req.FoundedYear.ptr(),
	})
	if err != nil {
		return writeError(c, h.publisherErrors, err)
	}
	return c.JSON(http.StatusAccepted, AcceptedResponse{Message: "publisher update queued", Data: patch})
}

func (h *CatalogHandler) DeletePublisher(c echo.Context) error {
	ref, err := h.commands.DeletePublisher(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, h.publisherErrors, err)
	}
	return c.JSON(http.StatusAccepted, AcceptedResponse{Message: "publisher deletion queued", Data: ref})
}

func invalidBody(c echo.Context, err error) error {
	slog.Warn("catalog http: invalid request body", slog.String("path", c.Path()), slog.Any("error", err))
	return c.JSON(http.StatusBadRequest, httputil.ErrorBody{Error: "invalid request body"})
}

func writeError(c echo.Context, mapper *httputil.ErrorMapper, err error) error {
	info := mapper.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("catalog http: command failed", slog.String("method", c.Request().Method), slog.String("path", c.Path()), slog.Any("error", err))
	}
	return c.JSON(info.Status, httputil.ErrorBody{Error: info.Message})
}
