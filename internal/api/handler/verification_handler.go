package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/propfinder/marketplace-api/internal/core/domain"
	"github.com/propfinder/marketplace-api/internal/core/ports"
)

// VerificationHandler handles document submission, the status endpoint backed
// by the verification gate, and the admin review queue.
type VerificationHandler struct {
	service ports.VerificationService
}

func NewVerificationHandler(service ports.VerificationService) *VerificationHandler {
	return &VerificationHandler{service: service}
}

// Status handles GET /v1/verification/status. It returns the listing gate
// decision for the caller.
//
// @Summary      Get the caller's listing-permission status
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  verificationStatusResponse
// @Failure      401  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/verification/status [get]
func (h *VerificationHandler) Status(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	decision, err := h.service.Evaluate(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, verificationStatusResponse{
		CanListProperties: decision.CanListProperties,
		Reason:            decision.Reason,
		DaysRemaining:     decision.DaysRemaining,
	})
}

// Submit handles POST /v1/verification/documents.
//
// @Summary      Submit a verification document
// @Tags         verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitDocumentRequest  true  "Document details"
// @Success      201   {object}  documentResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/verification/documents [post]
func (h *VerificationHandler) Submit(c echo.Context) error {
	var req submitDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	doc, err := h.service.SubmitDocument(c.Request().Context(), ports.SubmitDocumentInput{
		UserID:       userID,
		DocumentType: req.DocumentType,
		DocumentURL:  req.DocumentURL,
		DocumentName: req.DocumentName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toDocumentResponse(doc))
}

// ListMine handles GET /v1/verification/documents for the caller's own documents.
//
// @Summary      List the caller's verification documents
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   documentResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/verification/documents [get]
func (h *VerificationHandler) ListMine(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	docs, err := h.service.ListUserDocuments(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	out := make([]documentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc))
	}
	return c.JSON(http.StatusOK, out)
}

// AdminList handles GET /v1/admin/verification/documents, the review queue.
//
// @Summary      List verification documents (admin)
// @Tags         verification
// @Produce      json
// @Security     BearerAuth
// @Param        status   query  string  false  "pending, verified, or rejected"
// @Param        user_id  query  string  false  "Filter by submitting user"
// @Param        page     query  int     false  "Page (1-based)"
// @Param        limit    query  int     false  "Page size (max 100)"
// @Success      200  {object}  listDocumentsResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/verification/documents [get]
func (h *VerificationHandler) AdminList(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.ListDocuments(c.Request().Context(), ports.ListDocumentsInput{
		UserID: c.QueryParam("user_id"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	items := make([]documentResponse, 0, len(result.Items))
	for _, doc := range result.Items {
		items = append(items, toDocumentResponse(doc))
	}
	return c.JSON(http.StatusOK, listDocumentsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// AdminReview handles PATCH /v1/admin/verification/documents/:id.
//
// @Summary      Review a verification document (admin)
// @Tags         verification
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Document id"
// @Param        body  body      reviewDocumentRequest  true  "Review outcome"
// @Success      200   {object}  documentResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/verification/documents/{id} [patch]
func (h *VerificationHandler) AdminReview(c echo.Context) error {
	var req reviewDocumentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	reviewerID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	doc, err := h.service.ReviewDocument(c.Request().Context(), ports.ReviewDocumentInput{
		DocumentID: c.Param("id"),
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
		ReviewerID: reviewerID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toDocumentResponse(doc))
}

func toDocumentResponse(doc *domain.VerificationDocument) documentResponse {
	return documentResponse{
		ID:           doc.ID,
		UserID:       doc.UserID,
		DocumentType: string(doc.DocumentType),
		DocumentURL:  doc.DocumentURL,
		DocumentName: doc.DocumentName,
		Status:       string(doc.Status),
		AdminNotes:   doc.AdminNotes,
		SubmittedAt:  doc.SubmittedAt,
		ReviewedAt:   doc.ReviewedAt,
		ReviewedBy:   doc.ReviewedBy,
	}
}
