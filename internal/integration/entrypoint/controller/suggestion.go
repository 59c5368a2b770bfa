// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finsight/backend/internal/application/usecase/suggestion"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
)

// SuggestionController handles AI category suggestion endpoints.
type SuggestionController struct {
	suggestUseCase *suggestion.SuggestCategoryUseCase
}

// NewSuggestionController creates a new suggestion controller instance.
func NewSuggestionController(suggestUseCase *suggestion.SuggestCategoryUseCase) *SuggestionController {
	return &SuggestionController{
		suggestUseCase: suggestUseCase,
	}
}

// Suggest handles POST /transactions/suggest-category requests.
func (c *SuggestionController) Suggest(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.SuggestCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	input := suggestion.SuggestCategoryInput{
		UserID:      userID,
		Description: req.Description,
		Type:        entity.TransactionType(req.Type),
	}

	output, err := c.suggestUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		var txnErr *domainerror.TransactionError
		if errors.As(err, &txnErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: txnErr.Message,
				Code:  string(txnErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSuggestCategoryResponse(output.Suggestion))
}
