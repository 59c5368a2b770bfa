// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finsight/backend/internal/application/usecase/analytics"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
	"github.com/finsight/backend/internal/integration/charts"
	"github.com/finsight/backend/internal/integration/entrypoint/dto"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
)

// DashboardController handles dashboard analytics endpoints.
type DashboardController struct {
	getSummaryUseCase   *analytics.GetSummaryUseCase
	getBreakdownUseCase *analytics.GetBreakdownUseCase
	getInsightsUseCase  *analytics.GetInsightsUseCase
	getTrendsUseCase    *analytics.GetTrendsUseCase
	exportUseCase       *analytics.ExportTransactionsUseCase
	chartRenderer       *charts.Renderer
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getSummaryUseCase *analytics.GetSummaryUseCase,
	getBreakdownUseCase *analytics.GetBreakdownUseCase,
	getInsightsUseCase *analytics.GetInsightsUseCase,
	getTrendsUseCase *analytics.GetTrendsUseCase,
	exportUseCase *analytics.ExportTransactionsUseCase,
	chartRenderer *charts.Renderer,
) *DashboardController {
	return &DashboardController{
		getSummaryUseCase:   getSummaryUseCase,
		getBreakdownUseCase: getBreakdownUseCase,
		getInsightsUseCase:  getInsightsUseCase,
		getTrendsUseCase:    getTrendsUseCase,
		exportUseCase:       exportUseCase,
		chartRenderer:       chartRenderer,
	}
}

// GetSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	dateRange, ok := c.parseRange(ctx)
	if !ok {
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), analytics.GetSummaryInput{
		UserID: userID,
		Range:  dateRange,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// GetBreakdown handles GET /dashboard/breakdown requests.
func (c *DashboardController) GetBreakdown(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	dateRange, ok := c.parseRange(ctx)
	if !ok {
		return
	}

	input := analytics.GetBreakdownInput{
		UserID: userID,
		Range:  dateRange,
	}
	if typeStr := ctx.Query("type"); typeStr != "" {
		input.Type = entity.TransactionType(typeStr)
	}

	output, err := c.getBreakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBreakdownResponse(output))
}

// GetInsights handles GET /dashboard/insights requests.
func (c *DashboardController) GetInsights(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	dateRange, ok := c.parseRange(ctx)
	if !ok {
		return
	}

	output, err := c.getInsightsUseCase.Execute(ctx.Request.Context(), analytics.GetInsightsInput{
		UserID: userID,
		Range:  dateRange,
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightListResponse(output))
}

// GetTrends handles GET /dashboard/trends requests.
func (c *DashboardController) GetTrends(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := analytics.GetTrendsInput{
		UserID:    userID,
		Reference: time.Now().UTC(),
	}
	if monthsStr := ctx.Query("months"); monthsStr != "" {
		months, err := strconv.Atoi(monthsStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid months parameter",
				Code:  string(domainerror.ErrCodeInvalidTrendMonths),
			})
			return
		}
		input.Months = months
	}

	output, err := c.getTrendsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendsResponse(output))
}

// Export handles GET /dashboard/export requests.
// It streams the period's transactions as a CSV attachment.
func (c *DashboardController) Export(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	dateRange, ok := c.parseRange(ctx)
	if !ok {
		return
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), analytics.ExportTransactionsInput{
		UserID:     userID,
		Range:      dateRange,
		ExportedAt: time.Now().UTC(),
	})
	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, "text/csv", output.Content)
}

// GetChart handles GET /dashboard/chart requests.
// The kind parameter selects the breakdown pie or the expense trend.
func (c *DashboardController) GetChart(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var (
		data []byte
		err  error
	)

	switch ctx.DefaultQuery("kind", "breakdown") {
	case "breakdown":
		dateRange, ok := c.parseRange(ctx)
		if !ok {
			return
		}
		var breakdown *analytics.GetBreakdownOutput
		breakdown, err = c.getBreakdownUseCase.Execute(ctx.Request.Context(), analytics.GetBreakdownInput{
			UserID: userID,
			Range:  dateRange,
		})
		if err == nil {
			data, err = c.chartRenderer.RenderBreakdown(breakdown)
		}
	case "trend":
		input := analytics.GetTrendsInput{
			UserID:    userID,
			Reference: time.Now().UTC(),
		}
		if monthsStr := ctx.Query("months"); monthsStr != "" {
			if months, atoiErr := strconv.Atoi(monthsStr); atoiErr == nil {
				input.Months = months
			}
		}
		var trend *analytics.GetTrendsOutput
		trend, err = c.getTrendsUseCase.Execute(ctx.Request.Context(), input)
		if err == nil {
			data, err = c.chartRenderer.RenderTrend(trend)
		}
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Unknown chart kind, expected breakdown or trend",
		})
		return
	}

	if err != nil {
		c.handleAnalyticsError(ctx, err)
		return
	}
	if data == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "No data to chart for the requested period",
		})
		return
	}

	ctx.Data(http.StatusOK, "image/png", data)
}

// parseRange parses optional from/to query parameters. It writes the error
// response itself and reports success through the bool.
func (c *DashboardController) parseRange(ctx *gin.Context) (analytics.Range, bool) {
	var dateRange analytics.Range

	if fromStr := ctx.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid from date, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return dateRange, false
		}
		dateRange.From = &from
	}
	if toStr := ctx.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid to date, expected YYYY-MM-DD",
				Code:  string(domainerror.ErrCodeInvalidDateFormat),
			})
			return dateRange, false
		}
		dateRange.To = &to
	}

	return dateRange, true
}

// handleAnalyticsError handles analytics errors and returns appropriate HTTP responses.
func (c *DashboardController) handleAnalyticsError(ctx *gin.Context, err error) {
	var anlErr *domainerror.AnalyticsError
	if errors.As(err, &anlErr) {
		statusCode := http.StatusBadRequest
		if anlErr.Code == domainerror.ErrCodeAnalyticsInternalError {
			statusCode = http.StatusInternalServerError
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: anlErr.Message,
			Code:  string(anlErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
