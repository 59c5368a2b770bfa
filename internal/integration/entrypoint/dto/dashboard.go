// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/finsight/backend/internal/application/usecase/analytics"
)

// SummaryResponse represents the dashboard summary in API responses.
// Monetary values are decimal strings; change fields are percentages.
type SummaryResponse struct {
	TotalIncome    string  `json:"total_income"`
	TotalExpenses  string  `json:"total_expenses"`
	Balance        string  `json:"balance"`
	IncomeChange   float64 `json:"income_change"`
	ExpensesChange float64 `json:"expenses_change"`
	BalanceChange  float64 `json:"balance_change"`
}

// BreakdownItemResponse represents a single category slice in the breakdown.
type BreakdownItemResponse struct {
	CategoryID string  `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Total      string  `json:"total"`
	Percentage float64 `json:"percentage"`
}

// BreakdownResponse represents the category breakdown in API responses.
type BreakdownResponse struct {
	Total      string                  `json:"total"`
	Categories []BreakdownItemResponse `json:"categories"`
}

// InsightResponse represents a single spending insight.
type InsightResponse struct {
	CategoryID string  `json:"category_id"`
	Category   string  `json:"category"`
	Amount     string  `json:"amount"`
	Change     float64 `json:"change"`
	Suggestion string  `json:"suggestion"`
}

// InsightListResponse represents the insights list in API responses.
type InsightListResponse struct {
	Insights []InsightResponse `json:"insights"`
}

// TrendPointResponse represents one month in the expense trend.
type TrendPointResponse struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Total string `json:"total"`
}

// TrendsResponse represents the monthly expense trend in API responses.
type TrendsResponse struct {
	Points []TrendPointResponse `json:"points"`
}

// ToSummaryResponse converts a summary output to its DTO.
func ToSummaryResponse(o *analytics.GetSummaryOutput) SummaryResponse {
	return SummaryResponse{
		TotalIncome:    o.TotalIncome.String(),
		TotalExpenses:  o.TotalExpenses.String(),
		Balance:        o.Balance.String(),
		IncomeChange:   o.IncomeChange,
		ExpensesChange: o.ExpensesChange,
		BalanceChange:  o.BalanceChange,
	}
}

// ToBreakdownResponse converts a breakdown output to its DTO.
func ToBreakdownResponse(o *analytics.GetBreakdownOutput) BreakdownResponse {
	categories := make([]BreakdownItemResponse, len(o.Categories))
	for i, item := range o.Categories {
		categories[i] = BreakdownItemResponse{
			CategoryID: item.CategoryID.String(),
			Name:       item.Name,
			Color:      item.Color,
			Total:      item.Total.String(),
			Percentage: item.Percentage,
		}
	}
	return BreakdownResponse{
		Total:      o.Total.String(),
		Categories: categories,
	}
}

// ToInsightListResponse converts an insights output to its DTO.
func ToInsightListResponse(o *analytics.GetInsightsOutput) InsightListResponse {
	insights := make([]InsightResponse, len(o.Insights))
	for i, insight := range o.Insights {
		insights[i] = InsightResponse{
			CategoryID: insight.CategoryID.String(),
			Category:   insight.Category,
			Amount:     insight.Amount.String(),
			Change:     insight.Change,
			Suggestion: insight.Suggestion,
		}
	}
	return InsightListResponse{Insights: insights}
}

// ToTrendsResponse converts a trends output to its DTO.
func ToTrendsResponse(o *analytics.GetTrendsOutput) TrendsResponse {
	points := make([]TrendPointResponse, len(o.Points))
	for i, point := range o.Points {
		points[i] = TrendPointResponse{
			Month: point.Month.Format("2006-01"),
			Label: point.Label,
			Total: point.Total.String(),
		}
	}
	return TrendsResponse{Points: points}
}
