package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// GeminiService implements the CategorySuggestionService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini service is available and properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// Suggest returns a category suggestion for a transaction description.
func (s *GeminiService) Suggest(ctx context.Context, request *adapter.SuggestionRequest) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.3)
	model.ResponseMIMEType = "application/json"

	prompt := s.buildPrompt(request)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	suggestion, err := s.parseResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return suggestion, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiService) buildPrompt(request *adapter.SuggestionRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are an expert at categorizing personal finance transactions. Given a transaction description and the user's existing categories, suggest the best matching category or propose a new one.

RULES:
- Prefer an existing category when it matches well
- For a new category, suggest a short name, an icon name, and a hex color
- The category type must match the transaction type (expense or income)

AVAILABLE ICONS (use ONLY these exact names):
Finance: wallet, credit-card, bank, receipt, coins, piggy-bank, chart-line, dollar-sign
Food: utensils, coffee, pizza, apple, wine
Transport: car, bus, plane, train, bike, gas-pump
Home: home, bed, sofa, lamp, wrench
Entertainment: music, film, gamepad, tv, ticket
Health: heart, medical, pill, dumbbell
Education: book, graduation-cap, pencil
Shopping: shopping-bag, shopping-cart, tag, gift, percent
Utilities: bolt, wifi, phone, droplet, flame
Other: briefcase, globe, star

EXISTING CATEGORIES:
`)

	if len(request.Categories) > 0 {
		for _, cat := range request.Categories {
			sb.WriteString(fmt.Sprintf("- ID: %s, Name: %s, Type: %s, Icon: %s\n",
				cat.ID, cat.Name, cat.Type, cat.Icon))
		}
	} else {
		sb.WriteString("(No existing categories)\n")
	}

	sb.WriteString(fmt.Sprintf("\nTRANSACTION:\nDescription: %q\nType: %s\n", request.Description, request.Type))

	sb.WriteString(`
Respond with a single JSON object:
{
  "existing_category_id": "uuid of an existing category or null",
  "new_category": { "name": "string", "icon": "string from the icon list", "color": "#XXXXXX", "type": "expense" | "income" } or null,
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}

Exactly one of existing_category_id and new_category must be set.

RESPONSE FORMAT: Return only the JSON object, no additional text.
`)

	return sb.String()
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	ExistingCategoryID *string            `json:"existing_category_id"`
	NewCategory        *geminiNewCategory `json:"new_category"`
	Confidence         float64            `json:"confidence"`
	Reasoning          string             `json:"reasoning"`
}

type geminiNewCategory struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

// parseResponse parses the Gemini response into a CategorySuggestion.
func (s *GeminiService) parseResponse(resp *genai.GenerateContentResponse) (*adapter.CategorySuggestion, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Strip markdown code fences if present
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, textContent)
	}

	suggestion := &adapter.CategorySuggestion{
		Confidence: raw.Confidence,
		Reasoning:  raw.Reasoning,
	}

	if raw.ExistingCategoryID != nil && *raw.ExistingCategoryID != "" {
		catID, err := uuid.Parse(*raw.ExistingCategoryID)
		if err == nil {
			suggestion.ExistingCategoryID = &catID
		}
	}
	if suggestion.ExistingCategoryID == nil && raw.NewCategory != nil {
		categoryType := entity.CategoryType(raw.NewCategory.Type)
		if categoryType != entity.CategoryTypeExpense && categoryType != entity.CategoryTypeIncome {
			categoryType = entity.CategoryTypeExpense
		}
		suggestion.NewCategory = &adapter.NewCategorySuggestion{
			Name:  raw.NewCategory.Name,
			Color: raw.NewCategory.Color,
			Icon:  raw.NewCategory.Icon,
			Type:  categoryType,
		}
	}

	if suggestion.ExistingCategoryID == nil && suggestion.NewCategory == nil {
		return nil, fmt.Errorf("response contains neither an existing category nor a new category")
	}

	return suggestion, nil
}
