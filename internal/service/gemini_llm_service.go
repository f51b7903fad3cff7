package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/careercompass/backend/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

const recommendCareersTool = "recommend_careers"

// PerformanceSummary condenses a user's attempt history for the advisor.
type PerformanceSummary struct {
	Lines        []string // "Logical Reasoning (analytical): 72.5%"
	AverageScore float64
}

// CareerAdvisor produces structured career advice from a performance
// summary. Implemented against Gemini; tests substitute a mock.
type CareerAdvisor interface {
	RecommendCareers(ctx context.Context, summary PerformanceSummary) (*CareerAdvice, error)
}

type geminiAdvisor struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

// NewGeminiAdvisor creates the Gemini-backed advisor. The model is
// configured with a single forced tool so the response always arrives as a
// structured function call rather than free text.
func NewGeminiAdvisor(cfg *config.Config) (CareerAdvisor, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Career advisor will be non-functional.")
		return &geminiAdvisor{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-flash")
	model.Tools = []*genai.Tool{{
		FunctionDeclarations: []*genai.FunctionDeclaration{{
			Name:        recommendCareersTool,
			Description: fmt.Sprintf("Return %d career recommendations with skill gaps and learning resources based on aptitude test results", CareerCount),
			Parameters:  careerAdviceSchema(),
		}},
	}}
	model.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{
			Mode:                 genai.FunctionCallingAny,
			AllowedFunctionNames: []string{recommendCareersTool},
		},
	}

	return &geminiAdvisor{client: model, cfg: cfg}, nil
}

// careerAdviceSchema is the declared shape the model must fill in. It
// mirrors the CareerAdvice types in career_advice.go.
func careerAdviceSchema() *genai.Schema {
	skillGapSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"skill_name":     {Type: genai.TypeString},
			"current_level":  {Type: genai.TypeInteger, Description: "Estimated current proficiency, 1-10"},
			"required_level": {Type: genai.TypeInteger, Description: "Proficiency the career requires, 1-10"},
			"priority":       {Type: genai.TypeString, Enum: []string{"low", "medium", "high"}},
		},
		Required: []string{"skill_name", "current_level", "required_level", "priority"},
	}

	resourceSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"resource_title":     {Type: genai.TypeString},
			"resource_type":      {Type: genai.TypeString, Enum: []string{"course", "book", "video", "certification"}},
			"resource_url":       {Type: genai.TypeString},
			"estimated_duration": {Type: genai.TypeString, Description: "e.g. \"3 months\""},
			"provider":           {Type: genai.TypeString},
			"difficulty":         {Type: genai.TypeString, Enum: []string{"beginner", "intermediate", "advanced"}},
		},
		Required: []string{"resource_title", "resource_type"},
	}

	careerSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"career_title":     {Type: genai.TypeString},
			"description":      {Type: genai.TypeString},
			"confidence_score": {Type: genai.TypeNumber, Description: "Fit between user and career, 0-100"},
			"required_skills":  {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			"salary_range":     {Type: genai.TypeString, Description: "e.g. \"$70,000 - $110,000\""},
			"growth_potential": {Type: genai.TypeString, Enum: []string{"Low", "Medium", "High", "Very High"}},
			"skill_gaps":       {Type: genai.TypeArray, Items: skillGapSchema},
			"learning_paths":   {Type: genai.TypeArray, Items: resourceSchema},
		},
		Required: []string{"career_title", "description", "confidence_score", "required_skills", "salary_range", "growth_potential", "skill_gaps", "learning_paths"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"careers": {Type: genai.TypeArray, Items: careerSchema},
		},
		Required: []string{"careers"},
	}
}

func (a *geminiAdvisor) RecommendCareers(ctx context.Context, summary PerformanceSummary) (*CareerAdvice, error) {
	if a.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	prompt := buildCareerPrompt(summary)
	resp, err := a.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during career recommendation")
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		fc, ok := part.(genai.FunctionCall)
		if !ok || fc.Name != recommendCareersTool {
			continue
		}
		advice, err := parseCareerAdvice(fc.Args)
		if err != nil {
			log.Warn().Err(err).Msg("Gemini returned a malformed tool call")
			return nil, fmt.Errorf("malformed structured response: %w", err)
		}
		return advice, nil
	}

	return nil, fmt.Errorf("gemini response is missing the %s tool call", recommendCareersTool)
}

func buildCareerPrompt(summary PerformanceSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze these aptitude test results and recommend %d diverse career paths:\n\n", CareerCount)
	fmt.Fprintf(&b, "Test Performance: %s\n", strings.Join(summary.Lines, ", "))
	fmt.Fprintf(&b, "Average Score: %.1f%%\n\n", summary.AverageScore)
	fmt.Fprintf(&b, "Based on the specific test categories and scores, suggest %d different career paths that match the user's strengths. ", CareerCount)
	b.WriteString("Vary recommendations based on which tests scored highest. Consider technical skills, analytical thinking, and soft skills performance. ")
	b.WriteString("For each career, also identify the most important skill gaps the user should close and concrete learning resources to close them.")
	return b.String()
}
