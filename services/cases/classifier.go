package cases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"lawyerconnect/models"
	"lawyerconnect/services/generation"

	"go.uber.org/zap"
)

// Categories a complaint can be filed under.
var Categories = []string{
	"Labor Law",
	"Consumer Rights",
	"Family Law",
	"Criminal Law",
	"Property Law",
	"Other",
}

// Classification is the triage result for a new complaint.
type Classification struct {
	Category         string   `json:"category"`
	Priority         string   `json:"priority"`
	SuggestedActions []string `json:"suggestedActions"`
}

// Classifier triages a complaint from its text.
type Classifier interface {
	Classify(ctx context.Context, subject, description string) Classification
}

var defaultActions = []string{
	"Contact legal support",
	"Gather relevant documents",
	"Consult with a lawyer",
}

var categoryKeywords = map[string][]string{
	"Labor Law":       {"wage", "salary", "employer", "employee", "overtime", "terminat", "fired", "gratuity", "provident", "workplace", "layoff"},
	"Consumer Rights": {"refund", "defective", "warranty", "seller", "consumer", "product", "delivery", "e-commerce", "overcharg", "service provider"},
	"Family Law":      {"divorce", "custody", "maintenance", "alimony", "marriage", "husband", "wife", "adoption", "inheritance"},
	"Criminal Law":    {"theft", "stole", "assault", "harass", "police", "fraud", "threat", "cheat", "extort", "cybercrime"},
	"Property Law":    {"landlord", "tenant", "rent", "property", "eviction", "lease", "deposit", "land", "encroach", "builder"},
}

// categoryOrder fixes the order keyword categories are checked in.
var categoryOrder = []string{"Criminal Law", "Labor Law", "Family Law", "Property Law", "Consumer Rights"}

var categoryActions = map[string][]string{
	"Labor Law":       {"Collect your appointment letter, payslips and bank statements", "Send a written demand to the employer", "Approach the Labour Commissioner if unpaid"},
	"Consumer Rights": {"Keep the invoice and all correspondence", "Send a written complaint to the seller", "File with the Consumer Disputes Redressal Commission"},
	"Family Law":      {"Gather marriage and financial records", "Consider mediation", "Consult a family lawyer"},
	"Criminal Law":    {"Ensure your immediate safety", "Report the incident to the police", "Preserve evidence and witness details"},
	"Property Law":    {"Collect the agreement, receipts and notices", "Respond to notices in writing", "Consult a property lawyer"},
}

var urgentStems = []string{
	"urgent", "emergency", "threat", "violen", "assault", "attack", "abus",
	"injur", "kidnap", "missing", "arrest", "harass", "suicid",
}

// RuleClassifier triages by keyword. It never fails.
type RuleClassifier struct{}

func (RuleClassifier) Classify(_ context.Context, subject, description string) Classification {
	text := strings.ToLower(subject + " " + description)

	category := "Other"
	for _, c := range categoryOrder {
		if containsAny(text, categoryKeywords[c]) {
			category = c
			break
		}
	}

	priority := models.PriorityMedium
	if containsAny(text, urgentStems) {
		priority = models.PriorityHigh
	}

	actions := categoryActions[category]
	if actions == nil {
		actions = defaultActions
	}
	return Classification{
		Category:         category,
		Priority:         priority,
		SuggestedActions: append([]string(nil), actions...),
	}
}

func containsAny(text string, needles []string) bool {
	for _, w := range strings.FieldsFunc(text, func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-'
	}) {
		for _, n := range needles {
			if strings.HasPrefix(w, n) {
				return true
			}
		}
	}
	// Multi-word needles.
	for _, n := range needles {
		if strings.Contains(n, " ") && strings.Contains(text, n) {
			return true
		}
	}
	return false
}

// ModelClassifier asks the generative model to triage and falls back to
// the rule classifier on any failure or malformed answer.
type ModelClassifier struct {
	Model    generation.Model
	Fallback Classifier
	Logger   *zap.Logger
}

const classifyPrompt = `You are a legal expert who categorizes legal complaints.
Analyze the complaint and respond with JSON only, in this exact format:
{"category": "one of: %s", "priority": "low, medium or high", "suggestedActions": ["action 1", "action 2", "action 3"]}

Subject: %s
Description: %s`

func (m ModelClassifier) Classify(ctx context.Context, subject, description string) Classification {
	fallback := m.Fallback
	if fallback == nil {
		fallback = RuleClassifier{}
	}
	if m.Model == nil {
		return fallback.Classify(ctx, subject, description)
	}

	prompt := fmt.Sprintf(classifyPrompt, strings.Join(Categories, ", "), subject, description)
	raw, err := m.Model.Generate(ctx, prompt)
	if err != nil {
		m.Logger.Warn("complaint classification failed, using rules", zap.Error(err))
		return fallback.Classify(ctx, subject, description)
	}
	c, err := parseClassification(raw)
	if err != nil {
		m.Logger.Warn("complaint classification unparsable, using rules", zap.Error(err))
		return fallback.Classify(ctx, subject, description)
	}
	return c
}

func parseClassification(raw string) (Classification, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var c Classification
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &c); err != nil {
		return Classification{}, err
	}
	valid := false
	for _, cat := range Categories {
		if c.Category == cat {
			valid = true
			break
		}
	}
	if !valid {
		return Classification{}, fmt.Errorf("unknown category %q", c.Category)
	}
	switch c.Priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		return Classification{}, fmt.Errorf("unknown priority %q", c.Priority)
	}
	if len(c.SuggestedActions) == 0 {
		c.SuggestedActions = append([]string(nil), defaultActions...)
	}
	return c, nil
}
