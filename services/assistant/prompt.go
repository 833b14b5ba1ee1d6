package assistant

import (
	"strings"

	"lawyerconnect/services/retrieval"
)

const promptIntro = "You are a helpful Indian legal assistant chatbot with access to a legal reference database."

// Both branches are always sent; the model picks the one that fits the facts.
const matterGuidance = `- If the query is about a crime (e.g. accident, theft, assault, harassment, domestic violence), include:
  • Practical steps to take right away
  • How to file a First Information Report (FIR) with the police, if applicable
  • Related Indian Penal Code (IPC) sections and the rights of the person affected
- If the query is civil or general (contracts, property, tenancy, employment, family, consumer rights), include:
  • Practical steps to take
  • Relevant Indian laws, acts and statutes
  • Avoid criminal-filing guidance unless the facts describe an offense`

const (
	offenseHint = "- This appears to be a criminal matter."
	civilHint   = "- This appears to be a civil or general matter; treat it as criminal if the facts describe an offense."
)

const commonGuidance = `- Always give the answer clearly in steps.
- Use simple, easy-to-understand language.
- Be helpful and supportive while maintaining legal accuracy.
- If the user has asked follow-up questions, reference the conversation history.
- Provide actionable advice while reminding users to consult qualified lawyers for serious matters.`

// BuildPrompt assembles the single prompt envelope sent to the model. Only
// the last HistoryWindow history entries are kept, in their original order.
// The context block is empty when no passages were retrieved. kind only
// selects a hint line ahead of the crime and civil guidelines.
func BuildPrompt(question string, history []string, passages []retrieval.Passage, kind MatterKind) string {
	var sb strings.Builder
	sb.WriteString(promptIntro)
	sb.WriteString("\n\nUser's current question: \"")
	sb.WriteString(question)
	sb.WriteString("\"\n\nPrevious conversation context:\n")
	sb.WriteString(strings.Join(lastN(history, HistoryWindow), "\n"))
	sb.WriteString("\n\nRelevant legal documents from the database:\n")
	sb.WriteString(joinPassages(passages))
	sb.WriteString("\n\nAnswer guidelines:\n")
	if kind == MatterOffense {
		sb.WriteString(offenseHint)
	} else {
		sb.WriteString(civilHint)
	}
	sb.WriteString("\n")
	sb.WriteString(matterGuidance)
	sb.WriteString("\n")
	sb.WriteString(commonGuidance)
	sb.WriteString("\n")
	return sb.String()
}

func lastN(history []string, n int) []string {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}

func joinPassages(passages []retrieval.Passage) string {
	texts := make([]string, 0, len(passages))
	for _, p := range passages {
		if t := strings.TrimSpace(p.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n")
}
