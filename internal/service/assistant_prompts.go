package service

import (
	"strings"

	"softsell-api/internal/domain"
)

const (
	GreetingText = "Hi there! How can I help you with selling your software licenses today?"
	FallbackText = "Sorry, I'm having trouble connecting right now. Please try again later or contact our support team at support@softsell.com."

	greetingTurnID = "welcome"

	assistantTemperature float32 = 0.7
	assistantMaxTokens           = 150
)

const businessPreamble = `You are a helpful assistant for SoftSell, a software license resale company.

About SoftSell:
- We help businesses sell their unused software licenses
- Our process: Upload License -> Get Valuation -> Get Paid
- We offer competitive rates and fast payment (within 3 business days)
- We handle all compliance and legal aspects of license transfers
- We work with all major software vendors including Microsoft, Adobe, Oracle, and more
- We have a 98% customer satisfaction rate`

const replyInstruction = "Respond as a helpful customer service representative. Keep responses concise (max 3 sentences) and focused on helping the user sell their software licenses. Be friendly and professional."

type cannedAnswer struct {
	question string
	answer   string
}

// El orden es el que muestra el widget.
var cannedAnswers = []cannedAnswer{
	{
		question: "How do I sell my license?",
		answer:   "To sell your license, upload your license details through our secure portal, and we'll provide a valuation within 24 hours. Once you accept our offer, you'll receive payment via your preferred method.",
	},
	{
		question: "What is my license worth?",
		answer:   "The value depends on software type, version, remaining subscription period, and market demand. Upload your license details for a free, no-obligation valuation.",
	},
	{
		question: "How long does the process take?",
		answer:   "Our process is quick! You'll receive a valuation within 24 hours, and once you accept, payment is typically processed within 3 business days.",
	},
	{
		question: "What software do you buy?",
		answer:   "We purchase licenses for most major software vendors including Microsoft, Adobe, Oracle, SAP, Autodesk, and many more. If you're unsure about your specific software, just ask and we'll let you know.",
	},
	{
		question: "Is this legal?",
		answer:   "Software license resale is completely legal when done properly. We ensure all transfers comply with vendor terms and applicable laws, handling all the legal paperwork for you.",
	},
}

// SuggestedQuestions devuelve las preguntas sugeridas en orden de despliegue.
func SuggestedQuestions() []string {
	out := make([]string, 0, len(cannedAnswers))
	for _, c := range cannedAnswers {
		out = append(out, c.question)
	}
	return out
}

// CannedAnswer busca la respuesta fija para una pregunta sugerida.
// La comparacion es exacta.
func CannedAnswer(question string) (string, bool) {
	for _, c := range cannedAnswers {
		if c.question == question {
			return c.answer, true
		}
	}
	return "", false
}

// BuildConversationPrompt arma el prompt con el historial previo y el nuevo mensaje.
func BuildConversationPrompt(history []domain.Turn, userText string) string {
	var sb strings.Builder
	sb.WriteString(businessPreamble)
	sb.WriteString("\n\nPrevious conversation:\n")
	sb.WriteString(FormatTranscript(history))
	sb.WriteString("\n\nUser: ")
	sb.WriteString(userText)
	sb.WriteString("\n\n")
	sb.WriteString(replyInstruction)
	return sb.String()
}

// BuildQuestionPrompt arma el prompt para una pregunta aislada, sin historial.
func BuildQuestionPrompt(question string) string {
	var sb strings.Builder
	sb.WriteString(businessPreamble)
	sb.WriteString("\n\nUser: ")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString(replyInstruction)
	return sb.String()
}

// FormatTranscript serializa los turnos como lineas "User:"/"Assistant:" en orden.
func FormatTranscript(turns []domain.Turn) string {
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		role := "Assistant"
		if t.IsUser {
			role = "User"
		}
		lines = append(lines, role+": "+t.Text)
	}
	return strings.Join(lines, "\n")
}
