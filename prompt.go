package locqa

import (
	"fmt"
	"strings"
)

// AnswerMode selects the answer prompt variant for document queries.
type AnswerMode int

// Document answer modes. Search answers strictly from the knowledge
// base; Ask may fall back to general knowledge; Teach explains the
// material as learning content. Code mode uses its own analysis prompt.
const (
	ModeSearch AnswerMode = iota + 1
	ModeAsk
	ModeTeach
	ModeCode
)

// String returns the mode name for display.
func (m AnswerMode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeAsk:
		return "ask"
	case ModeTeach:
		return "teach"
	case ModeCode:
		return "code"
	}
	return "unknown"
}

// BuildAnswerPrompt builds the mode-specific prompt embedding the
// accumulated context. The iteration tag lets the model know it is
// refining a previous attempt.
func BuildAnswerPrompt(cfg Config, mode AnswerMode, query string, items []ContextItem, iteration int) string {
	if mode == ModeCode {
		return buildCodeAnswerPrompt(query, items)
	}

	var sb strings.Builder
	switch mode {
	case ModeAsk:
		fmt.Fprintf(&sb, "You are %s, an intelligent assistant that answers user questions about a local documentation knowledge base.", cfg.BotName)
	case ModeTeach:
		fmt.Fprintf(&sb, "You are %s, an intelligent teacher that helps users learn based on their questions about a local documentation knowledge base.", cfg.BotName)
	default:
		fmt.Fprintf(&sb, "You are %s, an intelligent assistant that helps users find information in a local documentation knowledge base.", cfg.BotName)
	}
	sb.WriteString(" Answer in plain text if possible.")
	if iteration > 1 {
		fmt.Fprintf(&sb, " (iteration %d)", iteration)
	}

	sb.WriteString("\n\nContext from knowledge base:\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "- %s\n\n", item.Text)
	}

	sb.WriteString("Instructions:\n")
	sb.WriteString("- Consider the conversation history to understand follow-up questions and references.\n")
	sb.WriteString("- Check if the context contains information DIRECTLY relevant to the question.\n")
	switch mode {
	case ModeAsk:
		sb.WriteString("- If it does, use ONLY that information to answer.\n")
		sb.WriteString("- If it does not contain relevant information, indicate that the information is NOT FOUND in the knowledge base, then answer using your general knowledge if relevant. Answer with: \"I don't know.\", followed by an explanation if you cannot answer.\n")
	case ModeTeach:
		sb.WriteString("- The knowledge base is mostly learning material, so your goal is to teach the user based on the provided context.\n")
		sb.WriteString("- If it does, use that information to tailor your response.\n")
		sb.WriteString("- If it does not contain relevant information, indicate that the information is NOT FOUND in the knowledge base, then answer using your general knowledge if applicable. If you do not know, answer with: \"I don't know.\", followed by a brief explanation.\n")
	default:
		sb.WriteString("- If it does, use ONLY that information to answer.\n")
		sb.WriteString("- If it does not contain relevant information, answer with: \"I don't know.\", followed by a brief explanation.\n")
	}

	fmt.Fprintf(&sb, "\nQuestion: %s\nAnswer:", query)
	return sb.String()
}

func buildCodeAnswerPrompt(query string, items []ContextItem) string {
	var sb strings.Builder
	sb.WriteString("You are a code analysis assistant. Answer the question based on the provided code files.\n\n")
	sb.WriteString("Code Context:\n")
	for _, item := range items {
		fmt.Fprintf(&sb, "File: %s\n```\n%s\n```\n\n", item.Label, item.Text)
	}
	sb.WriteString(`Instructions:
- Provide accurate, detailed analysis based on the code
- Reference specific files, functions, and line numbers when possible
- If information is incomplete, clearly state what's missing
- Consider conversation history for follow-up questions
- Be concise but thorough
- NEVER ask the user about the codebase. If you really don't know, respond with "I don't know." instead of making up an answer.

`)
	fmt.Fprintf(&sb, "User Question: %s\n\nAnswer:", query)
	return sb.String()
}

// BuildDirectPrompt builds the prompt for queries answered without
// retrieval.
func BuildDirectPrompt(cfg Config, mode AnswerMode, query string) string {
	var sb strings.Builder
	if mode == ModeCode {
		fmt.Fprintf(&sb, "You are %s, a helpful programming assistant with access to a specific codebase. ", cfg.BotName)
		sb.WriteString("Answer the following programming question using your general knowledge. If the user seems confused, suggest asking something about the codebase.\n\n")
		fmt.Fprintf(&sb, "User Question: %s\n\n", query)
		sb.WriteString("Instructions:\n- Provide clear, accurate information about programming concepts\n- Include code examples if helpful\n- Be concise but thorough\n- Consider conversation history for context\n\nAnswer:")
		return sb.String()
	}

	fmt.Fprintf(&sb, "You are %s, an intelligent assistant that answers questions about a local documentation knowledge base. ", cfg.BotName)
	sb.WriteString("Answer the following query in a friendly and conversational manner. Consider the conversation history to understand follow-up questions and references.\n\n")
	fmt.Fprintf(&sb, "Query: %s\n\nAnswer:", query)
	return sb.String()
}

// BuildMemoryPrompt builds the prompt for code queries answered from
// already cached files without a new search.
func BuildMemoryPrompt(memory *FileMemory, query string) string {
	var sb strings.Builder
	sb.WriteString("You are a code analysis assistant. Answer based on the previously loaded files.\n\nCode Context:\n")
	for _, path := range memory.Paths() {
		content, _ := memory.Get(path)
		fmt.Fprintf(&sb, "File: %s\n```\n%s\n```\n\n", path, content)
	}
	sb.WriteString(`Instructions:
- Analyze the code and provide accurate information
- Reference specific files and functions when relevant
- If the loaded files don't contain the answer, say so
- Consider conversation history for follow-up questions

`)
	fmt.Fprintf(&sb, "User Question: %s\n\nAnswer:", query)
	return sb.String()
}
