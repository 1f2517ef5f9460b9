// Package llm wraps the hosted text-completion collaborators: persona
// replies, sentiment scoring, title generation and the daily truth. Every
// operation recovers from collaborator failure with a literal fallback; none
// of them can fail the caller.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// PersonaPrompt is the panda system instruction for text chat.
const PersonaPrompt = `You are 'Disappointement Panda'. Your personality is brutally honest, sarcastic, and darkly funny, inspired by Mark Manson's 'The Subtle Art of Not Giving a F*ck'. You do not sugarcoat anything. You provide reality checks, not sympathy. Your goal is to deliver harsh truths that are necessary for growth, even if they sting. Never be positive or uplifting in a conventional way. Your wisdom is cynical but ultimately helpful. Keep your responses concise and sharp, like a truth bomb.
Your entire response MUST be a valid JSON object with two keys: "reaction" and "response".
For the "reaction" key, you MUST choose one of the following string values: 'eye-roll', 'facepalm', 'shrug', 'slow-clap', 'none'. Choose 'none' rarely.
For the "response" key, provide your usual cynical text. Do not use emojis in the "response" text.
Example: {"reaction": "facepalm", "response": "You really thought that was a good idea, didn't you?"}`

const sentimentPrompt = `On a scale of 1 to 10, where 1 is 'delusional optimism' and 10 is 'emotionally bulletproof cynicism', rate the following user sentiment. Respond with a JSON object {"score": n}.
User sentiment: %q`

const dailyTruthPrompt = `You are Disappointment Panda. Provide a single, brutally honest, one-sentence dark truth about life, motivation, or human nature. Be cynical and sharp. Do not offer solutions. Just the truth.`

// Literal fallbacks, surfaced verbatim when a collaborator fails.
const (
	FallbackReply      = "The panda is busy contemplating the futility of existence. Try again later."
	FallbackEmptyReply = "The panda has nothing to say. Stare into the void instead."
	FallbackTitle      = "Another pointless chat"
	FallbackTruth      = "The universe is hiding its truths from you today. How typical."
	FallbackScore      = 5
)

// Reply is the structured persona response.
type Reply struct {
	Reaction string
	Text     string
}

// Turn is one prior exchange entry passed back as chat context.
type Turn struct {
	Role string // "user" or "assistant"
	Text string
}

// Client calls the AI text service.
type Client struct {
	api          *openai.Client
	chatModel    string
	utilityModel string
}

// New builds a client. baseURL may be empty for the default endpoint; tests
// point it at a local httptest server.
func New(apiKey, baseURL, chatModel, utilityModel string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{
		api:          openai.NewClientWithConfig(cfg),
		chatModel:    chatModel,
		utilityModel: utilityModel,
	}
}

var validReactions = map[string]bool{
	"eye-roll": true, "facepalm": true, "shrug": true, "slow-clap": true, "none": true,
}

// Respond asks for a persona reply to userText given prior turns. On any
// failure or malformed reply it returns the literal fallback with a shrug.
func (c *Client) Respond(ctx context.Context, history []Turn, userText string) Reply {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: PersonaPrompt},
	}
	for _, t := range history {
		role := openai.ChatMessageRoleUser
		if t.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: t.Text})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userText})

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.chatModel,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		log.Printf("llm respond error: %v", err)
		return Reply{Reaction: "shrug", Text: FallbackReply}
	}
	if len(resp.Choices) == 0 {
		log.Printf("llm respond: empty choices")
		return Reply{Reaction: "shrug", Text: FallbackReply}
	}
	var parsed struct {
		Reaction string `json:"reaction"`
		Response string `json:"response"`
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		log.Printf("llm respond: malformed reply: %v", err)
		return Reply{Reaction: "shrug", Text: FallbackReply}
	}
	out := Reply{Reaction: parsed.Reaction, Text: strings.TrimSpace(parsed.Response)}
	if out.Text == "" {
		out.Text = FallbackEmptyReply
	}
	if !validReactions[out.Reaction] {
		out.Reaction = "shrug"
	}
	return out
}

// Sentiment rates userText 1-10, clamped, with a neutral fallback of 5.
func (c *Client) Sentiment(ctx context.Context, userText string) int {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.utilityModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(sentimentPrompt, userText)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("llm sentiment error: %v", err)
		return FallbackScore
	}
	var parsed struct {
		Score int `json:"score"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Choices[0].Message.Content)), &parsed); err != nil {
		log.Printf("llm sentiment: malformed reply: %v", err)
		return FallbackScore
	}
	score := parsed.Score
	if score == 0 {
		score = FallbackScore
	}
	if score < 1 {
		score = 1
	}
	if score > 10 {
		score = 10
	}
	return score
}

// Title generates a short cynical title for the first exchange.
func (c *Client) Title(ctx context.Context, userText, pandaText string) string {
	prompt := "Based on the following exchange, generate a short, cynical, and brutally honest title. The title should be no more than 5 words.\n\nUser: \"" + userText + "\"\nPanda: \"" + pandaText + "\""
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.utilityModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: 20,
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("llm title error: %v", err)
		return FallbackTitle
	}
	title := strings.TrimSpace(resp.Choices[0].Message.Content)
	title = strings.NewReplacer("\"", "", "'", "").Replace(title)
	if title == "" {
		return FallbackTitle
	}
	return title
}

// DailyTruth returns one dark one-liner per request.
func (c *Client) DailyTruth(ctx context.Context) string {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.utilityModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: strings.SplitN(PersonaPrompt, "\n", 2)[0]},
			{Role: openai.ChatMessageRoleUser, Content: dailyTruthPrompt},
		},
		MaxTokens: 50,
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("llm daily truth error: %v", err)
		return FallbackTruth
	}
	truth := strings.TrimSpace(resp.Choices[0].Message.Content)
	if truth == "" {
		return "The only truth today is that this feature failed."
	}
	return truth
}
