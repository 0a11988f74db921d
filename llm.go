package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
)

/* ─── Prompts ────────────────────────────────────────────────────────── */

const chatSystemPrompt = `你是一個專業的健康管理 AI 助手。你的職責是：
1. 幫助用戶記錄飲食和運動
2. 提供健康、運動、飲食相關的建議
3. 分析用戶的數據並給出個性化建議
4. 回答健康相關問題

請用友善、專業的語氣回答用戶。`

const extractionPromptTemplate = `分析以下用戶訊息，提取飲食和運動資訊。如果訊息中包含飲食或運動資訊，請以 JSON 格式返回：
{
    "diet": {
        "has_diet": true/false,
        "meal_type": "breakfast/lunch/dinner/snack",
        "food_name": "食物名稱",
        "calories": 數字,
        "protein": 數字,
        "carbs": 數字,
        "fat": 數字
    },
    "exercise": {
        "has_exercise": true/false,
        "exercise_type": "運動類型",
        "duration": 分鐘數,
        "calories_burned": 數字
    }
}

如果沒有相關資訊，返回 {"diet": {"has_diet": false}, "exercise": {"has_exercise": false}}

用戶訊息：%s`

// chatFallbackReply is returned to the user when the LLM call fails —
// chat never surfaces as a 5xx.
const chatFallbackReply = "抱歉，我遇到了一些問題。請稍後再試。"

/* ─── Agent ──────────────────────────────────────────────────────────── */

// agent is the injected text-generation collaborator: one OpenAI client plus
// a circuit breaker, constructed once per process and passed to call sites.
// No package-level singleton.
type agent struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker
}

// newAgent builds the agent. BaseURL is overridable so tests can point the
// client at a mock httptest server.
func newAgent(cfg Config) *agent {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "openai",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).
				Str("from", from.String()).Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &agent{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.LLMModel,
		timeout: cfg.LLMTimeout,
		breaker: breaker,
	}
}

// complete runs one chat-completions call through the circuit breaker and
// returns the first choice's content.
func (a *agent) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result, err := a.breaker.Execute(func() (interface{}, error) {
		resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    a.model,
			Messages: messages,
		})
		if err != nil {
			return nil, err
		}
		if len(resp.Choices) == 0 {
			return nil, fmt.Errorf("no choices in response")
		}
		return resp.Choices[0].Message.Content, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// generateText generates free text from a single prompt. Used for reports.
func (a *agent) generateText(ctx context.Context, prompt string) (string, error) {
	return a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
}

// chatReply generates the assistant reply for a conversation. Only the last
// ten messages are sent as context. On failure the fallback apology is
// returned — the caller persists it like any reply.
func (a *agent) chatReply(ctx context.Context, history []message, userMessage string) string {
	msgs := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: chatSystemPrompt},
	}
	if len(history) > 10 {
		history = history[len(history)-10:]
	}
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: userMessage})

	reply, err := a.complete(ctx, msgs)
	if err != nil {
		log.Error().Err(err).Msg("chat reply generation failed")
		return chatFallbackReply
	}
	if strings.TrimSpace(reply) == "" {
		return chatFallbackReply
	}
	return reply
}

// extract asks the model for structured diet/exercise data in the user
// message. Any failure (transport, breaker open, off-schema output)
// degrades to an empty extraction. Never returns an error.
func (a *agent) extract(ctx context.Context, userMessage string) rawExtraction {
	reply, err := a.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(extractionPromptTemplate, userMessage)},
	})
	if err != nil {
		log.Error().Err(err).Msg("extraction call failed")
		return rawExtraction{}
	}
	return parseExtraction(reply)
}
