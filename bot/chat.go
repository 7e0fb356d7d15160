package bot

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/marketscope/cryptobot/pkg/chat"
	"github.com/marketscope/cryptobot/pkg/llm"
)

// Sampling parameters for the completions API.
const (
	maxTokens        = 1500
	temperature      = 0.7
	presencePenalty  = 0.1
	frequencyPenalty = 0.1
)

// chatRequest is the conversation payload from the UI.
type chatRequest struct {
	Message string      `json:"message"`
	History []chat.Turn `json:"history"`
}

// chatResponse is the single-shot answer envelope.
type chatResponse struct {
	Response  string `json:"response"`
	Success   bool   `json:"success"`
	Model     string `json:"model"`
	Timestamp string `json:"timestamp"`
}

// relayFrame is one SSE frame of the streaming relay. Exactly one field is
// set per frame; done and error frames are terminal.
type relayFrame struct {
	Content string `json:"content,omitempty"`
	Done    bool   `json:"done,omitempty"`
	Error   string `json:"error,omitempty"`
}

// handleChat answers a conversation turn in a single response.
func (b *Bot) handleChat(c *fiber.Ctx) error {
	startTime := time.Now()

	req, errMsg := parseChatRequest(c.Body())
	if errMsg != "" {
		return errorJSON(c, fiber.StatusBadRequest, errMsg)
	}

	// Canned greetings never touch an upstream API.
	if chat.IsGreeting(req.Message) {
		return c.JSON(chatResponse{
			Response:  b.greeter.Respond(),
			Success:   true,
			Model:     chat.InstantModel,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}

	if b.ai == nil {
		return errorJSON(c, fiber.StatusInternalServerError, errAPIKeyMissing)
	}

	messages, err := b.buildContext(c.Context(), req)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	resp, err := b.ai.CreateChatCompletion(c.Context(), b.completionRequest(messages))
	if err != nil {
		b.logger.Error("completion request failed", zap.Error(err))
		return errorJSON(c, fiber.StatusInternalServerError, errAPIError)
	}

	b.logger.Debug("completion finished",
		zap.String("model", resp.Model),
		zap.String("content_preview", truncate(resp.Content(), 100)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return c.JSON(chatResponse{
		Response:  resp.Content(),
		Success:   true,
		Model:     b.config.Model,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// handleChatStream relays the completion as SSE frames: zero or more
// content frames followed by exactly one terminal done or error frame.
// Validation and configuration failures are rejected as plain JSON before
// any SSE bytes go out; once streaming starts, failures arrive in-band.
func (b *Bot) handleChatStream(c *fiber.Ctx) error {
	req, errMsg := parseChatRequest(c.Body())
	if errMsg != "" {
		return errorJSON(c, fiber.StatusBadRequest, errMsg)
	}

	greeting := ""
	if chat.IsGreeting(req.Message) {
		greeting = b.greeter.Respond()
	} else if b.ai == nil {
		return errorJSON(c, fiber.StatusInternalServerError, errAPIKeyMissing)
	}

	var messages []llm.Message
	if greeting == "" {
		var err error
		messages, err = b.buildContext(c.Context(), req)
		if err != nil {
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set(fiber.HeaderTransferEncoding, "chunked")

	// The fiber context is recycled once this handler returns, so only the
	// fasthttp context may cross into the stream writer.
	ctx := c.Context()
	ctx.SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if greeting != "" {
			if err := writeFrame(w, relayFrame{Content: greeting}); err != nil {
				return
			}
			_ = writeFrame(w, relayFrame{Done: true})
			return
		}

		err := b.ai.StreamChatCompletion(ctx, b.completionRequest(messages), func(delta string) error {
			// Each delta is flushed before the next upstream read so the
			// client sees tokens as they arrive.
			return writeFrame(w, relayFrame{Content: delta})
		})
		if err != nil {
			b.logger.Error("streaming completion failed", zap.Error(err))
			_ = writeFrame(w, relayFrame{Error: errAPIError})
			return
		}
		_ = writeFrame(w, relayFrame{Done: true})
	}))

	return nil
}

// parseChatRequest validates the raw request body, returning a
// client-facing message when the payload is unusable.
func parseChatRequest(body []byte) (*chatRequest, string) {
	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errNoMessage
	}
	if req.Message == "" {
		return nil, errNoMessage
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, errEmptyMessage
	}
	return &req, ""
}

// buildContext enriches the user message with live market data and
// assembles the upstream message sequence.
func (b *Bot) buildContext(ctx context.Context, req *chatRequest) ([]llm.Message, error) {
	enriched := b.enricher.Enrich(ctx, req.Message)
	return chat.BuildMessages(chat.SystemPrompt, req.History, enriched)
}

// completionRequest applies the fixed sampling parameters.
func (b *Bot) completionRequest(messages []llm.Message) llm.ChatRequest {
	return llm.ChatRequest{
		Model:            b.config.Model,
		Messages:         messages,
		MaxTokens:        maxTokens,
		Temperature:      temperature,
		PresencePenalty:  presencePenalty,
		FrequencyPenalty: frequencyPenalty,
	}
}

// writeFrame writes one SSE frame and flushes it. A write or flush failure
// means the client is gone and the relay must stop.
func writeFrame(w *bufio.Writer, frame relayFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
