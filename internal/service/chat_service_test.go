package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/pkg/history"
)

type fakeCompleter struct {
	lastRequest openai.ChatCompletionRequest
	reply       string
	err         error
	noChoices   bool
}

func (f *fakeCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastRequest = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	if f.noChoices {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Role:    openai.ChatMessageRoleAssistant,
				Content: f.reply,
			}},
		},
	}, nil
}

func setupChat(t *testing.T, completer ChatCompleter) (*ChatService, *history.Store, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	store := history.NewStore(client, 20)
	cfg := &config.OpenAIConfig{
		Model:       "gpt-4o",
		MaxTokens:   500,
		Temperature: 0.8,
	}

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return NewChatService(completer, store, cfg), store, cleanup
}

func TestChatService_Reply(t *testing.T) {
	completer := &fakeCompleter{reply: "Estou aqui com você."}
	service, store, cleanup := setupChat(t, completer)
	defer cleanup()

	ctx := context.Background()

	reply, err := service.Reply(ctx, 1, "estou ansioso hoje")
	require.NoError(t, err)
	assert.Equal(t, "Estou aqui com você.", reply)

	// request carries system prompt first, then the user message
	req := completer.lastRequest
	assert.Equal(t, "gpt-4o", req.Model)
	assert.Equal(t, 500, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "Serenity")
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Equal(t, "estou ansioso hoje", req.Messages[1].Content)

	// both turns were stored
	msgs, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "user", msgs[0].Role)
	assert.Equal(t, "estou ansioso hoje", msgs[0].Content)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.Equal(t, "Estou aqui com você.", msgs[1].Content)
}

func TestChatService_Reply_CarriesHistory(t *testing.T) {
	completer := &fakeCompleter{reply: "resposta"}
	service, _, cleanup := setupChat(t, completer)
	defer cleanup()

	ctx := context.Background()

	_, err := service.Reply(ctx, 1, "primeira mensagem")
	require.NoError(t, err)

	_, err = service.Reply(ctx, 1, "segunda mensagem")
	require.NoError(t, err)

	// system + 2 stored turns + new user message
	req := completer.lastRequest
	require.Len(t, req.Messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, "primeira mensagem", req.Messages[1].Content)
	assert.Equal(t, "resposta", req.Messages[2].Content)
	assert.Equal(t, "segunda mensagem", req.Messages[3].Content)
}

func TestChatService_Reply_ModelError(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("upstream timeout")}
	service, store, cleanup := setupChat(t, completer)
	defer cleanup()

	ctx := context.Background()

	_, err := service.Reply(ctx, 1, "olá")
	assert.ErrorIs(t, err, ErrModelUnavailable)

	// nothing stored on failure
	msgs, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestChatService_Reply_NoChoices(t *testing.T) {
	completer := &fakeCompleter{noChoices: true}
	service, _, cleanup := setupChat(t, completer)
	defer cleanup()

	_, err := service.Reply(context.Background(), 1, "olá")
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestChatService_ClearHistory(t *testing.T) {
	completer := &fakeCompleter{reply: "resposta"}
	service, store, cleanup := setupChat(t, completer)
	defer cleanup()

	ctx := context.Background()

	_, err := service.Reply(ctx, 1, "mensagem")
	require.NoError(t, err)

	require.NoError(t, service.ClearHistory(ctx, 1))

	msgs, err := store.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
