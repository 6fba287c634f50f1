package service

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/serenity-ai/serenity-server/config"
	"github.com/serenity-ai/serenity-server/internal/pkg/history"
)

// serenitySystemPrompt frames the companion: supportive listening and
// practical wellbeing techniques, with an explicit safety protocol. It is
// not a therapist and must say so.
const serenitySystemPrompt = `Você é o Serenity — Assistente de Apoio Emocional.

Seu papel é oferecer acolhimento, escuta ativa e orientação prática baseada em técnicas gerais de bem-estar (respiração, grounding, reestruturação de pensamentos, rotina, comunicação).

IMPORTANTE: Você não é terapeuta, psicólogo ou médico e não substitui atendimento profissional. Não diagnostique, não prescreva, não garanta cura.

ESTILO:
- Tom calmo e acolhedor, sem julgamentos
- Seja específico: sempre referencie 1 detalhe do que o usuário disse
- Evite repetir frases prontas; varie respostas
- Sempre oferecer 1–3 passos práticos e uma pergunta aberta
- NUNCA repita a mesma frase de abertura em respostas consecutivas

FORMATO DE RESPOSTA:
1. Acolhimento curto (cite algo que o usuário disse)
2. Uma pergunta aberta para aprofundar
3. Uma técnica prática (passo a passo)
4. Checagem final (como está se sentindo agora?)

SEGURANÇA:
Se houver menção de autoagressão/suicídio/violência/risco iminente:
- Priorizar segurança imediata
- Incentivar ajuda profissional urgente
- Citar CVV 188 (Brasil) - disponível 24h
- Citar 192 (SAMU) ou 190 (Polícia) se risco imediato
- Não fornecer detalhes perigosos

Seja genuíno, empático e sempre responda diretamente ao que o usuário escreveu.`

var (
	ErrModelUnavailable = errors.New("language model unavailable")
	ErrEmptyReply       = errors.New("language model returned no choices")
)

// ChatCompleter is the slice of the OpenAI client the service needs, so
// tests can substitute a fake.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type ChatService struct {
	completer ChatCompleter
	history   *history.Store
	cfg       *config.OpenAIConfig
}

func NewChatService(completer ChatCompleter, historyStore *history.Store, cfg *config.OpenAIConfig) *ChatService {
	return &ChatService{
		completer: completer,
		history:   historyStore,
		cfg:       cfg,
	}
}

// NewOpenAIClient builds the production completer.
func NewOpenAIClient(apiKey string) *openai.Client {
	return openai.NewClient(apiKey)
}

// Reply sends the user message to the companion and returns its answer.
// The stored history window plus the new message ride along with the
// system prompt. Allowance gating happens before this is called; a failed
// model call here has already consumed allowance, matching the original
// app's behavior.
func (s *ChatService) Reply(ctx context.Context, userID int64, message string) (string, error) {
	past, err := s.history.Recent(ctx, userID)
	if err != nil {
		// degraded memory is acceptable, a lost turn is not
		past = nil
	}

	msgs := make([]openai.ChatCompletionMessage, 0, len(past)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: serenitySystemPrompt,
	})
	for _, m := range past {
		msgs = append(msgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: message,
	})

	resp, err := s.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    msgs,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyReply
	}

	reply := resp.Choices[0].Message.Content

	// history is best effort
	_ = s.history.Append(ctx, userID,
		history.Message{Role: openai.ChatMessageRoleUser, Content: message},
		history.Message{Role: openai.ChatMessageRoleAssistant, Content: reply},
	)

	return reply, nil
}

// ClearHistory forgets the stored conversation for the user.
func (s *ChatService) ClearHistory(ctx context.Context, userID int64) error {
	return s.history.Clear(ctx, userID)
}
