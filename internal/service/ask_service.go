package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	apperrors "campusai/internal/errors"
	"campusai/internal/logger"
)

// SystemPrompt is sent ahead of every question.
const SystemPrompt = "You are a helpful academic assistant."

// AskService relays questions to a completion provider.
type AskService interface {
	Ask(ctx context.Context, question string) (string, error)
}

type askService struct {
	model     llms.Model
	modelName string
}

// NewAskService creates a relay over model. modelName, when set, is passed
// on every call.
func NewAskService(model llms.Model, modelName string) AskService {
	return &askService{model: model, modelName: modelName}
}

// Ask trims question and returns the provider's first completion. Provider
// failures come back as *errors.ProviderError.
func (s *askService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", apperrors.ErrEmptyInput
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, SystemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, question),
	}
	var opts []llms.CallOption
	if s.modelName != "" {
		opts = append(opts, llms.WithModel(s.modelName))
	}

	resp, err := s.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		providerErr := classifyProviderError(err)
		logger.FromContext(ctx).Error("completion failed", "kind", providerErr.Kind, "err", err)
		return "", providerErr
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		logger.FromContext(ctx).Error("completion failed", "kind", apperrors.ProviderMalformedResponse)
		return "", apperrors.NewProviderError(apperrors.ProviderMalformedResponse, errors.New("completion response contained no choices"))
	}
	return resp.Choices[0].Content, nil
}

func classifyProviderError(err error) *apperrors.ProviderError {
	var (
		netErr      net.Error
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		providerErr *apperrors.ProviderError
	)
	switch {
	case errors.As(err, &providerErr):
		return providerErr
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr):
		return apperrors.NewProviderError(apperrors.ProviderNetwork, err)
	case errors.Is(err, openai.ErrEmptyResponse), errors.Is(err, io.ErrUnexpectedEOF),
		errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return apperrors.NewProviderError(apperrors.ProviderMalformedResponse, err)
	default:
		return apperrors.NewProviderError(apperrors.ProviderUpstream, err)
	}
}
