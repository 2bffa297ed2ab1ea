package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Dehaka844/chatbot-pedidos/internal/domain"
	"github.com/Dehaka844/chatbot-pedidos/internal/mocks"
	"github.com/Dehaka844/chatbot-pedidos/internal/prompt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const margaritasReply = `{"response_for_user": "¡Añadidas 2 pizzas Margarita! ¿Algo más?", "cart": {"items": [{"name": "Margarita", "quantity": 2, "price": 10.0}], "total_price": 20.0, "address": null}}`

func TestChatService_Reply(t *testing.T) {
	tests := []struct {
		name         string
		history      []domain.Turn
		setupMocks   func(*mocks.MockMenuRepository, *mocks.MockChatModel)
		expectedBody string
		fallback     bool
		expectedErr  error
	}{
		{
			name:    "model reply is passed through verbatim",
			history: []domain.Turn{{"role": "user", "content": "quiero 2 margaritas"}},
			setupMocks: func(menu *mocks.MockMenuRepository, model *mocks.MockChatModel) {
				menu.On("All", mock.Anything).Return(CreateMockMenu(), nil)
				model.On("Complete", mock.Anything, mock.Anything).Return(margaritasReply, nil)
			},
			expectedBody: margaritasReply,
		},
		{
			name:    "empty history still calls the model with the system prompt",
			history: nil,
			setupMocks: func(menu *mocks.MockMenuRepository, model *mocks.MockChatModel) {
				menu.On("All", mock.Anything).Return(CreateMockMenu(), nil)
				model.On("Complete", mock.Anything, mock.MatchedBy(func(m []domain.Message) bool {
					return len(m) == 1 && m[0].Role == domain.RoleSystem
				})).Return(`{"response_for_user": "¡Hola! ¿Qué te gustaría pedir?", "cart": {"items": [], "total_price": 0, "address": null}}`, nil)
			},
			expectedBody: `{"response_for_user": "¡Hola! ¿Qué te gustaría pedir?", "cart": {"items": [], "total_price": 0, "address": null}}`,
		},
		{
			name:    "non-json model output falls back",
			history: []domain.Turn{{"role": "user", "content": "hola"}},
			setupMocks: func(menu *mocks.MockMenuRepository, model *mocks.MockChatModel) {
				menu.On("All", mock.Anything).Return(CreateMockMenu(), nil)
				model.On("Complete", mock.Anything, mock.Anything).Return("¡Hola! ¿Qué quieres?", nil)
			},
			fallback:    true,
			expectedErr: ErrInvalidModelOutput,
		},
		{
			name:    "json array output falls back",
			history: []domain.Turn{{"role": "user", "content": "hola"}},
			setupMocks: func(menu *mocks.MockMenuRepository, model *mocks.MockChatModel) {
				menu.On("All", mock.Anything).Return(CreateMockMenu(), nil)
				model.On("Complete", mock.Anything, mock.Anything).Return(`[1, 2]`, nil)
			},
			fallback:    true,
			expectedErr: ErrInvalidModelOutput,
		},
		{
			name:    "upstream error falls back",
			history: []domain.Turn{{"role": "user", "content": "hola"}},
			setupMocks: func(menu *mocks.MockMenuRepository, model *mocks.MockChatModel) {
				menu.On("All", mock.Anything).Return(CreateMockMenu(), nil)
				model.On("Complete", mock.Anything, mock.Anything).Return("", context.DeadlineExceeded)
			},
			fallback:    true,
			expectedErr: context.DeadlineExceeded,
		},
		{
			name:    "menu read error falls back without calling the model",
			history: []domain.Turn{{"role": "user", "content": "hola"}},
			setupMocks: func(menu *mocks.MockMenuRepository, model *mocks.MockChatModel) {
				menu.On("All", mock.Anything).Return(nil, errors.New("database is locked"))
			},
			fallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := new(mocks.MockMenuRepository)
			model := new(mocks.MockChatModel)
			tt.setupMocks(menu, model)

			result := NewChatService(menu, model).Reply(context.Background(), tt.history)

			assert.Equal(t, tt.fallback, result.Fallback)
			if tt.fallback {
				assert.Error(t, result.Err)
				if tt.expectedErr != nil {
					assert.ErrorIs(t, result.Err, tt.expectedErr)
				}
				assertFallbackBody(t, result.Body)
			} else {
				assert.NoError(t, result.Err)
				assert.Equal(t, tt.expectedBody, string(result.Body))
			}

			menu.AssertExpectations(t)
			model.AssertExpectations(t)
		})
	}
}

func TestChatService_Reply_MessageOrder(t *testing.T) {
	menu := new(mocks.MockMenuRepository)
	model := new(mocks.MockChatModel)
	products := CreateMockMenu()
	menu.On("All", mock.Anything).Return(products, nil)
	model.On("Complete", mock.Anything, mock.Anything).Return(margaritasReply, nil)

	history := []domain.Turn{
		{"role": "user", "content": "hola"},
		{"role": "assistant", "content": map[string]any{"response_for_user": "¡Hola!"}},
		{"role": "user", "content": "quiero 2 margaritas"},
	}
	NewChatService(menu, model).Reply(context.Background(), history)

	sent := model.Calls[0].Arguments.Get(1).([]domain.Message)
	require.Len(t, sent, 4)
	assert.Equal(t, domain.Message{Role: "system", Content: prompt.System(products)}, sent[0])
	assert.Equal(t, domain.Message{Role: "user", Content: "hola"}, sent[1])
	assert.Equal(t, domain.Message{Role: "assistant", Content: `{"response_for_user":"¡Hola!"}`}, sent[2])
	assert.Equal(t, domain.Message{Role: "user", Content: "quiero 2 margaritas"}, sent[3])
}

func TestTurnsToMessages_FreeForm(t *testing.T) {
	msgs := TurnsToMessages([]domain.Turn{
		{"content": "sin rol"},
		{"role": "narrator", "content": 3.5},
		{},
	})

	require.Len(t, msgs, 3)
	assert.Equal(t, domain.Message{Role: "", Content: "sin rol"}, msgs[0])
	assert.Equal(t, domain.Message{Role: "narrator", Content: "3.5"}, msgs[1])
	assert.Equal(t, domain.Message{}, msgs[2])
}

func assertFallbackBody(t *testing.T, body json.RawMessage) {
	t.Helper()
	assert.JSONEq(t, `{"response_for_user": "Lo siento, he tenido un problema interno. Por favor, inténtalo de nuevo.", "cart": {"items": [], "total_price": 0, "address": null}}`, string(body))
}
