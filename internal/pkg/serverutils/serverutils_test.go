package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"pdf-chat-be/pkg/ai/router"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Query     string `validate:"required"`
	SessionId string `validate:"required,max=128"`
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(sampleRequest{Query: "q", SessionId: "s"}))

	err := ValidateRequest(sampleRequest{})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Fields, 2)
	assert.Contains(t, err.Error(), "Query failed on 'required'")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"fiber error", fiber.NewError(fiber.StatusBadRequest, "only pdf"), 400, "only pdf"},
		{"validation", &ValidationError{Fields: []string{"Query failed on 'required'"}}, 400, "validation error: Query failed on 'required'"},
		{"invalid task wrapped", fmt.Errorf("failed to process query: %w", router.ErrInvalidTask), 422, InvalidTaskMessage},
		{"anything else", errors.New("failed to process upload: boom"), 500, "failed to process upload: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := Classify(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("fine", map[string]string{"k": "v"}))
	})
	app.Get("/task", func(c *fiber.Ctx) error {
		return fmt.Errorf("wrapped: %w", router.ErrInvalidTask)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/task", nil))
	require.NoError(t, err)
	assert.Equal(t, 422, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	var res BaseResponse[any]
	require.NoError(t, json.Unmarshal(body, &res))
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid task", res.Message)

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var ok BaseResponse[map[string]string]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	assert.True(t, ok.Success)
	assert.Equal(t, "v", ok.Data["k"])
}
