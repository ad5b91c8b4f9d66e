package myhttp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/mylog"
)

func TestResponseWriter(t *testing.T) {
	c := context.TODO()
	writer := NewWriter(mylog.New("test"))

	t.Run("Write success", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.Write(c, response, http.StatusCreated, SuccessResponse{Message: "ok"})

		assert.Equal(t, http.StatusCreated, response.Code)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"Message":"ok"}`, response.Body.String())
	})

	t.Run("Write error", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteError(c, response, 4, myerrors.NewNotFoundError(fmt.Errorf("Basket item with id 3 not found.")))

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.JSONEq(t, `{"ErrorCode":4,"Message":"Basket item with id 3 not found."}`, response.Body.String())
	})

	t.Run("Write empty", func(t *testing.T) {
		response := httptest.NewRecorder()

		writer.WriteEmpty(c, response, http.StatusNoContent)

		assert.Equal(t, http.StatusNoContent, response.Code)
		assert.Empty(t, response.Body.String())
	})
}
