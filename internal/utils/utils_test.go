package utils

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	t.Run("sets content-type and status", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteJSON(w, http.StatusOK, []string{"USC00519397"})

		if got := w.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
			t.Errorf("Content-Type = %q; want application/json; charset=utf-8", got)
		}
		if w.Code != http.StatusOK {
			t.Errorf("Code = %d; want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("encodes body as JSON", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteJSON(w, http.StatusOK, map[string]*float64{"2017-08-23": nil})

		var got map[string]*float64
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("body is not valid JSON: %v", err)
		}
		v, ok := got["2017-08-23"]
		if !ok || v != nil {
			t.Errorf("body[2017-08-23] = %v, present=%v; want null", v, ok)
		}
	})

	t.Run("returns 500 when value cannot be encoded", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteJSON(w, http.StatusOK, math.NaN())

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Code = %d; want %d", w.Code, http.StatusInternalServerError)
		}
		var got map[string]any
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("body is not valid JSON: %v", err)
		}
		if got["message"] != "failed to encode response" {
			t.Errorf("message = %v", got["message"])
		}
	})
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	status := http.StatusBadRequest
	msg := "invalid start date"
	WriteError(w, status, msg)

	if got := w.Header().Get("Content-Type"); got != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q; want application/json; charset=utf-8", got)
	}
	if w.Code != status {
		t.Errorf("Code = %d; want %d", w.Code, status)
	}

	var got map[string]any
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("body is not valid JSON: %v", err)
	}
	if got["error"] != http.StatusText(status) {
		t.Errorf("error = %q; want %q", got["error"], http.StatusText(status))
	}
	if got["message"] != msg {
		t.Errorf("message = %q; want %q", got["message"], msg)
	}
}

func TestWriteHTML(t *testing.T) {
	t.Run("writes rendered body", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := WriteHTML(w, http.StatusOK, func(out io.Writer) error {
			_, err := io.WriteString(out, "<h1>ok</h1>")
			return err
		})
		if err != nil {
			t.Fatalf("WriteHTML() = %v; want nil", err)
		}
		if got := w.Header().Get("Content-Type"); got != "text/html; charset=utf-8" {
			t.Errorf("Content-Type = %q", got)
		}
		if w.Body.String() != "<h1>ok</h1>" {
			t.Errorf("body = %q", w.Body.String())
		}
	})

	t.Run("writes nothing on render error", func(t *testing.T) {
		w := httptest.NewRecorder()
		wantErr := errors.New("template: boom")
		err := WriteHTML(w, http.StatusOK, func(out io.Writer) error {
			_, _ = io.WriteString(out, "<partial")
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("WriteHTML() = %v; want %v", err, wantErr)
		}
		if w.Body.Len() != 0 {
			t.Errorf("body = %q; want empty", w.Body.String())
		}
		if w.Header().Get("Content-Type") != "" {
			t.Errorf("Content-Type set on failure")
		}
	})
}
