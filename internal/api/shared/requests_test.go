package shared

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsBody struct {
	EquationsPerSession int `json:"equationsPerSession" validate:"required,gte=1,lte=50"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
		want    int
	}{
		{name: "valid json", body: `{"equationsPerSession": 10}`, want: 10},
		{name: "invalid json", body: `{"equationsPerSession": 10,}`, wantErr: true},
		{name: "unknown field", body: `{"equationsPerSession": 10, "extra": 1}`, wantErr: true},
		{name: "trailing data", body: `{"equationsPerSession": 10} {}`, wantErr: true},
		{name: "empty body", body: "", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPut, "/test", bytes.NewBufferString(tc.body))

			var got settingsBody
			err := DecodeJSON(req, &got)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.EquationsPerSession)
		})
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/test", http.NoBody)
	var v settingsBody
	assert.ErrorIs(t, DecodeJSON(req, &v), ErrEmptyBody)
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestDecodeJSONWithReadError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/test", errorReader{})
	var v settingsBody
	err := DecodeJSON(req, &v)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected EOF")
}

type selfValidating struct{ ok bool }

func (s selfValidating) Validate() error {
	if !s.ok {
		return errors.New("not ok")
	}
	return nil
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&settingsBody{EquationsPerSession: 5}))
	assert.Error(t, ValidateRequest(&settingsBody{EquationsPerSession: 0}))
	assert.Error(t, ValidateRequest(&settingsBody{EquationsPerSession: 51}))
	assert.NoError(t, ValidateRequest(selfValidating{ok: true}))
	assert.Error(t, ValidateRequest(selfValidating{ok: false}))
}
