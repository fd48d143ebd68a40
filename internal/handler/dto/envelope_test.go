package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	resp := OK(ServiceInfo{Name: "userapi", Version: "0.1.0"})

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	assert.Nil(t, resp.Message)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"name":"userapi","version":"0.1.0"}}`, string(raw))
}

func TestFail(t *testing.T) {
	resp := Fail[ServiceInfo]("service unavailable")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Message)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"service unavailable"}`, string(raw))
}

func TestNewPaginatedResponse(t *testing.T) {
	tests := []struct {
		name      string
		data      []int
		total     uint64
		perPage   uint32
		wantLen   int
		wantTotal uint64
	}{
		{"fits in page", []int{1, 2}, 10, 5, 2, 10},
		{"truncated to per_page", []int{1, 2, 3, 4}, 4, 2, 2, 4},
		{"total raised to data length", []int{1, 2, 3}, 1, 10, 3, 3},
		{"nil data", nil, 0, 20, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPaginatedResponse(tt.data, tt.total, 1, tt.perPage)

			assert.Len(t, page.Data, tt.wantLen)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.LessOrEqual(t, uint32(len(page.Data)), page.PerPage)
			assert.GreaterOrEqual(t, page.Total, uint64(len(page.Data)))
		})
	}
}

func TestPaginatedResponse_EmptyDataIsArray(t *testing.T) {
	raw, err := json.Marshal(NewPaginatedResponse[int](nil, 0, 1, 20))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"per_page":20}`, string(raw))
}
