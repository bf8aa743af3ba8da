package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth_Ready(t *testing.T) {
	tests := []struct {
		name       string
		bucketsErr error
		probeErr   error
		want       []Check
		wantOK     bool
	}{
		{
			name:   "all good",
			want:   []Check{{Name: "storage", OK: true}, {Name: "catalog", OK: true}},
			wantOK: true,
		},
		{
			name:     "catalog down",
			probeErr: errors.New("relation \"files\" does not exist"),
			want: []Check{
				{Name: "storage", OK: true},
				{Name: "catalog", OK: false, Error: "relation \"files\" does not exist"},
			},
		},
		{
			name:       "storage down",
			bucketsErr: errors.New("connection refused"),
			want: []Check{
				{Name: "storage", OK: false, Error: "connection refused"},
				{Name: "catalog", OK: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore(nil)
			store.bucketsErr = tt.bucketsErr
			s := NewHealthService(nil, &fakeRM{files: &fakeFiles{probeErr: tt.probeErr}}, store)

			got, ok := s.Ready(context.Background())
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
