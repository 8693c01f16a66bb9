package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotation-service/internal/domain"
	"github.com/jsamuelsen/quotation-service/internal/mocks"
)

func TestNewPreferenceService_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() {
		NewPreferenceService(PreferenceServiceConfig{})
	})
}

func TestPreferenceService_ColumnOrder(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockPreferenceStore)
		want      []string
		wantErr   bool
	}{
		{
			name: "saved",
			setupMock: func(m *mocks.MockPreferenceStore) {
				m.EXPECT().GetPreference(mock.Anything, DefaultUserID, PreferenceColumnOrder).
					Return([]byte(`["qty","unit"]`), true, nil)
			},
			want: []string{"qty", "unit"},
		},
		{
			name: "never saved",
			setupMock: func(m *mocks.MockPreferenceStore) {
				m.EXPECT().GetPreference(mock.Anything, DefaultUserID, PreferenceColumnOrder).
					Return(nil, false, nil)
			},
			want: []string{},
		},
		{
			name: "unreadable",
			setupMock: func(m *mocks.MockPreferenceStore) {
				m.EXPECT().GetPreference(mock.Anything, DefaultUserID, PreferenceColumnOrder).
					Return([]byte(`{not json`), true, nil)
			},
			want: []string{},
		},
		{
			name: "store error",
			setupMock: func(m *mocks.MockPreferenceStore) {
				m.EXPECT().GetPreference(mock.Anything, DefaultUserID, PreferenceColumnOrder).
					Return(nil, false, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mocks.NewMockPreferenceStore(t)
			tt.setupMock(store)

			svc := NewPreferenceService(PreferenceServiceConfig{Store: store, Logger: discardLogger()})

			got, err := svc.ColumnOrder(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPreferenceService_SaveColumnOrder(t *testing.T) {
	store := mocks.NewMockPreferenceStore(t)
	svc := NewPreferenceService(PreferenceServiceConfig{Store: store, Logger: discardLogger()})

	store.EXPECT().SetPreference(mock.Anything, DefaultUserID, PreferenceColumnOrder, []byte(`["qty","unit"]`)).
		Return(nil)

	saved, err := svc.SaveColumnOrder(context.Background(), []string{" qty", "", "unit", "qty"})
	require.NoError(t, err)
	assert.Equal(t, []string{"qty", "unit"}, saved)

	_, err = svc.SaveColumnOrder(context.Background(), nil)
	assert.True(t, domain.IsValidation(err))
}

func TestApplyColumnOrder(t *testing.T) {
	cols := []domain.Column{
		{Name: "id"}, {Name: "name"}, {Name: "specification"}, {Name: "charge_amount"},
	}

	names := func(cs []domain.Column) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.Name
		}
		return out
	}

	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{"no preference", nil, []string{"id", "name", "specification", "charge_amount"}},
		{"full order", []string{"charge_amount", "name", "id", "specification"}, []string{"charge_amount", "name", "id", "specification"}},
		{"partial order", []string{"charge_amount"}, []string{"charge_amount", "id", "name", "specification"}},
		{"stale names skipped", []string{"gone", "name", "name"}, []string{"name", "id", "specification", "charge_amount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(ApplyColumnOrder(cols, tt.order)))
		})
	}
}
