package serializer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name          string
		uri           string
		wantNamespace string
		wantName      string
		wantErr       bool
	}{
		{"valid", "cm://monitoring/sema-dashboards", "monitoring", "sema-dashboards", false},
		{"name with slash", "cm://ns/team/dashboards", "ns", "team/dashboards", false},
		{"missing scheme", "monitoring/sema-dashboards", "", "", true},
		{"missing name", "cm://monitoring", "", "", true},
		{"empty namespace", "cm:///name", "", "", true},
		{"empty name", "cm://ns/", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			namespace, name, err := parseConfigMapURI(tc.uri)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantNamespace, namespace)
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func TestNewConfigMapWriterNormalizesFormat(t *testing.T) {
	w := NewConfigMapWriter("ns", "name", "bogus")
	assert.Equal(t, FormatJSON, w.format)
}

func TestNewFileWriterOrStdoutConfigMapURI(t *testing.T) {
	w := NewFileWriterOrStdout(FormatYAML, "cm://monitoring/sema-dashboards")
	cm, ok := w.(*ConfigMapWriter)
	require.True(t, ok)
	assert.Equal(t, "monitoring", cm.namespace)
	assert.Equal(t, "sema-dashboards", cm.name)
}

func TestNewFileWriterOrStdoutBadConfigMapURIFallsBack(t *testing.T) {
	w := NewFileWriterOrStdout(FormatYAML, "cm://missing-name")
	_, ok := w.(*Writer)
	assert.True(t, ok)
}
