package barcode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeeat/backend/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "ean-13", input: "7300400481588", want: "7300400481588"},
		{name: "trims whitespace", input: "  3017620422003\n", want: "3017620422003"},
		{name: "ean-8", input: "96385074", want: "96385074"},
		{name: "empty", input: "   ", wantErr: true},
		{name: "too short", input: "1234567", wantErr: true},
		{name: "too long", input: "123456789012345", wantErr: true},
		{name: "letters", input: "73004004815AB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Validate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrCapture)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManualCapturer(t *testing.T) {
	code, err := ManualCapturer{Input: " 8712100849084 "}.Capture(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "8712100849084", code)

	_, err = ManualCapturer{}.Capture(context.Background())
	assert.ErrorIs(t, err, domain.ErrCapture)
}

func TestSampleCapturer_CyclesInOrder(t *testing.T) {
	capturer := &SampleCapturer{}
	ctx := context.Background()

	var got []string
	for i := 0; i < len(SampleBarcodes)+1; i++ {
		code, err := capturer.Capture(ctx)
		require.NoError(t, err)
		got = append(got, code)
	}

	assert.Equal(t, append(append([]string{}, SampleBarcodes...), SampleBarcodes[0]), got)
}

func TestSampleCapturer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&SampleCapturer{}).Capture(ctx)
	assert.ErrorIs(t, err, domain.ErrCapture)
}
