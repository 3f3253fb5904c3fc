package handler

import (
	"strings"
	"testing"

	"namavruksha/internal/domain"
)

func TestValidateEntryRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.SubmitEntryRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			req: &domain.SubmitEntryRequest{
				SankalpaID: "00000000-0000-0000-0000-000000000001",
				Count:      108,
			},
			wantErr: false,
		},
		{
			name: "valid retroactive request",
			req: &domain.SubmitEntryRequest{
				SankalpaID:  "00000000-0000-0000-0000-000000000001",
				Count:       1008,
				PeriodStart: "2024-06-01",
				PeriodEnd:   "2024-06-07",
			},
			wantErr: false,
		},
		{
			name: "missing sankalpa",
			req: &domain.SubmitEntryRequest{
				Count: 108,
			},
			wantErr: true,
			errMsg:  "sankalpa_id is required",
		},
		{
			name: "zero count",
			req: &domain.SubmitEntryRequest{
				SankalpaID: "00000000-0000-0000-0000-000000000001",
				Count:      0,
			},
			wantErr: true,
			errMsg:  "count must be a positive number",
		},
		{
			name: "negative count",
			req: &domain.SubmitEntryRequest{
				SankalpaID: "00000000-0000-0000-0000-000000000001",
				Count:      -5,
			},
			wantErr: true,
			errMsg:  "count must be a positive number",
		},
		{
			name: "count beyond cap",
			req: &domain.SubmitEntryRequest{
				SankalpaID: "00000000-0000-0000-0000-000000000001",
				Count:      maxEntryCount + 1,
			},
			wantErr: true,
			errMsg:  "count exceeds the maximum",
		},
		{
			name: "unknown source",
			req: &domain.SubmitEntryRequest{
				SankalpaID: "00000000-0000-0000-0000-000000000001",
				Count:      108,
				Source:     "telepathy",
			},
			wantErr: true,
			errMsg:  "source must be",
		},
		{
			name: "audio source accepted",
			req: &domain.SubmitEntryRequest{
				SankalpaID: "00000000-0000-0000-0000-000000000001",
				Count:      108,
				Source:     "audio",
			},
			wantErr: false,
		},
		{
			name: "period start without end",
			req: &domain.SubmitEntryRequest{
				SankalpaID:  "00000000-0000-0000-0000-000000000001",
				Count:       108,
				PeriodStart: "2024-06-01",
			},
			wantErr: true,
			errMsg:  "must be provided together",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateEntryRequest(tt.req)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Fatalf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
