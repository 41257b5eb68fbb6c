package dto

import "testing"

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"valid values pass through", 3, 25, 3, 25},
		{"zero page falls back", 0, 25, DefaultPage, 25},
		{"negative page falls back", -2, 25, DefaultPage, 25},
		{"zero size falls back", 3, 0, 3, DefaultPageSize},
		{"negative size falls back", 3, -1, 3, DefaultPageSize},
		{"oversized page size is capped", 1, 5000, 1, MaxPageSize},
		{"both invalid", 0, 0, DefaultPage, DefaultPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := NormalizePage(tt.page, tt.pageSize)
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	tests := []struct {
		page     int
		pageSize int
		want     int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{5, 10, 40},
	}

	for _, tt := range tests {
		if got := Offset(tt.page, tt.pageSize); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.page, tt.pageSize, got, tt.want)
		}
	}
}
