package security

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLimitsCheckSize(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		size    int64
		wantErr bool
	}{
		{name: "under limit", limits: Limits{MaxBytes: 10}, size: 9},
		{name: "at limit", limits: Limits{MaxBytes: 10}, size: 10},
		{name: "over limit", limits: Limits{MaxBytes: 10}, size: 11, wantErr: true},
		{name: "disabled", limits: Limits{}, size: 1 << 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.limits.CheckSize(tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckSize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrLimitExceeded) {
				t.Errorf("CheckSize() error = %v, want ErrLimitExceeded", err)
			}
		})
	}
}

func TestLimitsCheckDimensions(t *testing.T) {
	tests := []struct {
		name          string
		limits        Limits
		width, height int
		wantErr       bool
	}{
		{name: "small", limits: DefaultLimits(), width: 1920, height: 1080},
		{name: "exactly at limit", limits: Limits{MaxPixels: 100}, width: 10, height: 10},
		{name: "over limit", limits: Limits{MaxPixels: 100}, width: 11, height: 10, wantErr: true},
		{name: "overflowing int32", limits: DefaultLimits(), width: 1 << 20, height: 1 << 20, wantErr: true},
		{name: "negative", limits: Limits{}, width: -1, height: 5, wantErr: true},
		{name: "disabled", limits: Limits{}, width: 1 << 20, height: 1 << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.limits.CheckDimensions(tt.width, tt.height); (err != nil) != tt.wantErr {
				t.Errorf("CheckDimensions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	data, err := io.ReadAll(NewLimitedReader(strings.NewReader("hello"), 5))
	if err != nil || string(data) != "hello" {
		t.Errorf("ReadAll() = %q, %v; want hello, nil", data, err)
	}

	_, err = io.ReadAll(NewLimitedReader(strings.NewReader("hello world"), 5))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Errorf("ReadAll() error = %v, want ErrLimitExceeded", err)
	}

	r := strings.NewReader("x")
	if NewLimitedReader(r, 0) != io.Reader(r) {
		t.Error("NewLimitedReader(0) should return the reader unchanged")
	}
}
