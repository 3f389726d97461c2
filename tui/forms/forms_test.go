package forms

import "testing"

func TestTrimFormResultOffsets(t *testing.T) {
	tests := []struct {
		name      string
		result    TrimFormResult
		wantStart float64
		wantEnd   float64
		wantErr   bool
	}{
		{name: "blank", result: TrimFormResult{}, wantStart: 0, wantEnd: 0},
		{name: "seconds", result: TrimFormResult{Start: "5", End: " 2.5 "}, wantStart: 5, wantEnd: 2.5},
		{name: "clock", result: TrimFormResult{Start: "1:05", End: "0:00:10"}, wantStart: 65, wantEnd: 10},
		{name: "bad start", result: TrimFormResult{Start: "abc"}, wantErr: true},
		{name: "bad end", result: TrimFormResult{End: "-3"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := tt.result.Offsets()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Offsets() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if start != tt.wantStart || end != tt.wantEnd {
				t.Fatalf("Offsets() = %v, %v; want %v, %v", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestValidateOffsets(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		start    string
		end      string
		wantErr  bool
	}{
		{name: "no trim", duration: 20, start: "", end: ""},
		{name: "valid window", duration: 20, start: "5", end: "5"},
		{name: "overlap", duration: 20, start: "15", end: "5", wantErr: true},
		{name: "end past start", duration: 20, start: "0", end: "0:30", wantErr: true},
		{name: "unparseable", duration: 20, start: "1:2:3:4", wantErr: true},
		{name: "unknown duration", duration: 0, start: "50", end: "50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOffsets(tt.duration, tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateOffsets() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFormsBuild(t *testing.T) {
	result := &TrimFormResult{}
	if NewTrimForm("/videos/match.mp4", 90, result) == nil {
		t.Fatal("NewTrimForm returned nil")
	}
	overwrite := false
	if NewConfirmOverwriteForm("/videos/match.gif", &overwrite) == nil {
		t.Fatal("NewConfirmOverwriteForm returned nil")
	}
	if Theme() == nil {
		t.Fatal("Theme returned nil")
	}
}
