package errors

import "testing"

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "my-plot", false},
		{"folder style", "reports/q3/latency", false},
		{"with spaces", "sine wave demo", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"double slash", "a//b", true},
		{"backslash", "a\\b", true},
		{"control char", "plot\x01name", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileOpt(t *testing.T) {
	for _, opt := range []string{"new", "overwrite", "extend", "append"} {
		if err := ValidateFileOpt(opt); err != nil {
			t.Errorf("ValidateFileOpt(%q) = %v, want nil", opt, err)
		}
	}
	if err := ValidateFileOpt("replace"); err == nil {
		t.Error("ValidateFileOpt(\"replace\") should fail")
	}
	if !Is(ValidateFileOpt(""), ErrCodeInvalidFileOpt) {
		t.Error("empty fileopt should carry ErrCodeInvalidFileOpt")
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"alice", false},
		{"data.team-1", false},
		{"", true},
		{"has space", true},
		{"ctrl\x00char", true},
	}

	for _, tt := range tests {
		err := ValidateUsername(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateUsername(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateAPIKey(t *testing.T) {
	if err := ValidateAPIKey("a2fb34x9z0"); err != nil {
		t.Errorf("ValidateAPIKey() = %v, want nil", err)
	}
	if err := ValidateAPIKey(""); err == nil {
		t.Error("empty api key should fail")
	}
	if err := ValidateAPIKey("with space"); err == nil {
		t.Error("api key with whitespace should fail")
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://plot.ly/clientresp"); err != nil {
		t.Errorf("ValidateURL() = %v, want nil", err)
	}
	if err := ValidateURL("ftp://example.com"); err == nil {
		t.Error("non-http scheme should fail")
	}
	if err := ValidateURL(""); err == nil {
		t.Error("empty URL should fail")
	}
}

func TestValidateCoordinates(t *testing.T) {
	for _, c := range []string{"data", "axes", "figure", "display"} {
		if err := ValidateCoordinates(c); err != nil {
			t.Errorf("ValidateCoordinates(%q) = %v, want nil", c, err)
		}
	}
	if err := ValidateCoordinates("pixels"); err == nil {
		t.Error("unknown coordinate frame should fail")
	}
}
