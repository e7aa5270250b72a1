package dto

import "testing"

func TestRegisterRequest_StrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Sup3rSecret", true},
		{"too short", "Ab1", false},
		{"no uppercase", "sup3rsecret", false},
		{"no digit", "SuperSecret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := RegisterRequest{
				Email:    "alice@example.com",
				Username: "alice",
				Password: tt.password,
			}
			err := req.Validate()
			if tt.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}

func TestCompleteGameRequest_Result(t *testing.T) {
	for _, result := range []string{"", "win", "lose", "draw", "none"} {
		req := CompleteGameRequest{Score: 10, Result: result}
		if err := req.Validate(); err != nil {
			t.Errorf("result %q: unexpected error: %v", result, err)
		}
	}

	req := CompleteGameRequest{Score: 10, Result: "forfeit"}
	if err := req.Validate(); err == nil {
		t.Error("unknown result should fail validation")
	}
}

func TestCompleteGameRequest_NegativeScore(t *testing.T) {
	req := CompleteGameRequest{Score: -1}
	if err := req.Validate(); err == nil {
		t.Error("negative score should fail validation")
	}
}

func TestFormatValidationErrors_FieldMessages(t *testing.T) {
	req := LoginRequest{EmailOrUsername: "", Password: ""}
	err := req.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}

	errs := FormatValidationErrors(err)
	if len(errs) == 0 {
		t.Fatal("expected formatted errors")
	}
	for _, e := range errs {
		if e.Field == "" || e.Message == "" {
			t.Errorf("formatted error incomplete: %+v", e)
		}
	}
}
